package employee

import (
	employeeerrors "saral-hr/internal/employee/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_employee_code":    employeeerrors.ErrEmployeeCodeAlreadyExists,
	"uq_employee_aadhaar": employeeerrors.ErrAadhaarAlreadyExists,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, employeeerrors.ErrEmployeeNotFound, uniqueConstraints)
}
