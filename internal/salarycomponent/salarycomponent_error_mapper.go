package salarycomponent

import (
	salarycomponenterrors "saral-hr/internal/salarycomponent/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_salary_component_company_name": salarycomponenterrors.ErrDuplicateName,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, salarycomponenterrors.ErrComponentNotFound, uniqueConstraints)
}
