package salaryslip

import (
	salarysliperrors "saral-hr/internal/salaryslip/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_salary_slip_link_period": salarysliperrors.ErrSlipExists,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, salarysliperrors.ErrSlipNotFound, uniqueConstraints)
}
