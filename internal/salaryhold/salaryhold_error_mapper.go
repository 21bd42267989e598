package salaryhold

import (
	salaryholderrors "saral-hr/internal/salaryhold/errors"
	"saral-hr/internal/shared/dbutil"
)

// Partial unique index: satu hold aktif (submitted + On Hold) per link.
const activeHoldConstraint = "uq_salary_hold_active_link"

var uniqueConstraints = map[string]error{
	activeHoldConstraint: salaryholderrors.ErrAlreadyOnHold,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, salaryholderrors.ErrHoldNotFound, uniqueConstraints)
}
