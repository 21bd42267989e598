package variablepay

import (
	variablepayerrors "saral-hr/internal/variablepay/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_variable_pay_company_period": variablepayerrors.ErrDuplicatePeriod,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, variablepayerrors.ErrAssignmentNotFound, uniqueConstraints)
}
