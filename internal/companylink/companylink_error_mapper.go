package companylink

import (
	companylinkerrors "saral-hr/internal/companylink/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_company_link_active_employee": companylinkerrors.ErrEmployeeAlreadyActive,
	"uq_company_link_name":            companylinkerrors.ErrLinkNameTaken,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, companylinkerrors.ErrLinkNotFound, uniqueConstraints)
}
