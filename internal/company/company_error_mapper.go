package company

import (
	companyerrors "saral-hr/internal/company/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_company_abbreviation":      companyerrors.ErrCompanyAlreadyExists,
	"uq_company_registration_type": companyerrors.ErrRegistrationAlreadyExists,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, companyerrors.ErrCompanyNotFound, uniqueConstraints)
}
