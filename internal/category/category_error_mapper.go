package category

import (
	categoryerrors "saral-hr/internal/category/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_category_company_name": categoryerrors.ErrCategoryAlreadyExists,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, categoryerrors.ErrCategoryNotFound, uniqueConstraints)
}
