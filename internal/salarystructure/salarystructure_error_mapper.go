package salarystructure

import (
	salarystructureerrors "saral-hr/internal/salarystructure/errors"
	"saral-hr/internal/shared/dbutil"
)

var constraintErrors = map[string]error{
	"uq_salary_structure_company_name": salarystructureerrors.ErrDuplicateName,
	"uq_structure_row_component":       salarystructureerrors.ErrDuplicateEarning,
	"uq_assignment_link_from":          salarystructureerrors.ErrDuplicateAssignment,
}

// notFound berbeda untuk structure dan assignment.
func mapRepositoryError(err error, notFound error) error {
	return dbutil.MapError(err, notFound, constraintErrors)
}
