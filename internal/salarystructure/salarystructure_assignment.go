package salarystructure

import (
	"context"
	"time"

	salarystructureerrors "saral-hr/internal/salarystructure/errors"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) CreateAssignment(ctx context.Context, companyIDs []string, req CreateAssignmentRequest) (AssignmentResponse, error) {
	fromDate, err := period.ParseDate(req.FromDate)
	if err != nil {
		return AssignmentResponse{}, salarystructureerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	link, err := qtx.FindLink(ctx, req.Employee)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrEmployeeNotFound)
	}
	if !tenant.Allows(companyIDs, link.CompanyID.String()) {
		return AssignmentResponse{}, salarystructureerrors.ErrForbidden
	}

	structure, err := qtx.FindStructure(ctx, []string{link.CompanyID.String()}, req.SalaryStructureID)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}
	if !structure.IsActive {
		return AssignmentResponse{}, salarystructureerrors.ErrInactiveStructure
	}

	assignment := &Assignment{
		ID:                uuid.New(),
		CompanyID:         link.CompanyID,
		CompanyLinkID:     link.ID,
		SalaryStructureID: structure.ID,
		FromDate:          fromDate,
		Link:              link,
	}
	assignment.Rows = copyRows(assignment.ID, structure.Rows)
	applyTotals(assignment)

	if err := qtx.CreateAssignment(ctx, assignment); err != nil {
		s.logger.Error("create assignment persist failed",
			zap.String("company_link_id", link.ID.String()),
			zap.Error(err),
		)
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}
	if err := qtx.ReplaceAssignmentRows(ctx, assignment.ID.String(), assignment.Rows); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("salary structure assigned",
		zap.String("assignment_id", assignment.ID.String()),
		zap.String("company_link_id", link.ID.String()),
		zap.String("ctc", assignment.CTC.StringFixed(2)),
	)
	return mapAssignment(*assignment), nil
}

func (s *service) UpdateAssignment(ctx context.Context, companyIDs []string, id string, req UpdateAssignmentRequest) (AssignmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	assignment, err := qtx.FindAssignment(ctx, companyIDs, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}

	if req.FromDate != "" {
		fromDate, err := period.ParseDate(req.FromDate)
		if err != nil {
			return AssignmentResponse{}, salarystructureerrors.ErrInvalidDate
		}
		assignment.FromDate = fromDate
	}
	if err := setAmounts(assignment.Rows, SectionEarnings, req.Earnings); err != nil {
		return AssignmentResponse{}, err
	}
	if err := setAmounts(assignment.Rows, SectionDeductions, req.Deductions); err != nil {
		return AssignmentResponse{}, err
	}
	applyTotals(assignment)

	if err := qtx.UpdateAssignment(ctx, assignment); err != nil {
		s.logger.Error("update assignment persist failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}
	if err := qtx.ReplaceAssignmentRows(ctx, id, assignment.Rows); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	return mapAssignment(*assignment), nil
}

func (s *service) GetAssignments(ctx context.Context, companyIDs []string, filter AssignmentFilter) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAssignments(ctx, companyIDs, filter)
	if err != nil {
		s.logger.Error("get assignments failed", zap.Error(err))
		return nil, err
	}
	res := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		res[i] = mapAssignment(a)
	}
	return res, nil
}

func (s *service) GetAssignment(ctx context.Context, companyIDs []string, id string) (AssignmentResponse, error) {
	assignment, err := s.repo.FindAssignment(ctx, companyIDs, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}
	return mapAssignment(*assignment), nil
}

func (s *service) DeleteAssignment(ctx context.Context, companyIDs []string, id string) error {
	if err := s.repo.DeleteAssignment(ctx, companyIDs, id); err != nil {
		s.logger.Warn("delete assignment failed", zap.String("assignment_id", id), zap.Error(err))
		return mapRepositoryError(err, salarystructureerrors.ErrAssignmentNotFound)
	}
	return nil
}

func (s *service) Resolve(ctx context.Context, linkID string, asOf time.Time) (*Resolved, error) {
	assignment, err := s.repo.LatestAssignment(ctx, linkID, period.Truncate(asOf))
	if err != nil {
		s.logger.Error("resolve assignment failed", zap.String("company_link_id", linkID), zap.Error(err))
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}

	resolved := &Resolved{
		AssignmentID:      assignment.ID,
		SalaryStructureID: assignment.SalaryStructureID,
		FromDate:          assignment.FromDate,
	}
	rows := assignment.Rows
	if len(rows) == 0 && assignment.Structure != nil {
		rows = copyRows(assignment.ID, assignment.Structure.Rows)
	}
	for _, row := range rows {
		r := ResolvedRow{
			SalaryComponentID:    row.SalaryComponentID,
			ComponentName:        row.ComponentName,
			Abbreviation:         row.Abbreviation,
			EmployerContribution: row.EmployerContribution,
			DependsOnPaymentDays: row.DependsOnPaymentDays,
			Amount:               row.Amount,
		}
		if row.Section == SectionEarnings {
			resolved.Earnings = append(resolved.Earnings, r)
		} else {
			resolved.Deductions = append(resolved.Deductions, r)
		}
	}
	return resolved, nil
}

func copyRows(assignmentID uuid.UUID, rows []StructureRow) []AssignmentRow {
	out := make([]AssignmentRow, 0, len(rows))
	for _, row := range rows {
		copied := AssignmentRow{
			ID:                   uuid.New(),
			AssignmentID:         assignmentID,
			Section:              row.Section,
			SalaryComponentID:    row.SalaryComponentID,
			DependsOnPaymentDays: true,
			Idx:                  row.Idx,
			Amount:               row.Amount,
		}
		if row.Component != nil {
			copied.ComponentName = row.Component.Name
			copied.Abbreviation = row.Component.Abbreviation
			copied.EmployerContribution = row.Component.EmployerContribution
			copied.DependsOnPaymentDays = row.Component.DependsOnPaymentDays
		}
		out = append(out, copied)
	}
	return out
}

func setAmounts(rows []AssignmentRow, section string, reqs []RowRequest) error {
	for _, req := range reqs {
		found := false
		for i := range rows {
			if rows[i].Section == section && rows[i].SalaryComponentID.String() == req.SalaryComponentID {
				rows[i].Amount = req.Amount
				found = true
				break
			}
		}
		if !found {
			return salarystructureerrors.ErrRowNotInAssignment
		}
	}
	return nil
}

func mapAssignmentRow(row AssignmentRow) RowResponse {
	return RowResponse{
		SalaryComponentID:    row.SalaryComponentID.String(),
		ComponentName:        row.ComponentName,
		Abbreviation:         row.Abbreviation,
		EmployerContribution: row.EmployerContribution,
		DependsOnPaymentDays: row.DependsOnPaymentDays,
		Amount:               row.Amount,
	}
}

func mapAssignment(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:                a.ID.String(),
		CompanyID:         a.CompanyID.String(),
		Employee:          a.CompanyLinkID.String(),
		SalaryStructureID: a.SalaryStructureID.String(),
		FromDate:          period.FormatDate(a.FromDate),
		Earnings:          []RowResponse{},
		Deductions:        []RowResponse{},
		Totals: Totals{
			TotalEarnings:             a.TotalEarnings,
			TotalDeductions:           a.TotalDeductions,
			TotalEmployerContribution: a.TotalEmployerContribution,
			GrossPay:                  a.GrossPay,
			NetInHand:                 a.NetInHand,
			CTC:                       a.CTC,
		},
	}
	if a.Link != nil {
		resp.EmployeeName = a.Link.FullName
	}
	for _, row := range a.Rows {
		if row.Section == SectionEarnings {
			resp.Earnings = append(resp.Earnings, mapAssignmentRow(row))
		} else {
			resp.Deductions = append(resp.Deductions, mapAssignmentRow(row))
		}
	}
	return resp
}
