package salarystructure

import (
	"context"
	"database/sql"
	"strings"
	"time"

	salarystructureerrors "saral-hr/internal/salarystructure/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateStructure(ctx context.Context, companyID string, req UpsertStructureRequest) (StructureResponse, error)
	UpdateStructure(ctx context.Context, companyIDs []string, id string, req UpsertStructureRequest) (StructureResponse, error)
	GetStructures(ctx context.Context, companyIDs []string) ([]StructureResponse, error)
	GetStructure(ctx context.Context, companyIDs []string, id string) (StructureResponse, error)
	DeleteStructure(ctx context.Context, companyIDs []string, id string) error

	CreateAssignment(ctx context.Context, companyIDs []string, req CreateAssignmentRequest) (AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, companyIDs []string, id string, req UpdateAssignmentRequest) (AssignmentResponse, error)
	GetAssignments(ctx context.Context, companyIDs []string, filter AssignmentFilter) ([]AssignmentResponse, error)
	GetAssignment(ctx context.Context, companyIDs []string, id string) (AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, companyIDs []string, id string) error

	// Resolve memilih assignment terbaru dengan from_date <= asOf. Baris
	// assignment dipakai lebih dulu, structure menjadi fallback. Nil jika
	// employee belum punya assignment.
	Resolve(ctx context.Context, linkID string, asOf time.Time) (*Resolved, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateStructure(ctx context.Context, companyID string, req UpsertStructureRequest) (StructureResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return StructureResponse{}, salarystructureerrors.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary structure begin tx failed", zap.Error(err))
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	structure := &SalaryStructure{ID: uuid.New(), CompanyID: companyUUID, IsActive: true}
	if err := s.applyStructure(ctx, qtx, structure, req); err != nil {
		return StructureResponse{}, err
	}

	if err := qtx.CreateStructure(ctx, structure); err != nil {
		s.logger.Error("create salary structure persist failed", zap.String("name", structure.Name), zap.Error(err))
		return StructureResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}
	if err := qtx.ReplaceStructureRows(ctx, structure.ID.String(), structure.Rows); err != nil {
		return StructureResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary structure commit failed", zap.Error(err))
		return StructureResponse{}, err
	}

	s.logger.Info("salary structure created",
		zap.String("salary_structure_id", structure.ID.String()),
		zap.Int("rows", len(structure.Rows)),
	)
	return mapStructure(*structure), nil
}

func (s *service) UpdateStructure(ctx context.Context, companyIDs []string, id string, req UpsertStructureRequest) (StructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary structure begin tx failed", zap.Error(err))
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	structure, err := qtx.FindStructure(ctx, companyIDs, id)
	if err != nil {
		return StructureResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}
	if err := s.applyStructure(ctx, qtx, structure, req); err != nil {
		return StructureResponse{}, err
	}

	if err := qtx.UpdateStructure(ctx, structure); err != nil {
		s.logger.Error("update salary structure persist failed", zap.String("salary_structure_id", id), zap.Error(err))
		return StructureResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}
	if err := qtx.ReplaceStructureRows(ctx, id, structure.Rows); err != nil {
		return StructureResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary structure commit failed", zap.Error(err))
		return StructureResponse{}, err
	}
	return mapStructure(*structure), nil
}

func (s *service) GetStructures(ctx context.Context, companyIDs []string) ([]StructureResponse, error) {
	structures, err := s.repo.FindStructures(ctx, companyIDs)
	if err != nil {
		s.logger.Error("get salary structures failed", zap.Error(err))
		return nil, err
	}
	res := make([]StructureResponse, len(structures))
	for i, st := range structures {
		res[i] = mapStructure(st)
	}
	return res, nil
}

func (s *service) GetStructure(ctx context.Context, companyIDs []string, id string) (StructureResponse, error) {
	structure, err := s.repo.FindStructure(ctx, companyIDs, id)
	if err != nil {
		return StructureResponse{}, mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}
	return mapStructure(*structure), nil
}

func (s *service) DeleteStructure(ctx context.Context, companyIDs []string, id string) error {
	if err := s.repo.DeleteStructure(ctx, companyIDs, id); err != nil {
		s.logger.Warn("delete salary structure failed", zap.String("salary_structure_id", id), zap.Error(err))
		return mapRepositoryError(err, salarystructureerrors.ErrStructureNotFound)
	}
	return nil
}

// applyStructure memastikan tabel earnings hanya berisi komponen Earning,
// deductions hanya Deduction, dan tidak ada komponen ganda per tabel.
func (s *service) applyStructure(ctx context.Context, repo Repository, structure *SalaryStructure, req UpsertStructureRequest) error {
	ids := make([]string, 0, len(req.Earnings)+len(req.Deductions))
	for _, row := range append(append([]RowRequest{}, req.Earnings...), req.Deductions...) {
		ids = append(ids, row.SalaryComponentID)
	}
	components, err := repo.FindComponents(ctx, structure.CompanyID.String(), ids)
	if err != nil {
		return err
	}
	byID := make(map[string]ComponentRef, len(components))
	for _, c := range components {
		byID[c.ID.String()] = c
	}

	earnings, err := buildRows(structure.ID, SectionEarnings, req.Earnings, byID)
	if err != nil {
		return err
	}
	deductions, err := buildRows(structure.ID, SectionDeductions, req.Deductions, byID)
	if err != nil {
		return err
	}

	structure.Name = strings.TrimSpace(req.Name)
	if req.IsActive != nil {
		structure.IsActive = *req.IsActive
	}
	structure.Rows = append(earnings, deductions...)
	return nil
}

func buildRows(structureID uuid.UUID, section string, reqs []RowRequest, components map[string]ComponentRef) ([]StructureRow, error) {
	rows := make([]StructureRow, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for i, req := range reqs {
		component, ok := components[req.SalaryComponentID]
		if !ok {
			return nil, salarystructureerrors.ErrComponentNotFound
		}
		switch {
		case section == SectionEarnings && component.Type != componentEarning:
			return nil, salarystructureerrors.NotEarning(i+1, component.Name)
		case section == SectionDeductions && component.Type != componentDeduction:
			return nil, salarystructureerrors.NotDeduction(i+1, component.Name)
		}
		if _, dup := seen[req.SalaryComponentID]; dup {
			if section == SectionEarnings {
				return nil, salarystructureerrors.ErrDuplicateEarning
			}
			return nil, salarystructureerrors.ErrDuplicateDeduction
		}
		seen[req.SalaryComponentID] = struct{}{}

		c := component
		rows = append(rows, StructureRow{
			ID:                uuid.New(),
			SalaryStructureID: structureID,
			Section:           section,
			SalaryComponentID: component.ID,
			Idx:               i + 1,
			Amount:            req.Amount,
			Component:         &c,
		})
	}
	return rows, nil
}

func mapStructureRow(row StructureRow) RowResponse {
	resp := RowResponse{
		SalaryComponentID: row.SalaryComponentID.String(),
		Amount:            row.Amount,
	}
	if row.Component != nil {
		resp.ComponentName = row.Component.Name
		resp.Abbreviation = row.Component.Abbreviation
		resp.EmployerContribution = row.Component.EmployerContribution
		resp.DependsOnPaymentDays = row.Component.DependsOnPaymentDays
	}
	return resp
}

func mapStructure(st SalaryStructure) StructureResponse {
	resp := StructureResponse{
		ID:         st.ID.String(),
		CompanyID:  st.CompanyID.String(),
		Name:       st.Name,
		IsActive:   st.IsActive,
		Earnings:   []RowResponse{},
		Deductions: []RowResponse{},
	}
	for _, row := range st.Rows {
		if row.Section == SectionEarnings {
			resp.Earnings = append(resp.Earnings, mapStructureRow(row))
		} else {
			resp.Deductions = append(resp.Deductions, mapStructureRow(row))
		}
	}
	return resp
}
