package variablepay

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"saral-hr/internal/shared/period"
	variablepayerrors "saral-hr/internal/variablepay/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type Service interface {
	Create(ctx context.Context, companyID string, req UpsertAssignmentRequest) (AssignmentResponse, error)
	Update(ctx context.Context, companyIDs []string, id string, req UpsertAssignmentRequest) (AssignmentResponse, error)
	GetAll(ctx context.Context, companyIDs []string, year int) ([]AssignmentResponse, error)
	GetByID(ctx context.Context, companyIDs []string, id string) (AssignmentResponse, error)
	Delete(ctx context.Context, companyIDs []string, id string) error

	// Exists dipakai cek eligibility salary slip.
	Exists(ctx context.Context, companyID string, year int, month time.Month) (bool, error)
	// PercentageFor mengembalikan found=false jika periode atau division belum diisi.
	PercentageFor(ctx context.Context, companyID, division string, year int, month time.Month) (decimal.Decimal, bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("variablepay.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("variablepay.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req UpsertAssignmentRequest) (AssignmentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AssignmentResponse{}, variablepayerrors.ErrForbidden
	}
	assignment := &Assignment{ID: uuid.New(), CompanyID: companyUUID}
	if err := apply(assignment, req); err != nil {
		return AssignmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create variable pay begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.ensureUniquePeriod(ctx, qtx, assignment); err != nil {
		return AssignmentResponse{}, err
	}
	if err := qtx.Create(ctx, assignment); err != nil {
		s.logger.Error("create variable pay persist failed", zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceRows(ctx, assignment.ID.String(), assignment.Rows); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create variable pay commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("variable pay assignment created",
		zap.String("company_id", companyID),
		zap.Int("year", assignment.Year),
		zap.String("month", assignment.Month),
	)
	return mapToResponse(*assignment), nil
}

func (s *service) Update(ctx context.Context, companyIDs []string, id string, req UpsertAssignmentRequest) (AssignmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update variable pay begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	assignment, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if err := apply(assignment, req); err != nil {
		return AssignmentResponse{}, err
	}
	if err := s.ensureUniquePeriod(ctx, qtx, assignment); err != nil {
		return AssignmentResponse{}, err
	}

	if err := qtx.Update(ctx, assignment); err != nil {
		s.logger.Error("update variable pay persist failed", zap.String("variable_pay_id", id), zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceRows(ctx, id, assignment.Rows); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update variable pay commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	return mapToResponse(*assignment), nil
}

func (s *service) GetAll(ctx context.Context, companyIDs []string, year int) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAll(ctx, companyIDs, year)
	if err != nil {
		s.logger.Error("get variable pay assignments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	res := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		res[i] = mapToResponse(a)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyIDs []string, id string) (AssignmentResponse, error) {
	assignment, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*assignment), nil
}

func (s *service) Delete(ctx context.Context, companyIDs []string, id string) error {
	if err := s.repo.Delete(ctx, companyIDs, id); err != nil {
		s.logger.Warn("delete variable pay failed", zap.String("variable_pay_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) Exists(ctx context.Context, companyID string, year int, month time.Month) (bool, error) {
	assignment, err := s.repo.FindByPeriod(ctx, companyID, year, month.String())
	if err != nil {
		return false, err
	}
	return assignment != nil, nil
}

func (s *service) PercentageFor(ctx context.Context, companyID, division string, year int, month time.Month) (decimal.Decimal, bool, error) {
	assignment, err := s.repo.FindByPeriod(ctx, companyID, year, month.String())
	if err != nil {
		s.logger.Error("find variable pay failed", zap.String("company_id", companyID), zap.Error(err))
		return decimal.Zero, false, err
	}
	if assignment == nil {
		return decimal.Zero, false, nil
	}
	division = strings.TrimSpace(division)
	for _, row := range assignment.Rows {
		if strings.EqualFold(row.Division, division) {
			return row.Percentage, true, nil
		}
	}
	return decimal.Zero, false, nil
}

func (s *service) ensureUniquePeriod(ctx context.Context, repo Repository, assignment *Assignment) error {
	existing, err := repo.FindByPeriod(ctx, assignment.CompanyID.String(), assignment.Year, assignment.Month)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != assignment.ID {
		return variablepayerrors.DuplicatePeriod(assignment.Month, assignment.Year)
	}
	return nil
}

// apply memvalidasi bulan, division unik dan total persentase maksimal 100.
func apply(assignment *Assignment, req UpsertAssignmentRequest) error {
	month, err := period.ParseMonth(req.Month)
	if err != nil {
		return variablepayerrors.ErrInvalidMonth
	}

	total := decimal.Zero
	seen := make(map[string]struct{}, len(req.Divisions))
	rows := make([]DivisionRow, 0, len(req.Divisions))
	for i, d := range req.Divisions {
		name := strings.TrimSpace(d.Division)
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return variablepayerrors.ErrDuplicateDivision
		}
		seen[key] = struct{}{}
		if d.Percentage.IsNegative() {
			return variablepayerrors.ErrNegativePercentage
		}
		total = total.Add(d.Percentage)

		rows = append(rows, DivisionRow{
			ID:           uuid.New(),
			AssignmentID: assignment.ID,
			Division:     name,
			Target:       d.Target,
			Achievement:  d.Achievement,
			Percentage:   d.Percentage,
			Idx:          i + 1,
		})
	}
	if total.GreaterThan(hundred) {
		return variablepayerrors.PercentageExceeded(total.String())
	}

	assignment.Year = req.Year
	assignment.Month = month.String()
	assignment.Rows = rows
	return nil
}

func mapToResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:              a.ID.String(),
		CompanyID:       a.CompanyID.String(),
		Year:            a.Year,
		Month:           a.Month,
		TotalPercentage: decimal.Zero,
		Divisions:       make([]DivisionResponse, 0, len(a.Rows)),
	}
	for _, row := range a.Rows {
		resp.TotalPercentage = resp.TotalPercentage.Add(row.Percentage)
		resp.Divisions = append(resp.Divisions, DivisionResponse{
			Division:    row.Division,
			Target:      row.Target,
			Achievement: row.Achievement,
			Percentage:  row.Percentage,
		})
	}
	return resp
}
