package salarycomponent

import (
	"context"
	"database/sql"
	"strings"
	"time"

	salarycomponenterrors "saral-hr/internal/salarycomponent/errors"
	"saral-hr/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req UpsertSalaryComponentRequest) (SalaryComponentResponse, error)
	Update(ctx context.Context, companyIDs []string, id string, req UpsertSalaryComponentRequest) (SalaryComponentResponse, error)
	GetAll(ctx context.Context, companyIDs []string, filter ComponentFilter) ([]SalaryComponentResponse, error)
	GetByID(ctx context.Context, companyIDs []string, id string) (SalaryComponentResponse, error)
	Delete(ctx context.Context, companyIDs []string, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycomponent.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req UpsertSalaryComponentRequest) (SalaryComponentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryComponentResponse{}, salarycomponenterrors.ErrForbidden
	}

	component := &SalaryComponent{ID: uuid.New(), CompanyID: companyUUID}
	if err := apply(component, req); err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, component); err != nil {
		s.logger.Error("create salary component persist failed", zap.String("name", component.Name), zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceMonths(ctx, component.ID.String(), component.Months); err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary component commit failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return SalaryComponentResponse{}, err
	}
	return mapToResponse(*component), nil
}

func (s *service) Update(ctx context.Context, companyIDs []string, id string, req UpsertSalaryComponentRequest) (SalaryComponentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	component, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	// Nominal bulan yang sudah ada tetap dipakai jika request tidak mengirim months.
	if len(req.Months) == 0 {
		for _, m := range component.Months {
			req.Months = append(req.Months, MonthAmountRequest{Month: m.Month, Amount: m.Amount})
		}
	}
	if err := apply(component, req); err != nil {
		return SalaryComponentResponse{}, err
	}

	if err := qtx.Update(ctx, component); err != nil {
		s.logger.Error("update salary component persist failed", zap.String("salary_component_id", id), zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceMonths(ctx, component.ID.String(), component.Months); err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary component commit failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	return mapToResponse(*component), nil
}

func (s *service) GetAll(ctx context.Context, companyIDs []string, filter ComponentFilter) ([]SalaryComponentResponse, error) {
	if filter.Type != "" && filter.Type != TypeEarning && filter.Type != TypeDeduction {
		return nil, salarycomponenterrors.ErrInvalidType
	}
	components, err := s.repo.FindAll(ctx, companyIDs, filter)
	if err != nil {
		s.logger.Error("get salary components failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	res := make([]SalaryComponentResponse, len(components))
	for i, c := range components {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyIDs []string, id string) (SalaryComponentResponse, error) {
	component, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*component), nil
}

func (s *service) Delete(ctx context.Context, companyIDs []string, id string) error {
	if err := s.repo.Delete(ctx, companyIDs, id); err != nil {
		s.logger.Warn("delete salary component failed", zap.String("salary_component_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func apply(component *SalaryComponent, req UpsertSalaryComponentRequest) error {
	if req.Type != TypeEarning && req.Type != TypeDeduction {
		return salarycomponenterrors.ErrInvalidType
	}
	if req.EmployerContribution && req.Type != TypeDeduction {
		return salarycomponenterrors.ErrEmployerContributionOnEarning
	}

	component.Name = strings.TrimSpace(req.Name)
	component.Abbreviation = strings.TrimSpace(req.Abbreviation)
	component.Type = req.Type
	component.IsSpecial = req.IsSpecial
	component.EmployerContribution = req.EmployerContribution
	component.DependsOnPaymentDays = true
	if req.DependsOnPaymentDays != nil {
		component.DependsOnPaymentDays = *req.DependsOnPaymentDays
	}

	component.Months = nil
	if !component.IsSpecial {
		return nil
	}
	months, err := FillMonths(req.Months)
	if err != nil {
		return err
	}
	for i := range months {
		months[i].SalaryComponentID = component.ID
	}
	component.Months = months
	return nil
}

// FillMonths melengkapi 12 bulan (nominal 0 untuk bulan yang kosong) dan
// mengurutkannya Januari..Desember.
func FillMonths(rows []MonthAmountRequest) ([]SpecialMonth, error) {
	amounts := make(map[time.Month]decimal.Decimal, len(rows))
	for _, row := range rows {
		m, ok := monthByName(row.Month)
		if !ok {
			return nil, salarycomponenterrors.InvalidMonth(row.Month)
		}
		if _, dup := amounts[m]; dup {
			return nil, salarycomponenterrors.DuplicateMonth(m.String())
		}
		amounts[m] = row.Amount
	}

	months := make([]SpecialMonth, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, SpecialMonth{
			ID:       uuid.New(),
			Month:    m.String(),
			Position: int(m),
			Amount:   amounts[m],
		})
	}
	return months, nil
}

func monthByName(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

func mapToResponse(c SalaryComponent) SalaryComponentResponse {
	resp := SalaryComponentResponse{
		ID:                   c.ID.String(),
		CompanyID:            c.CompanyID.String(),
		Name:                 c.Name,
		Abbreviation:         c.Abbreviation,
		Type:                 c.Type,
		IsSpecial:            c.IsSpecial,
		EmployerContribution: c.EmployerContribution,
		DependsOnPaymentDays: c.DependsOnPaymentDays,
	}
	for _, m := range c.Months {
		resp.Months = append(resp.Months, MonthAmountResponse{Month: m.Month, Amount: m.Amount})
	}
	return resp
}
