package company

import (
	"context"
	"strings"

	companyerrors "saral-hr/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	GetAll(ctx context.Context, companyIDs []string) ([]CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)

	// DefaultHolidayListID dipakai modul holiday; string kosong berarti company belum punya list.
	DefaultHolidayListID(ctx context.Context, companyID string) (string, error)

	UpsertRegistration(ctx context.Context, companyID string, req UpsertCompanyRegistrationRequest) error
	ListRegistrations(ctx context.Context, companyID string) ([]CompanyRegistrationResponse, error)
	DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	abbr := strings.ToUpper(strings.TrimSpace(req.Abbreviation))
	if name == "" || abbr == "" {
		return nil, companyerrors.ErrMissingRequiredFields
	}

	comp := &Company{
		ID:           uuid.New(),
		Name:         name,
		Abbreviation: abbr,
		Email:        req.Email,
		BankName:     strings.TrimSpace(req.BankName),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, comp); err != nil {
		s.logger.Error("create company failed", zap.String("abbreviation", abbr), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("create company success", zap.String("company_id", comp.ID.String()))
	return mapToResponse(comp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	comp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToResponse(comp), nil
}

func (s *service) GetAll(ctx context.Context, companyIDs []string) ([]CompanyResponse, error) {
	comps, err := s.repo.FindAll(ctx, companyIDs)
	if err != nil {
		s.logger.Error("get all companies failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]CompanyResponse, len(comps))
	for i := range comps {
		res[i] = *mapToResponse(&comps[i])
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	comp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		comp.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		comp.Email = req.Email
	}
	if req.BankName != nil {
		comp.BankName = strings.TrimSpace(*req.BankName)
	}
	if req.DefaultHolidayListID != nil {
		if *req.DefaultHolidayListID == "" {
			comp.DefaultHolidayListID = nil
		} else {
			listID, err := uuid.Parse(*req.DefaultHolidayListID)
			if err != nil {
				return nil, companyerrors.ErrInvalidHolidayListID
			}
			comp.DefaultHolidayListID = &listID
		}
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update company failed", zap.String("company_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToResponse(comp), nil
}

func (s *service) DefaultHolidayListID(ctx context.Context, companyID string) (string, error) {
	if strings.TrimSpace(companyID) == "" {
		return "", nil
	}
	comp, err := s.find(ctx, companyID)
	if err != nil {
		return "", err
	}
	if comp.DefaultHolidayListID == nil {
		return "", nil
	}
	return comp.DefaultHolidayListID.String(), nil
}

func (s *service) UpsertRegistration(ctx context.Context, companyID string, req UpsertCompanyRegistrationRequest) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	if !req.Type.Valid() {
		return companyerrors.ErrInvalidRegistrationType
	}
	if strings.TrimSpace(req.Number) == "" {
		return companyerrors.ErrMissingRequiredFields
	}

	reg := &CompanyRegistration{
		CompanyID: id,
		Type:      req.Type,
		Number:    strings.TrimSpace(req.Number),
		IssuedAt:  req.IssuedAt,
	}
	return mapRepositoryError(s.repo.UpsertRegistration(ctx, reg))
}

func (s *service) ListRegistrations(ctx context.Context, companyID string) ([]CompanyRegistrationResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	regs, err := s.repo.GetRegistrationsByCompanyID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	result := make([]CompanyRegistrationResponse, 0, len(regs))
	for _, r := range regs {
		result = append(result, CompanyRegistrationResponse{
			ID:        r.ID.String(),
			Type:      r.Type,
			Number:    r.Number,
			IssuedAt:  r.IssuedAt,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return result, nil
}

func (s *service) DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	if !regType.Valid() {
		return companyerrors.ErrInvalidRegistrationType
	}

	affected, err := s.repo.DeleteRegistration(ctx, id, regType)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return companyerrors.ErrRegistrationNotFound
	}
	return nil
}

func (s *service) find(ctx context.Context, id string) (*Company, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return comp, nil
}

func mapToResponse(c *Company) *CompanyResponse {
	resp := &CompanyResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Abbreviation: c.Abbreviation,
		Email:        c.Email,
		BankName:     c.BankName,
		IsActive:     c.IsActive,
	}
	if c.DefaultHolidayListID != nil {
		resp.DefaultHolidayListID = c.DefaultHolidayListID.String()
	}
	return resp
}
