package employee

import (
	"context"
	"database/sql"
	"strings"
	"time"

	employeeerrors "saral-hr/internal/employee/errors"
	"saral-hr/internal/shared/contextutil"
	"saral-hr/internal/shared/counter"
	"saral-hr/internal/shared/period"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const employeeCodePrefix = "HR-EMP-"

// ChangeListener diberi tahu setelah data employee berubah supaya data
// turunan (nama di company link, cache opsi) ikut diperbarui.
type ChangeListener interface {
	EmployeeChanged(ctx context.Context, employeeID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	listener ChangeListener
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, listener ChangeListener, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		listener: listener,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeCode),
	)

	empl := &Employee{ID: uuid.New()}
	if err := applyRequest(empl, req); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if empl.EmployeeCode == "" {
		code, err := s.counter.WithTx(tx).NextSeries(ctx, counter.GlobalScope, counter.TypeEmployeeCode, employeeCodePrefix)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		empl.EmployeeCode = code
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error) {
	filter.Q = strings.TrimSpace(filter.Q)
	filter.SortBy = strings.ToLower(strings.TrimSpace(filter.SortBy))
	filter.SortDir = strings.ToLower(strings.TrimSpace(filter.SortDir))

	empls, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	code := empl.EmployeeCode
	if err := applyRequest(empl, req); err != nil {
		return EmployeeResponse{}, err
	}
	// kode employee dipakai sebagai nama company link, tidak boleh berubah
	empl.EmployeeCode = code

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.notify(ctx, id)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	links, err := s.repo.CountLinks(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if links > 0 {
		return employeeerrors.ErrEmployeeHasLinks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) notify(ctx context.Context, employeeID string) {
	if s.listener == nil {
		return
	}
	if err := s.listener.EmployeeChanged(ctx, employeeID); err != nil {
		s.logger.Warn("employee change listener failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func applyRequest(empl *Employee, req CreateEmployeeRequest) error {
	empl.EmployeeCode = strings.TrimSpace(req.EmployeeCode)
	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.FullName = buildFullName(req.FirstName, req.LastName)
	empl.Gender = req.Gender
	empl.BankName = strings.TrimSpace(req.BankName)
	empl.BankAccountNo = strings.TrimSpace(req.BankAccountNo)
	empl.IFSCCode = strings.ToUpper(strings.TrimSpace(req.IFSCCode))
	empl.PFNumber = strings.TrimSpace(req.PFNumber)
	empl.UANNumber = strings.TrimSpace(req.UANNumber)
	empl.ESICNumber = strings.TrimSpace(req.ESICNumber)
	empl.ImageURL = req.ImageURL

	empl.AadhaarNumber = nil
	if aadhaar := strings.TrimSpace(req.AadhaarNumber); aadhaar != "" {
		empl.AadhaarNumber = &aadhaar
	}

	empl.DateOfBirth = nil
	if strings.TrimSpace(req.DateOfBirth) != "" {
		dob, err := period.ParseDate(req.DateOfBirth)
		if err != nil {
			return employeeerrors.ErrInvalidDateOfBirth
		}
		empl.DateOfBirth = &dob
	}
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            empl.ID.String(),
		EmployeeCode:  empl.EmployeeCode,
		FirstName:     empl.FirstName,
		LastName:      empl.LastName,
		FullName:      empl.FullName,
		DisplayName:   empl.DisplayName(),
		Gender:        empl.Gender,
		BankName:      empl.BankName,
		BankAccountNo: empl.BankAccountNo,
		IFSCCode:      empl.IFSCCode,
		PFNumber:      empl.PFNumber,
		UANNumber:     empl.UANNumber,
		ESICNumber:    empl.ESICNumber,
		ImageURL:      empl.ImageURL,
	}
	if empl.AadhaarNumber != nil {
		resp.AadhaarNumber = *empl.AadhaarNumber
	}
	if empl.DateOfBirth != nil {
		resp.DateOfBirth = empl.DateOfBirth.Format(time.DateOnly)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
