package holiday

import (
	"context"
	"database/sql"
	"strings"
	"time"

	holidayerrors "saral-hr/internal/holiday/errors"
	"saral-hr/internal/shared/period"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyLookup adalah bagian dari company.Service yang dibutuhkan modul ini.
type CompanyLookup interface {
	DefaultHolidayListID(ctx context.Context, companyID string) (string, error)
}

type Service interface {
	Create(ctx context.Context, companyID string, req UpsertHolidayListRequest) (HolidayListResponse, error)
	Update(ctx context.Context, companyIDs []string, id string, req UpsertHolidayListRequest) (HolidayListResponse, error)
	GetAll(ctx context.Context, companyIDs []string) ([]HolidayListResponse, error)
	GetByID(ctx context.Context, companyIDs []string, id string) (HolidayListResponse, error)
	Delete(ctx context.Context, companyIDs []string, id string) error

	// HolidaysBetween memakai default holiday list milik company. Company kosong
	// atau tanpa default list menghasilkan slice kosong, bukan error.
	HolidaysBetween(ctx context.Context, companyID string, from, to time.Time) ([]HolidayResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	companies CompanyLookup
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, companies CompanyLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{db: db, repo: repo, companies: companies, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req UpsertHolidayListRequest) (HolidayListResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayListResponse{}, holidayerrors.ErrHolidayListForbidden
	}

	list, err := buildHolidayList(req)
	if err != nil {
		return HolidayListResponse{}, err
	}
	list.ID = uuid.New()
	list.CompanyID = companyUUID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create holiday list begin tx failed", zap.Error(err))
		return HolidayListResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, list); err != nil {
		s.logger.Error("create holiday list persist failed", zap.Error(err))
		return HolidayListResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceHolidays(ctx, list.ID.String(), attachList(list)); err != nil {
		s.logger.Error("create holiday rows failed", zap.Error(err))
		return HolidayListResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create holiday list commit failed", zap.Error(err))
		return HolidayListResponse{}, err
	}

	s.logger.Info("create holiday list success",
		zap.String("holiday_list_id", list.ID.String()),
		zap.Int("holidays", len(list.Holidays)),
	)
	return mapToResponse(*list), nil
}

func (s *service) Update(ctx context.Context, companyIDs []string, id string, req UpsertHolidayListRequest) (HolidayListResponse, error) {
	next, err := buildHolidayList(req)
	if err != nil {
		return HolidayListResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update holiday list begin tx failed", zap.Error(err))
		return HolidayListResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	list, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return HolidayListResponse{}, mapRepositoryError(err)
	}

	list.Name = next.Name
	list.FromDate = next.FromDate
	list.ToDate = next.ToDate
	list.Holidays = next.Holidays

	if err := qtx.Update(ctx, list); err != nil {
		s.logger.Error("update holiday list persist failed", zap.Error(err))
		return HolidayListResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceHolidays(ctx, list.ID.String(), attachList(list)); err != nil {
		s.logger.Error("replace holiday rows failed", zap.Error(err))
		return HolidayListResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update holiday list commit failed", zap.Error(err))
		return HolidayListResponse{}, err
	}

	return mapToResponse(*list), nil
}

func (s *service) GetAll(ctx context.Context, companyIDs []string) ([]HolidayListResponse, error) {
	lists, err := s.repo.FindAllByCompanies(ctx, companyIDs)
	if err != nil {
		s.logger.Error("get holiday lists failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	res := make([]HolidayListResponse, len(lists))
	for i, l := range lists {
		res[i] = mapToResponse(l)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyIDs []string, id string) (HolidayListResponse, error) {
	list, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return HolidayListResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*list), nil
}

func (s *service) Delete(ctx context.Context, companyIDs []string, id string) error {
	if err := s.repo.Delete(ctx, companyIDs, id); err != nil {
		s.logger.Warn("delete holiday list failed", zap.String("holiday_list_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) HolidaysBetween(ctx context.Context, companyID string, from, to time.Time) ([]HolidayResponse, error) {
	res := []HolidayResponse{}
	if strings.TrimSpace(companyID) == "" {
		return res, nil
	}

	listID, err := s.companies.DefaultHolidayListID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if listID == "" {
		s.logger.Debug("company has no default holiday list", zap.String("company_id", companyID))
		return res, nil
	}

	holidays, err := s.repo.FindHolidaysBetween(ctx, listID, period.Truncate(from), period.Truncate(to))
	if err != nil {
		s.logger.Error("find holidays between dates failed", zap.String("holiday_list_id", listID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	for _, h := range holidays {
		res = append(res, mapHoliday(h))
	}
	return res, nil
}

// buildHolidayList memvalidasi rentang list, tanggal holiday di dalam rentang
// dan tidak ada tanggal ganda.
func buildHolidayList(req UpsertHolidayListRequest) (*HolidayList, error) {
	from, err := period.ParseDate(req.FromDate)
	if err != nil {
		return nil, holidayerrors.ErrInvalidDate
	}
	to, err := period.ParseDate(req.ToDate)
	if err != nil {
		return nil, holidayerrors.ErrInvalidDate
	}
	if from.After(to) {
		return nil, holidayerrors.ErrInvalidDateRange
	}

	list := &HolidayList{
		Name:     strings.TrimSpace(req.Name),
		FromDate: from,
		ToDate:   to,
		Holidays: make([]Holiday, 0, len(req.Holidays)),
	}

	seen := make(map[string]struct{}, len(req.Holidays))
	for _, row := range req.Holidays {
		date, err := period.ParseDate(row.HolidayDate)
		if err != nil {
			return nil, holidayerrors.ErrInvalidDate
		}
		key := period.FormatDate(date)
		if date.Before(from) || date.After(to) {
			return nil, holidayerrors.HolidayOutOfRange(key, period.FormatDate(from), period.FormatDate(to))
		}
		if _, dup := seen[key]; dup {
			return nil, holidayerrors.DuplicateHoliday(key)
		}
		seen[key] = struct{}{}

		list.Holidays = append(list.Holidays, Holiday{
			ID:          uuid.New(),
			HolidayDate: date,
			Description: strings.TrimSpace(row.Description),
			WeeklyOff:   row.WeeklyOff,
		})
	}
	return list, nil
}

func attachList(list *HolidayList) []Holiday {
	for i := range list.Holidays {
		list.Holidays[i].HolidayListID = list.ID
	}
	return list.Holidays
}

func mapHoliday(h Holiday) HolidayResponse {
	return HolidayResponse{
		HolidayDate: period.FormatDate(h.HolidayDate),
		Description: h.Description,
		WeeklyOff:   h.WeeklyOff,
	}
}

func mapToResponse(l HolidayList) HolidayListResponse {
	resp := HolidayListResponse{
		ID:        l.ID.String(),
		CompanyID: l.CompanyID.String(),
		Name:      l.Name,
		FromDate:  period.FormatDate(l.FromDate),
		ToDate:    period.FormatDate(l.ToDate),
		Holidays:  make([]HolidayResponse, 0, len(l.Holidays)),
	}
	for _, h := range l.Holidays {
		resp.Holidays = append(resp.Holidays, mapHoliday(h))
	}
	return resp
}
