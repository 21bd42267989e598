package companylink

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	companylinkerrors "saral-hr/internal/companylink/errors"
	"saral-hr/internal/shared/contextutil"
	"saral-hr/internal/shared/counter"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsKeyPrefix = "employees:options:"
	optionsCacheTTL  = 1 * time.Hour
	searchLimit      = 20
	timelineLayout   = "02-01-2006"
)

func OptionsKey(companyID string) string {
	return OptionsKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyIDs []string, req CreateLinkRequest) (LinkResponse, error)
	Update(ctx context.Context, companyIDs []string, id string, req UpdateLinkRequest) (LinkResponse, error)
	GetByID(ctx context.Context, companyIDs []string, id string) (LinkResponse, error)
	GetAll(ctx context.Context, companyIDs []string, filter LinkFilter) ([]LinkResponse, error)
	SwitchCompany(ctx context.Context, companyIDs []string, employeeID string, req SwitchCompanyRequest) (LinkResponse, error)
	Timeline(ctx context.Context, employeeID string) ([]TimelineEntry, error)
	ActiveEmployees(ctx context.Context, companyIDs []string, companyID string) ([]EmployeeOption, error)
	Search(ctx context.Context, companyIDs []string, term string) ([]EmployeeOption, error)
	EmployeeChanged(ctx context.Context, employeeID string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("companylink.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("companylink.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, companyIDs []string, req CreateLinkRequest) (LinkResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create company link requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
	)

	if !tenant.Allows(companyIDs, req.CompanyID) {
		return LinkResponse{}, companylinkerrors.ErrCompanyForbidden
	}

	link := &CompanyLink{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		CompanyID:  uuid.MustParse(req.CompanyID),
		IsActive:   true,
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	if err := applyDetails(link, details{
		CategoryID:    req.CategoryID,
		Designation:   req.Designation,
		Department:    req.Department,
		Division:      req.Division,
		Branch:        req.Branch,
		WeeklyOff:     req.WeeklyOff,
		DateOfJoining: req.DateOfJoining,
		LeftDate:      req.LeftDate,
	}); err != nil {
		return LinkResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create company link begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LinkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	emp, err := qtx.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LinkResponse{}, companylinkerrors.ErrEmployeeNotFound
		}
		return LinkResponse{}, err
	}
	link.FullName = emp.FullName

	if link.IsActive {
		active, err := qtx.FindActiveByEmployee(ctx, req.EmployeeID)
		if err != nil {
			return LinkResponse{}, mapRepositoryError(err)
		}
		if active != nil {
			return LinkResponse{}, companylinkerrors.EmployeeAlreadyActive(emp.EmployeeCode, active.CompanyID.String(), active.Name)
		}
	}

	if err := s.assignName(ctx, tx, link, emp.EmployeeCode); err != nil {
		return LinkResponse{}, err
	}
	if err := qtx.Create(ctx, link); err != nil {
		s.logger.Error("create company link persist failed", zap.Error(err))
		return LinkResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return LinkResponse{}, err
	}

	s.invalidate(ctx, req.CompanyID)
	s.logger.Info("create company link success",
		zap.String("request_id", rid),
		zap.String("link_id", link.ID.String()),
		zap.String("name", link.Name),
	)
	return mapToResponse(*link), nil
}

func (s *service) Update(ctx context.Context, companyIDs []string, id string, req UpdateLinkRequest) (LinkResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update company link begin tx failed", zap.Error(err))
		return LinkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	link, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return LinkResponse{}, mapRepositoryError(err)
	}

	if err := applyDetails(link, details{
		CategoryID:    req.CategoryID,
		Designation:   req.Designation,
		Department:    req.Department,
		Division:      req.Division,
		Branch:        req.Branch,
		WeeklyOff:     req.WeeklyOff,
		DateOfJoining: req.DateOfJoining,
		LeftDate:      req.LeftDate,
	}); err != nil {
		return LinkResponse{}, err
	}

	emp, err := qtx.FindEmployee(ctx, link.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LinkResponse{}, companylinkerrors.ErrEmployeeNotFound
		}
		return LinkResponse{}, err
	}

	wasActive := link.IsActive
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	switch {
	case link.IsActive && !wasActive:
		active, err := qtx.FindActiveByEmployee(ctx, link.EmployeeID.String())
		if err != nil {
			return LinkResponse{}, mapRepositoryError(err)
		}
		if active != nil && active.ID != link.ID {
			return LinkResponse{}, companylinkerrors.EmployeeAlreadyActive(emp.EmployeeCode, active.CompanyID.String(), active.Name)
		}
		if err := s.assignName(ctx, tx, link, emp.EmployeeCode); err != nil {
			return LinkResponse{}, err
		}
	case !link.IsActive && wasActive:
		if err := s.archive(ctx, tx, link, emp.EmployeeCode); err != nil {
			return LinkResponse{}, err
		}
	}

	if err := qtx.Update(ctx, link); err != nil {
		s.logger.Error("update company link persist failed", zap.Error(err))
		return LinkResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update company link commit failed", zap.Error(err))
		return LinkResponse{}, err
	}

	s.invalidate(ctx, link.CompanyID.String())
	s.logger.Info("update company link success", zap.String("link_id", id))
	return mapToResponse(*link), nil
}

func (s *service) GetByID(ctx context.Context, companyIDs []string, id string) (LinkResponse, error) {
	link, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return LinkResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*link), nil
}

func (s *service) GetAll(ctx context.Context, companyIDs []string, filter LinkFilter) ([]LinkResponse, error) {
	links, err := s.repo.FindAll(ctx, companyIDs, filter)
	if err != nil {
		s.logger.Error("get all company links failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(links), nil
}

// SwitchCompany menutup link aktif (diarsipkan sebagai "<kode>-N") dan
// membuat link aktif baru di company tujuan dalam satu transaksi.
func (s *service) SwitchCompany(ctx context.Context, companyIDs []string, employeeID string, req SwitchCompanyRequest) (LinkResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !tenant.Allows(companyIDs, req.CompanyID) {
		return LinkResponse{}, companylinkerrors.ErrCompanyForbidden
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return LinkResponse{}, companylinkerrors.ErrEmployeeNotFound
	}

	next := &CompanyLink{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		CompanyID:  uuid.MustParse(req.CompanyID),
		IsActive:   true,
	}
	if err := applyDetails(next, details{
		CategoryID:    req.CategoryID,
		Designation:   req.Designation,
		Department:    req.Department,
		Division:      req.Division,
		Branch:        req.Branch,
		WeeklyOff:     req.WeeklyOff,
		DateOfJoining: req.DateOfJoining,
	}); err != nil {
		return LinkResponse{}, err
	}
	if next.DateOfJoining == nil {
		return LinkResponse{}, companylinkerrors.ErrInvalidDate
	}

	leftDate := next.DateOfJoining.AddDate(0, 0, -1)
	if strings.TrimSpace(req.LeftDate) != "" {
		d, err := period.ParseDate(req.LeftDate)
		if err != nil {
			return LinkResponse{}, companylinkerrors.ErrInvalidDate
		}
		leftDate = d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("switch company begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LinkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	emp, err := qtx.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LinkResponse{}, companylinkerrors.ErrEmployeeNotFound
		}
		return LinkResponse{}, err
	}
	next.FullName = emp.FullName

	current, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		return LinkResponse{}, mapRepositoryError(err)
	}
	if current == nil {
		return LinkResponse{}, companylinkerrors.ErrNoActiveLink
	}
	if current.CompanyID == next.CompanyID {
		return LinkResponse{}, companylinkerrors.ErrSameCompany
	}
	if current.DateOfJoining != nil && leftDate.Before(*current.DateOfJoining) {
		return LinkResponse{}, companylinkerrors.ErrLeftBeforeJoining
	}
	if next.WeeklyOff == "" {
		next.WeeklyOff = current.WeeklyOff
	}

	current.IsActive = false
	current.LeftDate = &leftDate
	if err := s.archive(ctx, tx, current, emp.EmployeeCode); err != nil {
		return LinkResponse{}, err
	}
	if err := qtx.Update(ctx, current); err != nil {
		s.logger.Error("switch company close link failed", zap.Error(err))
		return LinkResponse{}, mapRepositoryError(err)
	}

	next.Name = emp.EmployeeCode
	if err := qtx.Create(ctx, next); err != nil {
		s.logger.Error("switch company create link failed", zap.Error(err))
		return LinkResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("switch company commit failed", zap.String("request_id", rid), zap.Error(err))
		return LinkResponse{}, err
	}

	s.invalidate(ctx, current.CompanyID.String(), req.CompanyID)
	s.logger.Info("switch company success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("from_company", current.CompanyID.String()),
		zap.String("to_company", req.CompanyID),
		zap.String("archived_as", current.Name),
	)
	return mapToResponse(*next), nil
}

func (s *service) Timeline(ctx context.Context, employeeID string) ([]TimelineEntry, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, companylinkerrors.ErrEmployeeNotFound
	}
	rows, err := s.repo.Timeline(ctx, employeeID)
	if err != nil {
		s.logger.Error("employee timeline failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]TimelineEntry, len(rows))
	for i, r := range rows {
		status := "Inactive"
		if r.IsActive {
			status = "Active"
		}
		out[i] = TimelineEntry{
			Name:        r.Name,
			Company:     r.CompanyID.String(),
			CompanyName: r.CompanyName,
			Designation: r.Designation,
			StartDate:   formatTimelineDate(r.DateOfJoining),
			EndDate:     formatTimelineDate(r.LeftDate),
			Status:      status,
			IsActive:    r.IsActive,
		}
	}
	return out, nil
}

// ActiveEmployees mengembalikan opsi employee aktif. companyID kosong berarti
// gabungan semua company yang diizinkan.
func (s *service) ActiveEmployees(ctx context.Context, companyIDs []string, companyID string) ([]EmployeeOption, error) {
	targets := companyIDs
	if companyID != "" {
		if !tenant.Allows(companyIDs, companyID) {
			return nil, companylinkerrors.ErrCompanyForbidden
		}
		targets = []string{companyID}
	}

	out := make([]EmployeeOption, 0)
	for _, id := range targets {
		opts, err := s.companyOptions(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, opts...)
	}
	if len(targets) > 1 {
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
		})
	}
	return out, nil
}

func (s *service) companyOptions(ctx context.Context, companyID string) ([]EmployeeOption, error) {
	cacheKey := OptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.ActiveOptions(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		resp := mapToOptions(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, optionsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("load employee options failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

// Search mencari employee aktif berdasarkan nama, kode atau aadhaar, lalu
// mengurutkan hasil berdasarkan kedekatan nama.
func (s *service) Search(ctx context.Context, companyIDs []string, term string) ([]EmployeeOption, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []EmployeeOption{}, nil
	}

	rows, err := s.repo.Search(ctx, companyIDs, term, searchLimit)
	if err != nil {
		s.logger.Error("search employees failed", zap.String("term", term), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return rankOptions(term, mapToOptions(rows)), nil
}

// EmployeeChanged menyalin nama terbaru ke semua link employee dan
// membuang cache opsi company terkait.
func (s *service) EmployeeChanged(ctx context.Context, employeeID string) error {
	emp, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.UpdateFullName(ctx, employeeID, emp.FullName); err != nil {
		return mapRepositoryError(err)
	}

	links, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	companies := make([]string, 0, len(links))
	for _, l := range links {
		companies = append(companies, l.CompanyID.String())
	}
	s.invalidate(ctx, companies...)
	return nil
}

// assignName memberi link aktif nama kode employee. Link non-aktif yang
// masih memegang nama itu diarsipkan dulu.
func (s *service) assignName(ctx context.Context, tx *sql.Tx, link *CompanyLink, code string) error {
	if !link.IsActive {
		return s.archive(ctx, tx, link, code)
	}

	qtx := s.repo.WithTx(tx)
	holder, err := qtx.FindByName(ctx, code)
	if err != nil {
		return mapRepositoryError(err)
	}
	if holder != nil && holder.ID != link.ID {
		if holder.IsActive {
			return companylinkerrors.EmployeeAlreadyActive(code, holder.CompanyID.String(), holder.Name)
		}
		if err := s.archive(ctx, tx, holder, code); err != nil {
			return err
		}
		if err := qtx.Update(ctx, holder); err != nil {
			return mapRepositoryError(err)
		}
	}
	link.Name = code
	return nil
}

func (s *service) archive(ctx context.Context, tx *sql.Tx, link *CompanyLink, code string) error {
	n, err := s.counter.WithTx(tx).GetNextValue(ctx, link.EmployeeID.String(), counter.TypeLinkArchive)
	if err != nil {
		s.logger.Error("generate archive name failed", zap.String("employee_id", link.EmployeeID.String()), zap.Error(err))
		return err
	}
	link.Name = archiveName(code, n)
	return nil
}

func (s *service) invalidate(ctx context.Context, companyIDs ...string) {
	if s.rdb == nil || len(companyIDs) == 0 {
		return
	}
	keys := make([]string, len(companyIDs))
	for i, id := range companyIDs {
		keys[i] = OptionsKey(id)
	}
	s.rdb.Del(ctx, keys...)
}

type details struct {
	CategoryID    string
	Designation   string
	Department    string
	Division      string
	Branch        string
	WeeklyOff     string
	DateOfJoining string
	LeftDate      string
}

func applyDetails(link *CompanyLink, d details) error {
	link.CategoryID = nil
	if d.CategoryID != "" {
		id, err := uuid.Parse(d.CategoryID)
		if err != nil {
			return companylinkerrors.ErrInvalidCategoryID
		}
		link.CategoryID = &id
	}
	link.Designation = strings.TrimSpace(d.Designation)
	link.Department = strings.TrimSpace(d.Department)
	link.Division = strings.TrimSpace(d.Division)
	link.Branch = strings.TrimSpace(d.Branch)

	days, invalid := period.ParseWeekdays(d.WeeklyOff)
	if len(invalid) > 0 {
		return companylinkerrors.ErrInvalidWeeklyOff
	}
	link.WeeklyOff = period.FormatWeekdays(days)

	doj, err := parseOptionalDate(d.DateOfJoining)
	if err != nil {
		return err
	}
	left, err := parseOptionalDate(d.LeftDate)
	if err != nil {
		return err
	}
	if doj != nil && left != nil && left.Before(*doj) {
		return companylinkerrors.ErrLeftBeforeJoining
	}
	link.DateOfJoining = doj
	link.LeftDate = left
	return nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := period.ParseDate(v)
	if err != nil {
		return nil, companylinkerrors.ErrInvalidDate
	}
	return &d, nil
}

func archiveName(code string, n int64) string {
	return fmt.Sprintf("%s-%d", code, n)
}

func formatTimelineDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timelineLayout)
}

// rankOptions: nama yang salah satu katanya diawali term lebih dulu,
// lalu jarak fuzzy, lalu urutan SQL.
func rankOptions(term string, opts []EmployeeOption) []EmployeeOption {
	targets := make([]string, len(opts))
	for i, o := range opts {
		targets[i] = o.FullName
	}
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.SliceStable(ranks, func(a, b int) bool {
		pa, pb := hasWordPrefix(targets[ranks[a].OriginalIndex], term), hasWordPrefix(targets[ranks[b].OriginalIndex], term)
		if pa != pb {
			return pa
		}
		if ranks[a].Distance != ranks[b].Distance {
			return ranks[a].Distance < ranks[b].Distance
		}
		return ranks[a].OriginalIndex < ranks[b].OriginalIndex
	})

	seen := make(map[int]bool, len(ranks))
	out := make([]EmployeeOption, 0, len(opts))
	for _, r := range ranks {
		seen[r.OriginalIndex] = true
		out = append(out, opts[r.OriginalIndex])
	}
	// sisanya cocok lewat kode/aadhaar, urutan SQL dipertahankan
	for i, o := range opts {
		if !seen[i] {
			out = append(out, o)
		}
	}
	return out
}

func hasWordPrefix(name, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if strings.HasPrefix(w, term) {
			return true
		}
	}
	return false
}

func mapToOptions(rows []OptionRow) []EmployeeOption {
	out := make([]EmployeeOption, len(rows))
	for i, r := range rows {
		opt := EmployeeOption{
			Employee:  r.EmployeeCode,
			Name:      r.LinkID.String(),
			FullName:  r.FullName,
			Label:     r.FullName,
			Company:   r.CompanyID.String(),
			WeeklyOff: r.WeeklyOff,
		}
		if r.AadhaarNumber != nil && *r.AadhaarNumber != "" {
			opt.AadhaarNumber = *r.AadhaarNumber
			opt.Label = fmt.Sprintf("%s (%s)", r.FullName, *r.AadhaarNumber)
		}
		out[i] = opt
	}
	return out
}

func mapToResponse(l CompanyLink) LinkResponse {
	resp := LinkResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		EmployeeID:  l.EmployeeID.String(),
		CompanyID:   l.CompanyID.String(),
		FullName:    l.FullName,
		Designation: l.Designation,
		Department:  l.Department,
		Division:    l.Division,
		Branch:      l.Branch,
		WeeklyOff:   l.WeeklyOff,
		IsActive:    l.IsActive,
	}
	if l.CategoryID != nil {
		resp.CategoryID = l.CategoryID.String()
	}
	if l.DateOfJoining != nil {
		resp.DateOfJoining = period.FormatDate(*l.DateOfJoining)
	}
	if l.LeftDate != nil {
		resp.LeftDate = period.FormatDate(*l.LeftDate)
	}
	return resp
}

func mapToListResponse(links []CompanyLink) []LinkResponse {
	res := make([]LinkResponse, len(links))
	for i, l := range links {
		res[i] = mapToResponse(l)
	}
	return res
}
