package salaryhold

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	salaryholderrors "saral-hr/internal/salaryhold/errors"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Transisi yang diizinkan:
//
//	Draft/On Hold --Submit--> Submitted/On Hold
//	Submitted/On Hold --Release--> Cancelled/Was On Hold + Submitted/Released (amended)
type Service interface {
	Create(ctx context.Context, companyIDs []string, actorID string, req CreateHoldRequest) (HoldResponse, error)
	Submit(ctx context.Context, companyIDs []string, id string) (HoldResponse, error)
	Release(ctx context.Context, companyIDs []string, actorID, id string, req ReleaseRequest) (HoldResponse, error)
	Delete(ctx context.Context, companyIDs []string, id string) error
	GetAll(ctx context.Context, companyIDs []string, filter HoldFilter) ([]HoldResponse, error)
	GetByID(ctx context.Context, companyIDs []string, id string) (HoldResponse, error)

	HoldStatus(ctx context.Context, companyIDs []string, linkID string) (HoldStatus, error)
	SlipsForEmployee(ctx context.Context, companyIDs []string, args SlipsArgs) ([]SlipOption, error)
	IsOnHold(ctx context.Context, linkID string) (bool, error)
	// ActiveHold dipakai saat generate salary slip, tanpa cek izin.
	ActiveHold(ctx context.Context, linkID string) (string, bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryhold.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryhold.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyIDs []string, actorID string, req CreateHoldRequest) (HoldResponse, error) {
	holdDate, err := period.ParseDate(req.HoldDate)
	if err != nil {
		return HoldResponse{}, salaryholderrors.ErrInvalidDate
	}
	month, err := period.ParseMonth(req.Month)
	if err != nil {
		return HoldResponse{}, salaryholderrors.ErrInvalidMonth
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary hold begin tx failed", zap.Error(err))
		return HoldResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	link, err := findLink(ctx, qtx, companyIDs, req.Employee)
	if err != nil {
		return HoldResponse{}, err
	}
	if err := ensureNoActiveHold(ctx, qtx, link, ""); err != nil {
		return HoldResponse{}, err
	}

	hold := &SalaryHold{
		ID:            uuid.New(),
		CompanyID:     link.CompanyID,
		CompanyLinkID: link.ID,
		Year:          req.Year,
		Month:         month.String(),
		HoldDate:      holdDate,
		HoldReason:    strings.TrimSpace(req.HoldReason),
		Status:        StatusOnHold,
		DocStatus:     DocDraft,
	}
	if actorID != "" {
		hold.CreatedBy = &actorID
	}
	if req.SalarySlip != "" {
		slip, err := qtx.FindSlip(ctx, req.SalarySlip)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return HoldResponse{}, salaryholderrors.ErrSlipNotFound
			}
			return HoldResponse{}, err
		}
		if slip.CompanyLinkID != link.ID {
			return HoldResponse{}, salaryholderrors.ErrSlipNotForEmployee
		}
		hold.SalarySlipID = &slip.ID
	}

	if err := qtx.Create(ctx, hold); err != nil {
		s.logger.Error("create salary hold persist failed", zap.String("company_link_id", link.ID.String()), zap.Error(err))
		return HoldResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return HoldResponse{}, err
	}

	hold.Link = link
	return mapToResponse(hold), nil
}

// Submit mengaktifkan hold dan menandai salary slip yang ditautkan.
func (s *service) Submit(ctx context.Context, companyIDs []string, id string) (HoldResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HoldResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	hold, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return HoldResponse{}, mapRepositoryError(err)
	}
	if hold.DocStatus != DocDraft {
		return HoldResponse{}, salaryholderrors.ErrSubmitOnlyDraft
	}
	if hold.Status == StatusOnHold {
		link := hold.Link
		if link == nil {
			link = &LinkRef{ID: hold.CompanyLinkID}
		}
		if err := ensureNoActiveHold(ctx, qtx, link, hold.ID.String()); err != nil {
			return HoldResponse{}, err
		}
	}

	hold.DocStatus = DocSubmitted
	if err := qtx.Update(ctx, hold); err != nil {
		return HoldResponse{}, mapRepositoryError(err)
	}
	if hold.SalarySlipID != nil {
		reason := hold.HoldReason
		if err := qtx.SetSlipHold(ctx, hold.SalarySlipID.String(), true, &reason, nil); err != nil {
			return HoldResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return HoldResponse{}, err
	}

	s.logger.Info("salary hold submitted",
		zap.String("hold_id", hold.ID.String()),
		zap.String("company_link_id", hold.CompanyLinkID.String()),
	)
	return mapToResponse(hold), nil
}

// Release membatalkan hold asli (Was On Hold) lalu membuat salinan amended
// berstatus Released yang langsung di-submit, supaya jejak audit tetap utuh.
func (s *service) Release(ctx context.Context, companyIDs []string, actorID, id string, req ReleaseRequest) (HoldResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("release salary hold begin tx failed", zap.Error(err))
		return HoldResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	original, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return HoldResponse{}, mapRepositoryError(err)
	}
	releaseDate, reason, err := validateRelease(original, req)
	if err != nil {
		return HoldResponse{}, err
	}

	original.Status = StatusWasOnHold
	original.DocStatus = DocCancelled
	if err := qtx.Update(ctx, original); err != nil {
		return HoldResponse{}, mapRepositoryError(err)
	}

	amended := &SalaryHold{
		ID:            uuid.New(),
		CompanyID:     original.CompanyID,
		CompanyLinkID: original.CompanyLinkID,
		SalarySlipID:  original.SalarySlipID,
		Year:          original.Year,
		Month:         original.Month,
		HoldDate:      original.HoldDate,
		HoldReason:    original.HoldReason,
		Status:        StatusReleased,
		DocStatus:     DocSubmitted,
		ReleaseDate:   &releaseDate,
		ReleaseReason: &reason,
		AmendedFromID: &original.ID,
	}
	if actorID != "" {
		amended.CreatedBy = &actorID
	}
	if err := qtx.Create(ctx, amended); err != nil {
		s.logger.Error("create released salary hold failed", zap.String("hold_id", id), zap.Error(err))
		return HoldResponse{}, mapRepositoryError(err)
	}
	if amended.SalarySlipID != nil {
		if err := qtx.SetSlipHold(ctx, amended.SalarySlipID.String(), false, nil, &reason); err != nil {
			return HoldResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("release salary hold commit failed", zap.Error(err))
		return HoldResponse{}, err
	}

	s.logger.Info("salary hold released",
		zap.String("hold_id", original.ID.String()),
		zap.String("amended_id", amended.ID.String()),
	)
	amended.Link = original.Link
	return mapToResponse(amended), nil
}

func (s *service) Delete(ctx context.Context, companyIDs []string, id string) error {
	hold, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if hold.DocStatus != DocDraft {
		return salaryholderrors.ErrDeleteOnlyDraft
	}
	return mapRepositoryError(s.repo.Delete(ctx, id))
}

func (s *service) GetAll(ctx context.Context, companyIDs []string, filter HoldFilter) ([]HoldResponse, error) {
	holds, err := s.repo.FindAll(ctx, companyIDs, filter)
	if err != nil {
		return nil, err
	}
	out := make([]HoldResponse, len(holds))
	for i := range holds {
		out[i] = mapToResponse(&holds[i])
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyIDs []string, id string) (HoldResponse, error) {
	hold, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return HoldResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(hold), nil
}

func (s *service) HoldStatus(ctx context.Context, companyIDs []string, linkID string) (HoldStatus, error) {
	if _, err := findLink(ctx, s.repo, companyIDs, linkID); err != nil {
		return HoldStatus{}, err
	}
	hold, err := s.repo.FindActive(ctx, linkID, "")
	if err != nil || hold == nil {
		return HoldStatus{}, err
	}
	return HoldStatus{
		ID:         hold.ID.String(),
		HoldDate:   period.FormatDate(hold.HoldDate),
		HoldReason: hold.HoldReason,
	}, nil
}

func (s *service) SlipsForEmployee(ctx context.Context, companyIDs []string, args SlipsArgs) ([]SlipOption, error) {
	if _, err := findLink(ctx, s.repo, companyIDs, args.Employee); err != nil {
		return nil, err
	}

	var start *time.Time
	if args.Month != "" && args.Year != 0 {
		month, err := period.ParseMonth(args.Month)
		if err != nil {
			return []SlipOption{}, nil
		}
		st := period.MonthStart(args.Year, month)
		start = &st
	}

	slips, err := s.repo.FindSlips(ctx, args.Employee, start)
	if err != nil {
		return nil, err
	}
	out := make([]SlipOption, len(slips))
	for i, slip := range slips {
		out[i] = SlipOption{
			ID:        slip.ID.String(),
			Status:    slip.Status,
			NetSalary: slip.NetSalary,
			StartDate: period.FormatDate(slip.StartDate),
			EndDate:   period.FormatDate(slip.EndDate),
			OnHold:    slip.OnHold,
		}
	}
	return out, nil
}

func (s *service) IsOnHold(ctx context.Context, linkID string) (bool, error) {
	_, onHold, err := s.ActiveHold(ctx, linkID)
	return onHold, err
}

func (s *service) ActiveHold(ctx context.Context, linkID string) (string, bool, error) {
	hold, err := s.repo.FindActive(ctx, linkID, "")
	if err != nil || hold == nil {
		return "", false, err
	}
	return hold.HoldReason, true, nil
}

func findLink(ctx context.Context, repo Repository, companyIDs []string, linkID string) (*LinkRef, error) {
	link, err := repo.FindLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salaryholderrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !tenant.Allows(companyIDs, link.CompanyID.String()) {
		return nil, salaryholderrors.ErrForbidden
	}
	return link, nil
}

func ensureNoActiveHold(ctx context.Context, repo Repository, link *LinkRef, excludeID string) error {
	existing, err := repo.FindActive(ctx, link.ID.String(), excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		name := link.FullName
		if name == "" {
			name = link.ID.String()
		}
		return salaryholderrors.AlreadyOnHold(name, existing.ID.String())
	}
	return nil
}

func validateRelease(hold *SalaryHold, req ReleaseRequest) (time.Time, string, error) {
	if hold.DocStatus != DocSubmitted {
		return time.Time{}, "", salaryholderrors.ErrReleaseOnlySubmitted
	}
	if hold.Status == StatusReleased {
		return time.Time{}, "", salaryholderrors.ErrAlreadyReleased
	}
	if strings.TrimSpace(req.ReleaseDate) == "" {
		return time.Time{}, "", salaryholderrors.ErrReleaseDateRequired
	}
	reason := strings.TrimSpace(req.ReleaseReason)
	if reason == "" {
		return time.Time{}, "", salaryholderrors.ErrReleaseReasonRequired
	}
	releaseDate, err := period.ParseDate(req.ReleaseDate)
	if err != nil {
		return time.Time{}, "", salaryholderrors.ErrInvalidDate
	}
	if releaseDate.Before(period.Truncate(hold.HoldDate)) {
		return time.Time{}, "", salaryholderrors.ErrReleaseBeforeHold
	}
	return releaseDate, reason, nil
}

func mapToResponse(hold *SalaryHold) HoldResponse {
	resp := HoldResponse{
		ID:            hold.ID.String(),
		CompanyID:     hold.CompanyID.String(),
		Employee:      hold.CompanyLinkID.String(),
		Year:          hold.Year,
		Month:         hold.Month,
		HoldDate:      period.FormatDate(hold.HoldDate),
		HoldReason:    hold.HoldReason,
		Status:        hold.Status,
		DocStatus:     hold.DocStatus,
		ReleaseReason: hold.ReleaseReason,
	}
	if hold.Link != nil {
		resp.EmployeeName = hold.Link.FullName
		resp.Department = hold.Link.Department
		resp.Designation = hold.Link.Designation
		resp.Branch = hold.Link.Branch
	}
	if hold.SalarySlipID != nil {
		v := hold.SalarySlipID.String()
		resp.SalarySlip = &v
	}
	if hold.ReleaseDate != nil {
		v := period.FormatDate(*hold.ReleaseDate)
		resp.ReleaseDate = &v
	}
	if hold.AmendedFromID != nil {
		v := hold.AmendedFromID.String()
		resp.AmendedFrom = &v
	}
	return resp
}
