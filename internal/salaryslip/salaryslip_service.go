package salaryslip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"saral-hr/internal/attendance"
	"saral-hr/internal/events"
	"saral-hr/internal/messaging/kafka"
	salarysliperrors "saral-hr/internal/salaryslip/errors"
	"saral-hr/internal/salarystructure"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/contextutil"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/shared/storage"
	"saral-hr/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	eventSlipSubmitted = "salary_slip.submitted"
	aggregateType      = "salary_slip"
	monthLayout        = "2006-01"
)

var half = decimal.NewFromFloat(0.5)

type Service interface {
	GetAll(ctx context.Context, companyIDs []string, filter SlipFilter) ([]SalarySlipResponse, error)
	GetByID(ctx context.Context, companyIDs []string, id string) (SalarySlipResponse, error)
	Generate(ctx context.Context, companyIDs []string, req GenerateRequest) (SalarySlipResponse, error)
	BulkGenerate(ctx context.Context, companyIDs []string, args BulkGenerateArgs) (BulkGenerateResult, error)
	Eligibility(ctx context.Context, companyIDs []string, args EligibilityArgs) (EligibilityResult, error)
	Update(ctx context.Context, companyIDs []string, id string, req UpdateSlipRequest) (SalarySlipResponse, error)
	Submit(ctx context.Context, companyIDs []string, actorID, id string) (SalarySlipResponse, error)
	Cancel(ctx context.Context, companyIDs []string, id string) (SalarySlipResponse, error)
	Delete(ctx context.Context, companyIDs []string, id string) error
	StatusChart(ctx context.Context, companyIDs []string, year int, month string) (StatusChart, error)

	// RenderPayslip dipanggil consumer setelah slip di-submit.
	RenderPayslip(ctx context.Context, id string) error
	PayslipURL(ctx context.Context, companyIDs []string, id string) (string, error)
	PrintBulk(ctx context.Context, companyIDs []string, ids []string) ([]byte, error)
	// RefreshAttendance menghitung ulang hari kerja slip Draft untuk bulan (YYYY-MM) yang berubah.
	RefreshAttendance(ctx context.Context, linkID string, months []string) (int, error)
}

type StructureResolver interface {
	Resolve(ctx context.Context, linkID string, asOf time.Time) (*salarystructure.Resolved, error)
}

type AttendanceSummarizer interface {
	Summary(ctx context.Context, linkID string, from, to time.Time) (attendance.Summary, error)
}

type VariablePayLookup interface {
	Exists(ctx context.Context, companyID string, year int, month time.Month) (bool, error)
	PercentageFor(ctx context.Context, companyID, division string, year int, month time.Month) (decimal.Decimal, bool, error)
}

type HoldChecker interface {
	ActiveHold(ctx context.Context, linkID string) (reason string, onHold bool, err error)
}

// Dependencies berisi modul lain yang dibaca saat generate. Holds, Outbox,
// Redis dan Storage boleh nil.
type Dependencies struct {
	Structures  StructureResolver
	Attendance  AttendanceSummarizer
	VariablePay VariablePayLookup
	Holds       HoldChecker
	Outbox      kafka.OutboxRepository
	Redis       *redis.Client
	Storage     storage.ObjectStorage
}

type service struct {
	db     *sql.DB
	repo   Repository
	deps   Dependencies
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryslip.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		deps:   deps,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context, companyIDs []string, filter SlipFilter) ([]SalarySlipResponse, error) {
	var start *time.Time
	if filter.Year != 0 && filter.Month != "" {
		month, err := period.ParseMonth(filter.Month)
		if err != nil {
			return nil, salarysliperrors.ErrInvalidMonth
		}
		st := period.MonthStart(filter.Year, month)
		start = &st
	}

	slips, err := s.repo.FindAll(ctx, companyIDs, filter, start)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make([]SalarySlipResponse, len(slips))
	for i := range slips {
		out[i] = mapToResponse(&slips[i])
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyIDs []string, id string) (SalarySlipResponse, error) {
	slip, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(slip), nil
}

func (s *service) Generate(ctx context.Context, companyIDs []string, req GenerateRequest) (SalarySlipResponse, error) {
	month, err := period.ParseMonth(req.Month)
	if err != nil {
		return SalarySlipResponse{}, salarysliperrors.ErrInvalidMonth
	}
	start := period.MonthStart(req.Year, month)
	end := period.MonthEnd(req.Year, month)

	link, err := s.findLink(ctx, companyIDs, req.Employee)
	if err != nil {
		return SalarySlipResponse{}, err
	}

	existing, err := s.repo.FindActive(ctx, link.ID.String(), start)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	res, err := s.check(ctx, link, start, end, existing != nil)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	if len(res.reasons) > 0 {
		return SalarySlipResponse{}, salarysliperrors.NotEligible(res.reasons)
	}

	slip := &SalarySlip{
		ID:            uuid.New(),
		CompanyID:     link.CompanyID,
		CompanyLinkID: link.ID,
		StartDate:     start,
		EndDate:       end,
		Status:        StatusDraft,
		WorkingDays:   period.DaysIn(req.Year, month),
	}
	slip.SalaryStructureID = &res.resolved.SalaryStructureID
	if res.resolved.AssignmentID != uuid.Nil {
		slip.AssignmentID = &res.resolved.AssignmentID
	}
	applySummary(slip, res.summary)
	slip.Rows = buildRows(slip.ID, res.resolved)
	applyTotals(slip)

	pct, found, err := s.deps.VariablePay.PercentageFor(ctx, link.CompanyID.String(), link.Division, req.Year, month)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	if found {
		slip.VariablePayPercentage = pct
	}

	if s.deps.Holds != nil {
		reason, onHold, err := s.deps.Holds.ActiveHold(ctx, link.ID.String())
		if err != nil {
			return SalarySlipResponse{}, err
		}
		if onHold {
			slip.OnHold = true
			slip.HoldReason = &reason
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate salary slip begin tx failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, slip); err != nil {
		s.logger.Error("generate salary slip persist failed",
			zap.String("company_link_id", link.ID.String()),
			zap.Error(err),
		)
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceRows(ctx, slip.ID.String(), slip.Rows); err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("generate salary slip commit failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}

	s.invalidateChart(ctx, slip.CompanyID.String(), start)
	s.logger.Info("salary slip generated",
		zap.String("salary_slip_id", slip.ID.String()),
		zap.String("company_link_id", link.ID.String()),
		zap.String("period", start.Format(monthLayout)),
	)

	slip.Link = link
	return mapToResponse(slip), nil
}

// BulkGenerate tidak berhenti pada employee yang gagal; setiap kegagalan
// dicatat sebagai "<employee>: <pesan>".
func (s *service) BulkGenerate(ctx context.Context, companyIDs []string, args BulkGenerateArgs) (BulkGenerateResult, error) {
	if len(args.Employees) == 0 {
		return BulkGenerateResult{}, salarysliperrors.ErrNoEmployeesSelected
	}
	if _, err := period.ParseMonth(args.Month); err != nil {
		return BulkGenerateResult{}, salarysliperrors.ErrInvalidMonth
	}

	scope := companyIDs
	if args.Company != "" {
		if !tenant.Allows(companyIDs, args.Company) {
			return BulkGenerateResult{}, salarysliperrors.ErrForbidden
		}
		scope = []string{args.Company}
	}

	result := BulkGenerateResult{Errors: []string{}}
	for _, employee := range args.Employees {
		_, err := s.Generate(ctx, scope, GenerateRequest{
			Employee: employee,
			Year:     args.Year,
			Month:    args.Month,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", employee, messageOf(err)))
			continue
		}
		result.Success++
	}

	s.logger.Info("bulk salary slip generation finished",
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *service) Update(ctx context.Context, companyIDs []string, id string, req UpdateSlipRequest) (SalarySlipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	slip, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if slip.Status != StatusDraft {
		return SalarySlipResponse{}, salarysliperrors.ErrUpdateOnlyDraft
	}

	if err := setAmounts(slip.Rows, SectionEarnings, req.Earnings); err != nil {
		return SalarySlipResponse{}, err
	}
	if err := setAmounts(slip.Rows, SectionDeductions, req.Deductions); err != nil {
		return SalarySlipResponse{}, err
	}
	applyTotals(slip)

	if err := qtx.Update(ctx, slip); err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceRows(ctx, slip.ID.String(), slip.Rows); err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return SalarySlipResponse{}, err
	}
	return mapToResponse(slip), nil
}

func (s *service) Submit(ctx context.Context, companyIDs []string, actorID, id string) (SalarySlipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit salary slip begin tx failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	slip, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if slip.Status != StatusDraft {
		return SalarySlipResponse{}, salarysliperrors.ErrSubmitOnlyDraft
	}

	now := s.now()
	slip.Status = StatusSubmitted
	slip.SubmittedAt = &now
	if actorID != "" {
		slip.SubmittedBy = &actorID
	}
	if err := qtx.Update(ctx, slip); err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if err := s.emitSubmitted(ctx, tx, slip, actorID); err != nil {
		return SalarySlipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit salary slip commit failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}

	s.invalidateChart(ctx, slip.CompanyID.String(), slip.StartDate)
	s.logger.Info("salary slip submitted",
		zap.String("salary_slip_id", slip.ID.String()),
		zap.String("submitted_by", actorID),
	)
	return mapToResponse(slip), nil
}

func (s *service) Cancel(ctx context.Context, companyIDs []string, id string) (SalarySlipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	slip, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if slip.Status != StatusSubmitted {
		return SalarySlipResponse{}, salarysliperrors.ErrCancelOnlySubmitted
	}

	slip.Status = StatusCancelled
	if err := qtx.Update(ctx, slip); err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return SalarySlipResponse{}, err
	}

	s.invalidateChart(ctx, slip.CompanyID.String(), slip.StartDate)
	s.logger.Info("salary slip cancelled", zap.String("salary_slip_id", slip.ID.String()))
	return mapToResponse(slip), nil
}

func (s *service) Delete(ctx context.Context, companyIDs []string, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	slip, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if slip.Status != StatusDraft {
		return salarysliperrors.ErrDeleteOnlyDraft
	}
	if err := qtx.ReplaceRows(ctx, id, nil); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateChart(ctx, slip.CompanyID.String(), slip.StartDate)
	return nil
}

func (s *service) RefreshAttendance(ctx context.Context, linkID string, months []string) (int, error) {
	refreshed := 0
	for _, m := range months {
		start, err := time.Parse(monthLayout, m)
		if err != nil {
			s.logger.Warn("skip invalid attendance month", zap.String("month", m))
			continue
		}
		slip, err := s.repo.FindActive(ctx, linkID, start)
		if err != nil {
			return refreshed, err
		}
		if slip == nil || slip.Status != StatusDraft {
			continue
		}

		summary, err := s.deps.Attendance.Summary(ctx, linkID, slip.StartDate, slip.EndDate)
		if err != nil {
			return refreshed, err
		}
		applySummary(slip, summary)
		if err := s.repo.Update(ctx, slip); err != nil {
			return refreshed, mapRepositoryError(err)
		}
		refreshed++
	}
	return refreshed, nil
}

func (s *service) findLink(ctx context.Context, companyIDs []string, linkID string) (*LinkRef, error) {
	link, err := s.repo.FindLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salarysliperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !tenant.Allows(companyIDs, link.CompanyID.String()) {
		return nil, salarysliperrors.ErrForbidden
	}
	return link, nil
}

func (s *service) emitSubmitted(ctx context.Context, tx *sql.Tx, slip *SalarySlip, actorID string) error {
	if s.deps.Outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event := events.SalarySlipSubmittedEvent{
		EventType:    eventSlipSubmitted,
		RequestID:    rid,
		SalarySlipID: slip.ID.String(),
		CompanyID:    slip.CompanyID.String(),
		SubmittedBy:  actorID,
		OccurredAt:   s.now().UTC(),
	}
	ev, err := kafka.NewOutboxEvent(rid, aggregateType, slip.ID.String(), event.EventType, events.SalarySlipSubmittedTopic, event)
	if err != nil {
		s.logger.Error("build salary slip outbox event failed", zap.Error(err))
		return err
	}
	if err := s.deps.Outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("salary slip outbox persist failed",
			zap.String("salary_slip_id", slip.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// applySummary menyalin hitungan attendance dan menghitung payment days:
// working - absent - lwp - 0.5 * half day, minimal 0.
func applySummary(slip *SalarySlip, sum attendance.Summary) {
	slip.PresentDays = sum.Present
	slip.AbsentDays = sum.Absent
	slip.HalfDays = sum.HalfDay
	slip.LWPDays = sum.LWP
	slip.Holidays = sum.Holiday
	slip.WeeklyOffs = sum.WeeklyOff

	days := decimal.NewFromInt(int64(slip.WorkingDays - sum.Absent - sum.LWP)).
		Sub(half.Mul(decimal.NewFromInt(int64(sum.HalfDay))))
	if days.IsNegative() {
		days = decimal.Zero
	}
	slip.PaymentDays = days
}

func buildRows(slipID uuid.UUID, resolved *salarystructure.Resolved) []SlipRow {
	rows := make([]SlipRow, 0, len(resolved.Earnings)+len(resolved.Deductions))
	add := func(section string, src []salarystructure.ResolvedRow) {
		for i, r := range src {
			rows = append(rows, SlipRow{
				ID:                   uuid.New(),
				SalarySlipID:         slipID,
				Section:              section,
				SalaryComponentID:    r.SalaryComponentID,
				ComponentName:        r.ComponentName,
				Abbreviation:         r.Abbreviation,
				EmployerContribution: r.EmployerContribution,
				DependsOnPaymentDays: r.DependsOnPaymentDays,
				Idx:                  i + 1,
				Amount:               r.Amount,
			})
		}
	}
	add(SectionEarnings, resolved.Earnings)
	add(SectionDeductions, resolved.Deductions)
	return rows
}

// applyTotals menghitung ulang total dari baris slip. Deduction yang
// ditandai employer contribution tidak mengurangi net salary.
func applyTotals(slip *SalarySlip) {
	earnings, deductions, employer := decimal.Zero, decimal.Zero, decimal.Zero
	for _, row := range slip.Rows {
		switch {
		case row.Section == SectionEarnings:
			earnings = earnings.Add(row.Amount)
		case row.EmployerContribution:
			employer = employer.Add(row.Amount)
		default:
			deductions = deductions.Add(row.Amount)
		}
	}
	slip.TotalEarnings = earnings
	slip.TotalDeductions = deductions
	slip.TotalEmployerContribution = employer
	slip.NetSalary = earnings.Sub(deductions)
}

func setAmounts(rows []SlipRow, section string, amounts []RowAmount) error {
	for _, a := range amounts {
		found := false
		for i := range rows {
			if rows[i].Section == section && rows[i].SalaryComponentID.String() == a.SalaryComponentID {
				rows[i].Amount = a.Amount
				found = true
				break
			}
		}
		if !found {
			return salarysliperrors.ErrRowNotInSlip
		}
	}
	return nil
}

func messageOf(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func mapToResponse(slip *SalarySlip) SalarySlipResponse {
	resp := SalarySlipResponse{
		ID:                        slip.ID.String(),
		CompanyID:                 slip.CompanyID.String(),
		Employee:                  slip.CompanyLinkID.String(),
		StartDate:                 period.FormatDate(slip.StartDate),
		EndDate:                   period.FormatDate(slip.EndDate),
		Status:                    slip.Status,
		WorkingDays:               slip.WorkingDays,
		PaymentDays:               slip.PaymentDays,
		PresentDays:               slip.PresentDays,
		AbsentDays:                slip.AbsentDays,
		HalfDays:                  slip.HalfDays,
		LWPDays:                   slip.LWPDays,
		Holidays:                  slip.Holidays,
		WeeklyOffs:                slip.WeeklyOffs,
		VariablePayPercentage:     slip.VariablePayPercentage,
		Earnings:                  []RowResponse{},
		Deductions:                []RowResponse{},
		TotalEarnings:             slip.TotalEarnings,
		TotalDeductions:           slip.TotalDeductions,
		TotalEmployerContribution: slip.TotalEmployerContribution,
		NetSalary:                 slip.NetSalary,
		OnHold:                    slip.OnHold,
		HoldReason:                slip.HoldReason,
		ReleaseReason:             slip.ReleaseReason,
		HasPayslip:                slip.PayslipKey != nil && strings.TrimSpace(*slip.PayslipKey) != "",
	}
	if slip.Link != nil {
		resp.EmployeeName = slip.Link.FullName
		resp.Department = slip.Link.Department
		resp.Designation = slip.Link.Designation
	}
	for _, row := range slip.Rows {
		r := RowResponse{
			SalaryComponentID:    row.SalaryComponentID.String(),
			ComponentName:        row.ComponentName,
			Abbreviation:         row.Abbreviation,
			EmployerContribution: row.EmployerContribution,
			DependsOnPaymentDays: row.DependsOnPaymentDays,
			Amount:               row.Amount,
		}
		if row.Section == SectionEarnings {
			resp.Earnings = append(resp.Earnings, r)
		} else {
			resp.Deductions = append(resp.Deductions, r)
		}
	}
	return resp
}
