package salaryslip

import (
	"context"
	"fmt"
	"strings"
	"time"

	"saral-hr/internal/attendance"
	salarysliperrors "saral-hr/internal/salaryslip/errors"
	"saral-hr/internal/salarystructure"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"go.uber.org/zap"
)

type checkResult struct {
	resolved *salarystructure.Resolved
	summary  attendance.Summary
	reasons  []string
}

func (s *service) Eligibility(ctx context.Context, companyIDs []string, args EligibilityArgs) (EligibilityResult, error) {
	month, err := period.ParseMonth(args.Month)
	if err != nil {
		return EligibilityResult{}, salarysliperrors.ErrInvalidMonth
	}
	if !tenant.Allows(companyIDs, args.Company) {
		return EligibilityResult{}, salarysliperrors.ErrForbidden
	}
	start := period.MonthStart(args.Year, month)
	end := period.MonthEnd(args.Year, month)

	links, err := s.repo.PayrollLinks(ctx, args.Company, start, end)
	if err != nil {
		s.logger.Error("load payroll employees failed", zap.String("company_id", args.Company), zap.Error(err))
		return EligibilityResult{}, err
	}
	existing, err := s.repo.SlipLinks(ctx, args.Company, start)
	if err != nil {
		return EligibilityResult{}, err
	}

	result := EligibilityResult{Eligible: []EligibleEmployee{}, Skipped: []SkippedEmployee{}}
	for i := range links {
		link := &links[i]
		res, err := s.check(ctx, link, start, end, existing[link.ID.String()])
		if err != nil {
			return EligibilityResult{}, err
		}
		if len(res.reasons) > 0 {
			result.Skipped = append(result.Skipped, SkippedEmployee{
				Employee:     link.ID.String(),
				EmployeeName: link.FullName,
				Reasons:      res.reasons,
			})
			continue
		}
		result.Eligible = append(result.Eligible, EligibleEmployee{
			Employee:     link.ID.String(),
			EmployeeName: link.FullName,
			Department:   link.Department,
			Designation:  link.Designation,
		})
	}
	return result, nil
}

// check mengumpulkan semua alasan employee tidak bisa dibuatkan slip, urutannya
// tetap: structure, variable pay, slip ganda, attendance.
func (s *service) check(ctx context.Context, link *LinkRef, start, end time.Time, hasSlip bool) (checkResult, error) {
	var res checkResult
	linkID := link.ID.String()

	resolved, err := s.deps.Structures.Resolve(ctx, linkID, end)
	if err != nil {
		return res, err
	}
	res.resolved = resolved
	if resolved == nil {
		res.reasons = append(res.reasons, salarysliperrors.ReasonNoSalaryStructure)
	} else if hasVariablePay(resolved) {
		ok, err := s.deps.VariablePay.Exists(ctx, link.CompanyID.String(), start.Year(), start.Month())
		if err != nil {
			return res, err
		}
		if !ok {
			res.reasons = append(res.reasons,
				fmt.Sprintf(salarysliperrors.ReasonNoVariablePay, start.Month().String(), start.Year()))
		}
	}

	if hasSlip {
		res.reasons = append(res.reasons, salarysliperrors.ReasonSlipExists)
	}

	summary, err := s.deps.Attendance.Summary(ctx, linkID, start, end)
	if err != nil {
		return res, err
	}
	res.summary = summary
	if summary.AttendanceCount == 0 {
		res.reasons = append(res.reasons, salarysliperrors.ReasonNoAttendance)
	}
	return res, nil
}

// Komponen variable pay dikenali dari namanya.
func hasVariablePay(resolved *salarystructure.Resolved) bool {
	for _, row := range resolved.Earnings {
		if strings.Contains(strings.ToLower(row.ComponentName), "variable") {
			return true
		}
	}
	return false
}

// ClassifySkipReasons mengelompokkan alasan skip berdasarkan teksnya, untuk
// ringkasan di dialog bulk generate.
func ClassifySkipReasons(reasons []string) SkipFlags {
	var flags SkipFlags
	for _, r := range reasons {
		lower := strings.ToLower(r)
		switch {
		case strings.Contains(lower, "salary structure"):
			flags.NoSalaryStructure = true
		case strings.Contains(lower, "variable pay"):
			flags.NoVariablePay = true
		case strings.Contains(lower, "already exists"):
			flags.DuplicateSlip = true
		case strings.Contains(lower, "attendance"):
			flags.NoAttendance = true
		}
	}
	return flags
}
