package salaryslip

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	salarysliperrors "saral-hr/internal/salaryslip/errors"
	"saral-hr/internal/shared/period"

	"go.uber.org/zap"
)

const (
	payslipURLTTL    = 7 * 24 * time.Hour
	chartCacheTTL    = 10 * time.Minute
	ChartKeyPrefix   = "salary_slips:status:"
	payslipMediaType = "application/pdf"
)

func ChartKey(companyID string, start time.Time) string {
	return ChartKeyPrefix + companyID + ":" + start.Format(monthLayout)
}

// StatusChart menghitung Submitted / Draft / Not Created per company yang
// boleh diakses user. Not Created = employee aktif yang belum punya slip.
func (s *service) StatusChart(ctx context.Context, companyIDs []string, year int, month string) (StatusChart, error) {
	m, err := period.ParseMonth(month)
	if err != nil {
		return StatusChart{}, salarysliperrors.ErrInvalidMonth
	}
	start := period.MonthStart(year, m)
	end := period.MonthEnd(year, m)

	counts := make([]CompanyCount, 0, len(companyIDs))
	for _, companyID := range companyIDs {
		c, err := s.companyCount(ctx, companyID, start, end)
		if err != nil {
			return StatusChart{}, err
		}
		counts = append(counts, c)
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].CompanyName < counts[j].CompanyName
	})

	chart := StatusChart{
		Labels: make([]string, len(counts)),
		Datasets: []ChartDataset{
			{Name: StatusSubmitted, Values: make([]int, len(counts)), ChartType: "bar"},
			{Name: StatusDraft, Values: make([]int, len(counts)), ChartType: "bar"},
			{Name: "Not Created", Values: make([]int, len(counts)), ChartType: "bar"},
		},
	}
	for i, c := range counts {
		chart.Labels[i] = c.CompanyName
		chart.Datasets[0].Values[i] = c.Submitted
		chart.Datasets[1].Values[i] = c.Draft
		chart.Datasets[2].Values[i] = max(0, c.Total-c.Submitted-c.Draft)
	}
	return chart, nil
}

func (s *service) companyCount(ctx context.Context, companyID string, start, end time.Time) (CompanyCount, error) {
	cacheKey := ChartKey(companyID, start)

	if s.deps.Redis != nil {
		if cached, err := s.deps.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var c CompanyCount
			if json.Unmarshal([]byte(cached), &c) == nil {
				return c, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		c, err := s.repo.CountForChart(ctx, companyID, start, end)
		if err != nil {
			return nil, err
		}
		if s.deps.Redis != nil {
			if jsonData, err := json.Marshal(c); err == nil {
				s.deps.Redis.Set(ctx, cacheKey, jsonData, chartCacheTTL)
			}
		}
		return c, nil
	})
	if err != nil {
		s.logger.Error("load salary slip chart failed", zap.String("company_id", companyID), zap.Error(err))
		return CompanyCount{}, err
	}
	return v.(CompanyCount), nil
}

func (s *service) invalidateChart(ctx context.Context, companyID string, start time.Time) {
	if s.deps.Redis == nil {
		return
	}
	s.deps.Redis.Del(ctx, ChartKey(companyID, start))
}

func PayslipKey(companyID, slipID string) string {
	return fmt.Sprintf("payslips/%s/%s.pdf", companyID, slipID)
}

func (s *service) RenderPayslip(ctx context.Context, id string) error {
	if s.deps.Storage == nil {
		return salarysliperrors.ErrStorageUnavailable
	}
	slip, err := s.repo.FindForRender(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if slip.Status != StatusSubmitted {
		s.logger.Warn("skip payslip render for non submitted slip",
			zap.String("salary_slip_id", id),
			zap.String("status", slip.Status),
		)
		return nil
	}

	body, err := renderPayslips([]SalarySlip{*slip})
	if err != nil {
		return err
	}
	key := PayslipKey(slip.CompanyID.String(), slip.ID.String())
	if err := s.deps.Storage.Put(ctx, key, payslipMediaType, body); err != nil {
		s.logger.Error("upload payslip failed", zap.String("key", key), zap.Error(err))
		return err
	}
	url, err := s.deps.Storage.PresignGet(ctx, key, payslipURLTTL)
	if err != nil {
		return err
	}
	if err := s.repo.SetPayslip(ctx, slip.ID.String(), key, url, s.now()); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("payslip rendered", zap.String("salary_slip_id", id), zap.String("key", key))
	return nil
}

// PayslipURL membuat URL unduhan baru karena URL tersimpan bisa kedaluwarsa.
func (s *service) PayslipURL(ctx context.Context, companyIDs []string, id string) (string, error) {
	slip, err := s.repo.FindByID(ctx, companyIDs, id)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	if slip.PayslipKey == nil || *slip.PayslipKey == "" {
		return "", salarysliperrors.ErrPayslipNotGenerated
	}
	if s.deps.Storage == nil {
		return "", salarysliperrors.ErrStorageUnavailable
	}
	return s.deps.Storage.PresignGet(ctx, *slip.PayslipKey, payslipURLTTL)
}

func (s *service) PrintBulk(ctx context.Context, companyIDs []string, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, salarysliperrors.ErrNoSlipsSelected
	}
	slips, err := s.repo.FindByIDs(ctx, companyIDs, ids)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	submitted := make([]SalarySlip, 0, len(slips))
	for _, slip := range slips {
		if slip.Status == StatusSubmitted {
			submitted = append(submitted, slip)
		}
	}
	if len(submitted) == 0 {
		return nil, salarysliperrors.ErrNoSubmittedSlips
	}
	return renderPayslips(submitted)
}
