package register

import (
	"context"
	"fmt"
	"strings"

	registererrors "saral-hr/internal/register/errors"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"go.uber.org/zap"
)

type Service interface {
	Build(ctx context.Context, companyIDs []string, kind string, args Args) (Table, error)
	// Export mengembalikan isi workbook dan nama file yang disarankan.
	Export(ctx context.Context, companyIDs []string, kind string, args Args) ([]byte, string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("register.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("register.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Build(ctx context.Context, companyIDs []string, kind string, args Args) (Table, error) {
	build, ok := builders[kind]
	if !ok {
		return Table{}, registererrors.ErrUnknownRegister
	}
	if strings.TrimSpace(args.Company) == "" {
		return Table{}, registererrors.ErrCompanyRequired
	}
	if !tenant.Allows(companyIDs, args.Company) {
		return Table{}, registererrors.ErrForbidden
	}
	month, err := period.ParseMonth(args.Month)
	if err != nil {
		return Table{}, registererrors.ErrInvalidMonth
	}
	switch args.BankType {
	case "", BankHome, BankDifferent:
	default:
		return Table{}, registererrors.ErrInvalidBankType
	}

	start := period.MonthStart(args.Year, month)
	records, err := s.repo.SubmittedSlips(ctx, args.Company, args.Category, start)
	if err != nil {
		return Table{}, err
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.SlipID)
	}
	lines, err := s.repo.Lines(ctx, ids)
	if err != nil {
		return Table{}, err
	}
	bySlip := make(map[string][]ComponentLine, len(records))
	for _, l := range lines {
		bySlip[l.SlipID] = append(bySlip[l.SlipID], l)
	}

	table := build(records, bySlip, args)
	s.logger.Debug("register built",
		zap.String("kind", kind),
		zap.String("company_id", args.Company),
		zap.Time("period", start),
		zap.Int("rows", len(table.Rows)),
	)
	return table, nil
}

func (s *service) Export(ctx context.Context, companyIDs []string, kind string, args Args) ([]byte, string, error) {
	table, err := s.Build(ctx, companyIDs, kind, args)
	if err != nil {
		return nil, "", err
	}
	data, err := writeWorkbook(table)
	if err != nil {
		s.logger.Error("failed to write register workbook", zap.String("kind", kind), zap.Error(err))
		return nil, "", err
	}
	return data, fmt.Sprintf("%s-%d-%s.xlsx", kind, args.Year, strings.ToLower(args.Month)), nil
}
