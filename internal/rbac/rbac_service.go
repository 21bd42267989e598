package rbac

import (
	"context"
	"sort"
	"sync"
	"time"

	"saral-hr/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const defaultPolicyTTL = time.Minute

type Service interface {
	LoadCompanyPolicy(companyID string) error
	Invalidate(companyID string)
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(ctx context.Context, employeeID, companyID string) ([]string, error)
	PermittedCompanies(ctx context.Context, userID, defaultCompanyID string) ([]string, error)
}

// service menyimpan policy semua company di satu enforcer (domain = company_id).
// Policy per company di-reload kalau sudah lebih tua dari ttl.
type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	loaded map[string]time.Time

	logger *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		ttl:      defaultPolicyTTL,
		now:      time.Now,
		loaded:   make(map[string]time.Time),
		logger:   l,
	}
}

// LoadCompanyPolicy memaksa reload, dipanggil saat login.
func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(context.Background(), companyID)
}

func (s *service) Invalidate(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loaded, companyID)
}

func (s *service) ensureLoaded(ctx context.Context, companyID string) error {
	if at, ok := s.loaded[companyID]; ok && s.now().Sub(at) < s.ttl {
		return nil
	}
	return s.reload(ctx, companyID)
}

func (s *service) reload(ctx context.Context, companyID string) error {
	employeeRoles, err := s.repo.GetEmployeeRoles(ctx, companyID)
	if err != nil {
		return err
	}
	rolePerms, err := s.repo.GetRolePermissions(ctx, companyID)
	if err != nil {
		return err
	}

	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(2, companyID); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(1, companyID); err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, companyID); err != nil {
			return err
		}
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}
	s.loaded[companyID] = s.now()

	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := []zap.Field{
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
	}

	if err := s.ensureLoaded(context.Background(), req.CompanyID); err != nil {
		s.logger.Error("rbac policy load failed", append(fields, zap.Error(err))...)
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed", append(fields, zap.Error(err))...)
		return false, err
	}

	s.logger.Debug("rbac enforce result", append(fields, zap.Bool("allowed", allowed))...)
	return allowed, nil
}

// Permissions mengembalikan "resource:action" yang dimiliki employee di company,
// terurut dan tanpa duplikat (dua role bisa memberi permission yang sama).
func (s *service) Permissions(ctx context.Context, employeeID, companyID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, companyID); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetImplicitPermissionsForUser(employeeID, companyID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rules))
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 4 {
			continue
		}
		p := rule[2] + ":" + rule[3]
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// PermittedCompanies selalu menyertakan company default dari token di urutan pertama.
func (s *service) PermittedCompanies(ctx context.Context, userID, defaultCompanyID string) ([]string, error) {
	extra, err := s.repo.GetPermittedCompanies(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(extra)+1)
	seen := make(map[string]struct{}, len(extra)+1)
	if defaultCompanyID != "" {
		ids = append(ids, defaultCompanyID)
		seen[defaultCompanyID] = struct{}{}
	}
	for _, id := range extra {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
