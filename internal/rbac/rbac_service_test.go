package rbac

import (
	"context"
	"testing"
	"time"

	"saral-hr/internal/domain"
	"saral-hr/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	permitted []string
	loads     map[string]int
	perms     map[string][]RolePermissionRow
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		loads: map[string]int{},
		perms: map[string][]RolePermissionRow{
			"company-1": {
				{RoleID: "role-hr", Resource: "attendance", Action: "create"},
				{RoleID: "role-hr", Resource: "salary", Action: "read"},
				{RoleID: "role-payroll", Resource: "salary", Action: "read"},
			},
			"company-2": {
				{RoleID: "role-hr", Resource: "employee", Action: "read"},
			},
		},
	}
}

func (m *mockRepo) GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error) {
	m.loads[companyID]++
	return []EmployeeRoleRow{
		{EmployeeID: "emp-1", RoleID: "role-hr"},
		{EmployeeID: "emp-1", RoleID: "role-payroll"},
	}, nil
}

func (m *mockRepo) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	return m.perms[companyID], nil
}

func (m *mockRepo) GetPermittedCompanies(ctx context.Context, userID string) ([]string, error) {
	return m.permitted, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcerFromText(infra.ModelText)
	require.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	svc := NewService(newMockRepo(), newTestEnforcer(t))

	allowed, err := svc.Enforce(domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "attendance", Action: "create"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "salary", Action: "delete"})
	assert.NoError(t, err)
	assert.False(t, denied)

	// role yang sama di company lain tidak membawa permission company-1
	other, err := svc.Enforce(domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-2", Resource: "attendance", Action: "create"})
	assert.NoError(t, err)
	assert.False(t, other)
}

func TestRBACService_PolicyCache(t *testing.T) {
	repo := newMockRepo()
	s := NewService(repo, newTestEnforcer(t)).(*service)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	req := domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "salary", Action: "read"}
	for i := 0; i < 3; i++ {
		_, err := s.Enforce(req)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.loads["company-1"])

	now = now.Add(2 * time.Minute)
	_, _ = s.Enforce(req)
	assert.Equal(t, 2, repo.loads["company-1"])

	s.Invalidate("company-1")
	repo.perms["company-1"] = nil
	allowed, err := s.Enforce(req)
	assert.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 3, repo.loads["company-1"])
}

func TestRBACService_Permissions(t *testing.T) {
	svc := NewService(newMockRepo(), newTestEnforcer(t))

	perms, err := svc.Permissions(context.Background(), "emp-1", "company-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"attendance:create", "salary:read"}, perms)
}

func TestRBACService_PermittedCompanies(t *testing.T) {
	repo := newMockRepo()
	repo.permitted = []string{"company-2", "company-1", ""}
	svc := NewService(repo, newTestEnforcer(t))

	ids, err := svc.PermittedCompanies(context.Background(), "user-1", "company-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"company-1", "company-2"}, ids)
}
