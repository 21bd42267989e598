package companylink_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"saral-hr/internal/companylink"
	companylinkerrors "saral-hr/internal/companylink/errors"
	"saral-hr/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLinkRepository struct {
	links     map[uuid.UUID]*companylink.CompanyLink
	employee  *companylink.EmployeeRef
	options   map[string][]companylink.OptionRow
	search    []companylink.OptionRow
	timeline  []companylink.TimelineRow
	created   []companylink.CompanyLink
	updated   []companylink.CompanyLink
	renamedTo string
}

func newFakeLinkRepository(emp *companylink.EmployeeRef) *fakeLinkRepository {
	return &fakeLinkRepository{
		links:    map[uuid.UUID]*companylink.CompanyLink{},
		employee: emp,
		options:  map[string][]companylink.OptionRow{},
	}
}

func (f *fakeLinkRepository) WithTx(tx *sql.Tx) companylink.Repository { return f }

func (f *fakeLinkRepository) Create(ctx context.Context, link *companylink.CompanyLink) error {
	f.created = append(f.created, *link)
	cp := *link
	f.links[link.ID] = &cp
	return nil
}

func (f *fakeLinkRepository) Update(ctx context.Context, link *companylink.CompanyLink) error {
	f.updated = append(f.updated, *link)
	cp := *link
	f.links[link.ID] = &cp
	return nil
}

func (f *fakeLinkRepository) FindByID(ctx context.Context, companyIDs []string, id string) (*companylink.CompanyLink, error) {
	l, ok := f.links[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLinkRepository) FindAll(ctx context.Context, companyIDs []string, filter companylink.LinkFilter) ([]companylink.CompanyLink, error) {
	out := make([]companylink.CompanyLink, 0, len(f.links))
	for _, l := range f.links {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLinkRepository) FindActiveByEmployee(ctx context.Context, employeeID string) (*companylink.CompanyLink, error) {
	for _, l := range f.links {
		if l.EmployeeID.String() == employeeID && l.IsActive {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLinkRepository) FindByName(ctx context.Context, name string) (*companylink.CompanyLink, error) {
	for _, l := range f.links {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLinkRepository) FindByEmployee(ctx context.Context, employeeID string) ([]companylink.CompanyLink, error) {
	var out []companylink.CompanyLink
	for _, l := range f.links {
		if l.EmployeeID.String() == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLinkRepository) FindEmployee(ctx context.Context, employeeID string) (*companylink.EmployeeRef, error) {
	if f.employee == nil || f.employee.ID.String() != employeeID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.employee
	return &cp, nil
}

func (f *fakeLinkRepository) Timeline(ctx context.Context, employeeID string) ([]companylink.TimelineRow, error) {
	return f.timeline, nil
}

func (f *fakeLinkRepository) ActiveOptions(ctx context.Context, companyID string) ([]companylink.OptionRow, error) {
	return f.options[companyID], nil
}

func (f *fakeLinkRepository) Search(ctx context.Context, companyIDs []string, term string, limit int) ([]companylink.OptionRow, error) {
	return f.search, nil
}

func (f *fakeLinkRepository) UpdateFullName(ctx context.Context, employeeID, fullName string) error {
	f.renamedTo = fullName
	return nil
}

type fakeCounter struct {
	next  int64
	scope string
	kind  string
}

func (f *fakeCounter) WithTx(tx *sql.Tx) counter.Repository { return f }

func (f *fakeCounter) GetNextValue(ctx context.Context, scope, counterType string) (int64, error) {
	f.scope = scope
	f.kind = counterType
	return f.next, nil
}

func (f *fakeCounter) NextSeries(ctx context.Context, scope, counterType, prefix string) (string, error) {
	return "", nil
}

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	counter   *fakeCounter
	service   companylink.Service
}

func setupServiceTest(t *testing.T, repo *fakeLinkRepository) *serviceDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	ctr := &fakeCounter{next: 1}
	return &serviceDeps{
		sqlMock:   sqlMock,
		redisMock: redisMock,
		counter:   ctr,
		service:   companylink.NewService(db, repo, ctr, rdb),
	}
}

func testEmployee() *companylink.EmployeeRef {
	aadhaar := "123412341234"
	return &companylink.EmployeeRef{
		ID:            uuid.New(),
		EmployeeCode:  "HR-EMP-000007",
		FullName:      "Ravi Kumar",
		AadhaarNumber: &aadhaar,
	}
}

func date(v string) *time.Time {
	d, _ := time.Parse(time.DateOnly, v)
	return &d
}

func TestCompanyLinkService_Create(t *testing.T) {
	ctx := context.Background()
	companyA := uuid.NewString()

	t.Run("forbidden company", func(t *testing.T) {
		deps := setupServiceTest(t, newFakeLinkRepository(testEmployee()))
		_, err := deps.service.Create(ctx, []string{uuid.NewString()}, companylink.CreateLinkRequest{
			EmployeeID: uuid.NewString(),
			CompanyID:  companyA,
		})
		assert.ErrorIs(t, err, companylinkerrors.ErrCompanyForbidden)
	})

	t.Run("active link named after employee code", func(t *testing.T) {
		emp := testEmployee()
		repo := newFakeLinkRepository(emp)
		deps := setupServiceTest(t, repo)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(companylink.OptionsKey(companyA)).SetVal(1)

		resp, err := deps.service.Create(ctx, []string{companyA}, companylink.CreateLinkRequest{
			EmployeeID:    emp.ID.String(),
			CompanyID:     companyA,
			WeeklyOff:     "saturday, Sunday",
			DateOfJoining: "2024-04-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "HR-EMP-000007", resp.Name)
		assert.Equal(t, "Ravi Kumar", resp.FullName)
		assert.Equal(t, "Sunday,Saturday", resp.WeeklyOff)
		assert.True(t, resp.IsActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("second active link rejected", func(t *testing.T) {
		emp := testEmployee()
		repo := newFakeLinkRepository(emp)
		existing := &companylink.CompanyLink{
			ID:         uuid.New(),
			Name:       emp.EmployeeCode,
			EmployeeID: emp.ID,
			CompanyID:  uuid.MustParse(companyA),
			IsActive:   true,
		}
		repo.links[existing.ID] = existing

		companyB := uuid.NewString()
		deps := setupServiceTest(t, repo)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, []string{companyA, companyB}, companylink.CreateLinkRequest{
			EmployeeID: emp.ID.String(),
			CompanyID:  companyB,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, companylinkerrors.ErrEmployeeAlreadyActive)
		assert.Contains(t, err.Error(), "HR-EMP-000007")
		assert.Contains(t, err.Error(), companyA)
		assert.Empty(t, repo.created)
	})

	t.Run("invalid weekly off", func(t *testing.T) {
		deps := setupServiceTest(t, newFakeLinkRepository(testEmployee()))
		_, err := deps.service.Create(ctx, []string{companyA}, companylink.CreateLinkRequest{
			EmployeeID: uuid.NewString(),
			CompanyID:  companyA,
			WeeklyOff:  "Funday",
		})
		assert.ErrorIs(t, err, companylinkerrors.ErrInvalidWeeklyOff)
	})

	t.Run("left before joining", func(t *testing.T) {
		deps := setupServiceTest(t, newFakeLinkRepository(testEmployee()))
		_, err := deps.service.Create(ctx, []string{companyA}, companylink.CreateLinkRequest{
			EmployeeID:    uuid.NewString(),
			CompanyID:     companyA,
			DateOfJoining: "2024-04-01",
			LeftDate:      "2024-03-01",
		})
		assert.ErrorIs(t, err, companylinkerrors.ErrLeftBeforeJoining)
	})
}

func TestCompanyLinkService_SwitchCompany(t *testing.T) {
	ctx := context.Background()
	companyA := uuid.New()
	companyB := uuid.New()

	setup := func(t *testing.T) (*serviceDeps, *fakeLinkRepository, *companylink.EmployeeRef, *companylink.CompanyLink) {
		emp := testEmployee()
		repo := newFakeLinkRepository(emp)
		current := &companylink.CompanyLink{
			ID:            uuid.New(),
			Name:          emp.EmployeeCode,
			EmployeeID:    emp.ID,
			CompanyID:     companyA,
			FullName:      emp.FullName,
			WeeklyOff:     "Sunday",
			DateOfJoining: date("2023-01-10"),
			IsActive:      true,
		}
		repo.links[current.ID] = current
		return setupServiceTest(t, repo), repo, emp, current
	}

	t.Run("archives current link and activates new one", func(t *testing.T) {
		deps, repo, emp, current := setup(t)
		deps.counter.next = 3
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(companylink.OptionsKey(companyA.String()), companylink.OptionsKey(companyB.String())).SetVal(2)

		resp, err := deps.service.SwitchCompany(ctx, []string{companyA.String(), companyB.String()}, emp.ID.String(),
			companylink.SwitchCompanyRequest{
				CompanyID:     companyB.String(),
				DateOfJoining: "2025-07-01",
			})
		require.NoError(t, err)

		assert.Equal(t, emp.EmployeeCode, resp.Name)
		assert.Equal(t, companyB.String(), resp.CompanyID)
		assert.True(t, resp.IsActive)
		assert.Equal(t, "Sunday", resp.WeeklyOff)

		closed := repo.links[current.ID]
		assert.Equal(t, "HR-EMP-000007-3", closed.Name)
		assert.False(t, closed.IsActive)
		require.NotNil(t, closed.LeftDate)
		assert.Equal(t, "2025-06-30", closed.LeftDate.Format(time.DateOnly))
		assert.Equal(t, emp.ID.String(), deps.counter.scope)
		assert.Equal(t, counter.TypeLinkArchive, deps.counter.kind)

		active := 0
		for _, l := range repo.links {
			if l.IsActive {
				active++
			}
		}
		assert.Equal(t, 1, active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("same company rejected", func(t *testing.T) {
		deps, _, emp, _ := setup(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.SwitchCompany(ctx, []string{companyA.String()}, emp.ID.String(),
			companylink.SwitchCompanyRequest{CompanyID: companyA.String(), DateOfJoining: "2025-07-01"})
		assert.ErrorIs(t, err, companylinkerrors.ErrSameCompany)
	})

	t.Run("left date before current joining", func(t *testing.T) {
		deps, _, emp, _ := setup(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.SwitchCompany(ctx, []string{companyB.String()}, emp.ID.String(),
			companylink.SwitchCompanyRequest{CompanyID: companyB.String(), DateOfJoining: "2025-07-01", LeftDate: "2022-12-31"})
		assert.ErrorIs(t, err, companylinkerrors.ErrLeftBeforeJoining)
	})

	t.Run("no active link", func(t *testing.T) {
		emp := testEmployee()
		deps := setupServiceTest(t, newFakeLinkRepository(emp))
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.SwitchCompany(ctx, []string{companyB.String()}, emp.ID.String(),
			companylink.SwitchCompanyRequest{CompanyID: companyB.String(), DateOfJoining: "2025-07-01"})
		assert.ErrorIs(t, err, companylinkerrors.ErrNoActiveLink)
	})
}

func TestCompanyLinkService_Update_Deactivate(t *testing.T) {
	ctx := context.Background()
	emp := testEmployee()
	repo := newFakeLinkRepository(emp)
	link := &companylink.CompanyLink{
		ID:         uuid.New(),
		Name:       emp.EmployeeCode,
		EmployeeID: emp.ID,
		CompanyID:  uuid.New(),
		IsActive:   true,
	}
	repo.links[link.ID] = link

	deps := setupServiceTest(t, repo)
	deps.counter.next = 1
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.redisMock.ExpectDel(companylink.OptionsKey(link.CompanyID.String())).SetVal(1)

	inactive := false
	resp, err := deps.service.Update(ctx, []string{link.CompanyID.String()}, link.ID.String(),
		companylink.UpdateLinkRequest{IsActive: &inactive, LeftDate: "2025-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "HR-EMP-000007-1", resp.Name)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "2025-03-31", resp.LeftDate)
}

func TestCompanyLinkService_Timeline(t *testing.T) {
	emp := testEmployee()
	repo := newFakeLinkRepository(emp)
	companyID := uuid.New()
	repo.timeline = []companylink.TimelineRow{
		{Name: "HR-EMP-000007", CompanyID: companyID, CompanyName: "Acme", DateOfJoining: date("2025-07-01"), IsActive: true},
		{Name: "HR-EMP-000007-1", CompanyID: companyID, CompanyName: "Old Co", DateOfJoining: date("2023-01-10"), LeftDate: date("2025-06-30")},
		{Name: "HR-EMP-000007-2", CompanyID: companyID, CompanyName: "Older Co"},
	}
	deps := setupServiceTest(t, repo)

	got, err := deps.service.Timeline(context.Background(), emp.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Active", got[0].Status)
	assert.Equal(t, "01-07-2025", got[0].StartDate)
	assert.Equal(t, "-", got[0].EndDate)
	assert.Equal(t, "Inactive", got[1].Status)
	assert.Equal(t, "30-06-2025", got[1].EndDate)
	assert.Equal(t, "-", got[2].StartDate)
}

func TestCompanyLinkService_ActiveEmployees(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	aadhaar := "999988887777"
	rows := []companylink.OptionRow{
		{LinkID: uuid.New(), EmployeeCode: "HR-EMP-000001", FullName: "Asha Rao", CompanyID: companyID, AadhaarNumber: &aadhaar, WeeklyOff: "Sunday"},
		{LinkID: uuid.New(), EmployeeCode: "HR-EMP-000002", FullName: "Vikram Singh", CompanyID: companyID},
	}

	t.Run("cache miss loads and stores", func(t *testing.T) {
		repo := newFakeLinkRepository(nil)
		repo.options[companyID.String()] = rows
		deps := setupServiceTest(t, repo)

		want := []companylink.EmployeeOption{
			{Employee: "HR-EMP-000001", Name: rows[0].LinkID.String(), FullName: "Asha Rao", Label: "Asha Rao (999988887777)",
				Company: companyID.String(), AadhaarNumber: aadhaar, WeeklyOff: "Sunday"},
			{Employee: "HR-EMP-000002", Name: rows[1].LinkID.String(), FullName: "Vikram Singh", Label: "Vikram Singh",
				Company: companyID.String()},
		}
		raw, _ := json.Marshal(want)
		key := companylink.OptionsKey(companyID.String())
		deps.redisMock.ExpectGet(key).RedisNil()
		deps.redisMock.ExpectSet(key, raw, time.Hour).SetVal("OK")

		got, err := deps.service.ActiveEmployees(ctx, []string{companyID.String()}, companyID.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t, newFakeLinkRepository(nil))
		cached := []companylink.EmployeeOption{{Employee: "HR-EMP-000009", Name: uuid.NewString(), FullName: "Cached"}}
		raw, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(companylink.OptionsKey(companyID.String())).SetVal(string(raw))

		got, err := deps.service.ActiveEmployees(ctx, []string{companyID.String()}, "")
		require.NoError(t, err)
		assert.Equal(t, cached, got)
	})

	t.Run("company outside permission", func(t *testing.T) {
		deps := setupServiceTest(t, newFakeLinkRepository(nil))
		_, err := deps.service.ActiveEmployees(ctx, []string{uuid.NewString()}, companyID.String())
		assert.ErrorIs(t, err, companylinkerrors.ErrCompanyForbidden)
	})
}

func TestCompanyLinkService_Search(t *testing.T) {
	companyID := uuid.New()
	repo := newFakeLinkRepository(nil)
	repo.search = []companylink.OptionRow{
		{LinkID: uuid.New(), EmployeeCode: "HR-EMP-000001", FullName: "Aravind Kumar", CompanyID: companyID},
		{LinkID: uuid.New(), EmployeeCode: "HR-EMP-000002", FullName: "Sita Devi", CompanyID: companyID},
		{LinkID: uuid.New(), EmployeeCode: "HR-EMP-000003", FullName: "Ravi Shankar", CompanyID: companyID},
	}
	deps := setupServiceTest(t, repo)

	got, err := deps.service.Search(context.Background(), []string{companyID.String()}, "ravi")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Ravi Shankar", got[0].FullName)
	assert.Equal(t, "Aravind Kumar", got[1].FullName)
	assert.Equal(t, "Sita Devi", got[2].FullName)

	empty, err := deps.service.Search(context.Background(), []string{companyID.String()}, "  ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCompanyLinkService_EmployeeChanged(t *testing.T) {
	emp := testEmployee()
	emp.FullName = "Ravi K. Sharma"
	repo := newFakeLinkRepository(emp)
	companyID := uuid.New()
	link := &companylink.CompanyLink{ID: uuid.New(), EmployeeID: emp.ID, CompanyID: companyID, IsActive: true}
	repo.links[link.ID] = link

	deps := setupServiceTest(t, repo)
	deps.redisMock.ExpectDel(companylink.OptionsKey(companyID.String())).SetVal(1)

	require.NoError(t, deps.service.EmployeeChanged(context.Background(), emp.ID.String()))
	assert.Equal(t, "Ravi K. Sharma", repo.renamedTo)
	assert.NoError(t, deps.redisMock.ExpectationsWereMet())
}
