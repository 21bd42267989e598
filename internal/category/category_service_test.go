package category_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"saral-hr/internal/category"
	categoryerrors "saral-hr/internal/category/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepository struct {
	createFn  func(ctx context.Context, cat *category.Category) error
	findAllFn func(ctx context.Context, companyID string) ([]category.Category, error)
	findByID  func(ctx context.Context, companyID, id string) (*category.Category, error)
	updateFn  func(ctx context.Context, cat *category.Category) error
	deleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeCategoryRepository) WithTx(tx *sql.Tx) category.Repository { return f }

func (f *fakeCategoryRepository) Create(ctx context.Context, cat *category.Category) error {
	if f.createFn != nil {
		return f.createFn(ctx, cat)
	}
	return nil
}

func (f *fakeCategoryRepository) FindAllByCompany(ctx context.Context, companyID string) ([]category.Category, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeCategoryRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*category.Category, error) {
	if f.findByID != nil {
		return f.findByID(ctx, companyID, id)
	}
	return &category.Category{}, nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, cat *category.Category) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, cat)
	}
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   category.Service
	repo      *fakeCategoryRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeCategoryRepository{}
	return &serviceDeps{
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   category.NewService(db, repo, rdb),
		repo:      repo,
	}
}

func TestCategoryService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	key := category.CacheKey(companyID)

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]category.CategoryResponse{{ID: "cat-1", Name: "Staff"}})
		deps.redisMock.ExpectGet(key).SetVal(string(cached))
		deps.repo.findAllFn = func(ctx context.Context, companyID string) ([]category.Category, error) {
			t.Fatal("repository must not be called on cache hit")
			return nil, nil
		}

		resp, err := deps.service.GetAll(ctx, companyID)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Staff", resp[0].Name)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		cats := []category.Category{{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), Name: "Worker"}}
		deps.repo.findAllFn = func(ctx context.Context, companyID string) ([]category.Category, error) {
			return cats, nil
		}
		deps.redisMock.ExpectGet(key).RedisNil()

		resp, err := deps.service.GetAll(ctx, companyID)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Worker", resp[0].Name)
	})
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("commits and invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(category.CacheKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, category.CreateCategoryRequest{Name: " Staff "})
		assert.NoError(t, err)
		assert.Equal(t, "Staff", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate name rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.createFn = func(ctx context.Context, cat *category.Category) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_category_company_name"}
		}

		_, err := deps.service.Create(ctx, companyID, category.CreateCategoryRequest{Name: "Staff"})
		assert.ErrorIs(t, err, categoryerrors.ErrCategoryAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid company", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, "nope", category.CreateCategoryRequest{Name: "Staff"})
		assert.ErrorIs(t, err, categoryerrors.ErrInvalidCompanyID)
	})
}
