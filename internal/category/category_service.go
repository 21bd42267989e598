package category

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	categoryerrors "saral-hr/internal/category/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const categoriesCacheTTL = 30 * time.Minute

func CacheKey(companyID string) string {
	return "categories:all:" + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateCategoryRequest) (CategoryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]CategoryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (CategoryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateCategoryRequest) (CategoryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
	rdb  *redis.Client
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{db: db, repo: repo, rdb: rdb}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateCategoryRequest) (CategoryResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CategoryResponse{}, categoryerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CategoryResponse{}, err
	}
	defer tx.Rollback()

	cat := &Category{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := s.repo.WithTx(tx).Create(ctx, cat); err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return CategoryResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*cat), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]CategoryResponse, error) {
	key := CacheKey(companyID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []CategoryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	cats, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := mapToListResponse(cats)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, key, raw, categoriesCacheTTL)
		}
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (CategoryResponse, error) {
	cat, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*cat), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateCategoryRequest) (CategoryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CategoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	cat, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}

	cat.Name = strings.TrimSpace(req.Name)
	cat.Description = req.Description
	if err := qtx.Update(ctx, cat); err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return CategoryResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*cat), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate(ctx, companyID)
	return nil
}

func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, CacheKey(companyID))
	}
}

func mapToResponse(c Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		CompanyID:   c.CompanyID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(cats []Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		res[i] = mapToResponse(c)
	}
	return res
}
