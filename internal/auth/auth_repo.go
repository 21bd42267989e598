package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.find(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.find(ctx, "id = ?", id)
}

func (r *repository) find(ctx context.Context, cond string, arg any) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		return nil, err
	}

	var roles []string
	if user.EmployeeID != nil && *user.EmployeeID != uuid.Nil {
		err := r.db.WithContext(ctx).
			Table("employee_roles er").
			Joins("JOIN roles ON roles.id = er.role_id").
			Where("er.employee_id = ? AND roles.company_id = ?", *user.EmployeeID, user.CompanyID).
			Pluck("roles.name", &roles).Error
		if err != nil {
			return nil, err
		}
	}
	user.Role = EffectiveRole(user.Role, roles)
	return &user, nil
}

func (r *repository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}
