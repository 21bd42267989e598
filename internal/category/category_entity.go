package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category adalah master kategori employee (Staff, Worker, Trainee, ...) per company.
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_category_company_name"`
	Name        string         `gorm:"size:150;not null;uniqueIndex:uq_category_company_name"`
	Description string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}
