package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HolidayList struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(150);not null"`
	FromDate  time.Time      `gorm:"type:date;not null"`
	ToDate    time.Time      `gorm:"type:date;not null"`
	Holidays  []Holiday      `gorm:"foreignKey:HolidayListID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (HolidayList) TableName() string {
	return "holiday_lists"
}

type Holiday struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HolidayListID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_holiday_list_date"`
	HolidayDate   time.Time `gorm:"type:date;not null;uniqueIndex:uq_holiday_list_date"`
	Description   string    `gorm:"type:varchar(255)"`
	WeeklyOff     bool      `gorm:"not null;default:false"`
}

func (Holiday) TableName() string {
	return "holidays"
}
