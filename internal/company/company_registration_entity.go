package company

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationType adalah nomor registrasi statutory yang dicetak di header register.
type RegistrationType string

const (
	RegistrationTypePF   RegistrationType = "PF"
	RegistrationTypeESIC RegistrationType = "ESIC"
	RegistrationTypePT   RegistrationType = "PT"
	RegistrationTypeLWF  RegistrationType = "LWF"
	RegistrationTypePAN  RegistrationType = "PAN"
	RegistrationTypeTAN  RegistrationType = "TAN"
)

func (t RegistrationType) Valid() bool {
	switch t {
	case RegistrationTypePF, RegistrationTypeESIC, RegistrationTypePT,
		RegistrationTypeLWF, RegistrationTypePAN, RegistrationTypeTAN:
		return true
	}
	return false
}

type CompanyRegistration struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_company_registration_type"`
	Type      RegistrationType `gorm:"type:varchar(20);not null;uniqueIndex:uq_company_registration_type"`
	Number    string           `gorm:"type:varchar(100);not null"`
	IssuedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyRegistration) TableName() string {
	return "company_registrations"
}
