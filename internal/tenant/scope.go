package tenant

import "gorm.io/gorm"

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ScopeCompanies membatasi query ke company yang diizinkan untuk user.
// Daftar kosong berarti user tidak punya akses ke company manapun.
func ScopeCompanies(column string, companyIDs []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(companyIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(column+" IN ?", companyIDs)
	}
}

// Allows reports whether companyID is part of the permitted set.
func Allows(companyIDs []string, companyID string) bool {
	for _, id := range companyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}
