// Package tenant keeps every query inside one restaurant (company).
package tenant

import "gorm.io/gorm"

// Scope filters on company_id. A blank companyID matches nothing rather than
// every tenant.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}
