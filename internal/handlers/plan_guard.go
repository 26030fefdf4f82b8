package handlers

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domaintenant "github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/models"
)

// withPlanGuard locks the tenant row, runs the plan-limit check against
// the current count and only then runs create. Count and insert share
// the transaction, so two concurrent creates cannot both pass the cap.
func withPlanGuard(
	db *gorm.DB,
	tenantID uint,
	count func(tx *gorm.DB) (int64, error),
	check func(plan domaintenant.Plan, current int64) error,
	create func(tx *gorm.DB) error,
) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, tenantID).Error; err != nil {
			return err
		}

		current, err := count(tx)
		if err != nil {
			return err
		}

		if err := check(domaintenant.Plan(tenant.Plan), current); err != nil {
			return err
		}

		return create(tx)
	})
}
