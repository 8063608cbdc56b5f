package di

import (
	"fmt"

	"gorm.io/gorm"

	address "storefront/internal/feature/address/domain/entity"
	user "storefront/internal/feature/auth/domain/entity"
	catalogadapters "storefront/internal/feature/catalog/adapters"
	favourite "storefront/internal/feature/favourite/domain/entity"
	order "storefront/internal/feature/order/domain/entity"
)

// IdentityModels are the tables of the identity database.
func IdentityModels() []any {
	return []any{&user.User{}, &address.Address{}, &favourite.Favourite{}, &order.Order{}, &order.CartItem{}}
}

// Migrate creates or updates the schema of both databases. The two handles
// may point at the same database.
func Migrate(identity, catalog *gorm.DB) error {
	if err := identity.AutoMigrate(IdentityModels()...); err != nil {
		return fmt.Errorf("migrate identity db: %w", err)
	}
	if err := catalog.AutoMigrate(catalogadapters.Models()...); err != nil {
		return fmt.Errorf("migrate catalog db: %w", err)
	}
	return nil
}
