// Package testutil provides shared database fixtures for tests. It is
// imported by _test files only.
package testutil

import (
	"testing"

	"surprise-bag-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory database. The connection pool is
// capped at one so concurrent test goroutines serialize at the store,
// matching the row-level guarantees of a production database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
	))
	return db
}

// Password is the plaintext behind every seeded account.
const Password = "secret123"

func SeedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == models.RoleShop {
		location, phone := "somewhere", "555"
		user.Location = &location
		user.Phone = &phone
	}
	if role == models.RoleSuperAdmin {
		user.CanAddAdmin = true
		user.CanDeleteShopProducts = true
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedItem(t *testing.T, db *gorm.DB, owner *models.User, name string, original, discount float64, qty int) *models.FoodItem {
	t.Helper()
	item := &models.FoodItem{
		Name:          name,
		OriginalPrice: original,
		DiscountPrice: discount,
		Quantity:      qty,
	}
	if owner != nil {
		item.ShopID = &owner.ID
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// ItemQuantity reads the live stock counter back from the store.
func ItemQuantity(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()
	var item models.FoodItem
	require.NoError(t, db.First(&item, itemID).Error)
	return item.Quantity
}
