package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	return db
}

func TestEnsureStockColumn_LegacyTable(t *testing.T) {
	db := openTestDB(t)

	// Schema as it existed before the stock column was introduced.
	require.NoError(t, db.Exec(
		`CREATE TABLE products (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, price REAL, category_id INTEGER)`,
	).Error)
	require.NoError(t, db.Exec(`INSERT INTO products (name, price) VALUES ('Laptop', 999.99), ('Shirt', 19.99)`).Error)

	require.NoError(t, EnsureStockColumn(db))
	require.True(t, db.Migrator().HasColumn(&models.Product{}, "stock"))

	var total, zeroed int64
	require.NoError(t, db.Table("products").Count(&total).Error)
	require.NoError(t, db.Table("products").Where("stock = 0").Count(&zeroed).Error)
	require.EqualValues(t, 2, total)
	require.Equal(t, total, zeroed)
}

func TestEnsureStockColumn_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec(
		`CREATE TABLE products (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, price REAL, category_id INTEGER)`,
	).Error)
	require.NoError(t, db.Exec(`INSERT INTO products (name, price) VALUES ('Laptop', 999.99)`).Error)

	require.NoError(t, EnsureStockColumn(db))
	require.NoError(t, db.Exec(`UPDATE products SET stock = 50 WHERE id = 1`).Error)

	// Re-running on an already-migrated schema must not error and must
	// not touch existing stock values.
	require.NoError(t, EnsureStockColumn(db))

	var stock int
	require.NoError(t, db.Raw(`SELECT stock FROM products WHERE id = 1`).Scan(&stock).Error)
	require.Equal(t, 50, stock)
}

func TestEnsureStockColumn_NoProductsTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, EnsureStockColumn(db))
}

func TestMigrate_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	for _, model := range []any{&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}} {
		require.True(t, db.Migrator().HasTable(model))
	}

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.EqualValues(t, len(defaultCategories), count)
}

func TestMigrate_SeedsCategoriesOnlyOnce(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.EqualValues(t, len(defaultCategories), count)
}
