package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
)

var defaultCategories = []string{"Electronics", "Clothing", "Groceries"}

// Migrate brings the schema up to date. EnsureStockColumn runs first so
// that product tables created before the stock column existed are
// upgraded in place before AutoMigrate touches them.
func Migrate(db *gorm.DB) error {
	if err := EnsureStockColumn(db); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return seedCategories(db)
}

// EnsureStockColumn adds products.stock with a default of 0 and backfills
// NULL values on pre-existing rows. Safe to run repeatedly: when the
// column is already present it does nothing and existing stock values are
// left untouched.
func EnsureStockColumn(db *gorm.DB) error {
	m := db.Migrator()

	if !m.HasTable(&models.Product{}) {
		return nil
	}
	if m.HasColumn(&models.Product{}, "stock") {
		return nil
	}

	if err := db.Exec("ALTER TABLE products ADD COLUMN stock INTEGER NOT NULL DEFAULT 0").Error; err != nil {
		return fmt.Errorf("add stock column: %w", err)
	}
	if err := db.Exec("UPDATE products SET stock = 0 WHERE stock IS NULL").Error; err != nil {
		return fmt.Errorf("backfill stock column: %w", err)
	}
	return nil
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range defaultCategories {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}
