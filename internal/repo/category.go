package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
)

// CategoryProductRow is one row of the categories-to-products left join.
// Product columns are NULL for categories without products.
type CategoryProductRow struct {
	CategoryID   uint
	CategoryName string
	ProductID    *uint
	ProductName  *string
}

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category := models.Category{}
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *GormRepo) UpdateCategory(ctx context.Context, category *models.Category) error {
	res := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", category.ID).
		Update("name", category.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetCategoryProductRows returns the flat left-join rows the category
// view is folded from, ordered by category then product insertion order.
func (r *GormRepo) GetCategoryProductRows(ctx context.Context) ([]CategoryProductRow, error) {
	var rows []CategoryProductRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT categories.id   AS category_id,
		       categories.name AS category_name,
		       products.id     AS product_id,
		       products.name   AS product_name
		FROM categories
		LEFT JOIN products ON categories.id = products.category_id
		ORDER BY categories.id ASC, products.id ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
