package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
)

// ProductListRow is a product joined with its category name for the
// product list view. CategoryName is NULL for uncategorized products.
type ProductListRow struct {
	ID           uint
	Name         string
	Price        float64
	Stock        int
	CategoryName *string
}

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"price":       product.Price,
			"stock":       product.Stock,
			"category_id": product.CategoryID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetProductListRows(ctx context.Context) ([]ProductListRow, error) {
	var rows []ProductListRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT products.id      AS id,
		       products.name    AS name,
		       products.price   AS price,
		       products.stock   AS stock,
		       categories.name  AS category_name
		FROM products
		LEFT JOIN categories ON products.category_id = categories.id
		ORDER BY products.id ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
