package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
)

// OrderListRow is an order joined with user and product names for the
// order list view.
type OrderListRow struct {
	ID          uint
	UserName    *string
	ProductName *string
	Quantity    int
}

// UserOrderRow is one row of the orders-by-user join, ordered by user
// then order insertion order.
type UserOrderRow struct {
	UserID       uint
	UserName     string
	ProductName  string
	ProductPrice float64
	Quantity     int
}

// ReportRow carries everything the order report needs for one line.
type ReportRow struct {
	OrderID     uint
	UserName    string
	ProductName string
	UnitPrice   float64
	Quantity    int
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetOrderListRows(ctx context.Context) ([]OrderListRow, error) {
	var rows []OrderListRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT orders.id       AS id,
		       users.name      AS user_name,
		       products.name   AS product_name,
		       orders.quantity AS quantity
		FROM orders
		LEFT JOIN users    ON orders.user_id = users.id
		LEFT JOIN products ON orders.product_id = products.id
		ORDER BY orders.id ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetUserOrderRows(ctx context.Context) ([]UserOrderRow, error) {
	var rows []UserOrderRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT users.id        AS user_id,
		       users.name      AS user_name,
		       products.name   AS product_name,
		       products.price  AS product_price,
		       orders.quantity AS quantity
		FROM orders
		JOIN users    ON orders.user_id = users.id
		JOIN products ON orders.product_id = products.id
		ORDER BY users.id ASC, orders.id ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetReportRows(ctx context.Context) ([]ReportRow, error) {
	var rows []ReportRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT orders.id       AS order_id,
		       users.name      AS user_name,
		       products.name   AS product_name,
		       products.price  AS unit_price,
		       orders.quantity AS quantity
		FROM orders
		JOIN users    ON orders.user_id = users.id
		JOIN products ON orders.product_id = products.id
		ORDER BY orders.id ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
