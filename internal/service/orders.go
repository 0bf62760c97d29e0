package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sarmatov/shopadmin/internal/models"
	"github.com/sarmatov/shopadmin/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// Place runs the order placement workflow: validate the referenced user
// and product, check stock, decrement it and insert the order row. The
// decrement and the insert execute in one transaction so that either
// both persist or neither does.
func (s *OrderService) Place(ctx context.Context, userID, productID uint, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	order := &models.Order{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	txErr := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, userID)
			}
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}

		if quantity > product.Stock {
			return fmt.Errorf("%w: insufficient stock, only %d available", ErrValidation, product.Stock)
		}

		// Guarded decrement: the WHERE clause keeps stock from ever
		// going negative even if it changed since the read above.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: insufficient stock, only %d available", ErrValidation, product.Stock)
		}

		return tx.Create(order).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return order, nil
}

// Delete removes an order row. Stock is deliberately not restored:
// orders are history, not reservations.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
