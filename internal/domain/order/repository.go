// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when no order matches the lookup
var ErrOrderNotFound = errors.New("order not found")

// Repository is the persistence contract for orders
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
}

// GormRepository implements Repository on Postgres via gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new gorm-backed order repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts the order and its items in a single transaction
func (r *GormRepository) Create(ctx context.Context, o *Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetByNumber retrieves an order with its items by order number
func (r *GormRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&o)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}
