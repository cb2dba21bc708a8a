package repository

import (
	"context"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)

	// UpdatePayment persiste Status, PaymentStatus, PaymentReference y UpdatedAt.
	UpdatePayment(ctx context.Context, order *entity.Order) error
}
