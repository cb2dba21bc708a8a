package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes y líneas en memoria.
type OrderRepo struct{ s *Store }

// Create persiste la cabecera.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.orders[order.ID]; exists {
		return domain.ErrDuplicate
	}
	cp := *order
	r.s.orders[cp.ID] = &cp
	return nil
}

// CreateItem persiste una línea; la orden debe existir.
func (r *OrderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[item.OrderID]; !ok {
		return fmt.Errorf("insert order item: orden %s: %w", item.OrderID, domain.ErrNotFound)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cp := *item
	r.s.items[item.OrderID] = append(r.s.items[item.OrderID], &cp)
	return nil
}

// GetByID nil, nil si no existe.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

// ListItems líneas de la orden en orden de inserción.
func (r *OrderRepo) ListItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.items[orderID]
	out := make([]*entity.OrderItem, 0, len(src))
	for _, it := range src {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

// UpdatePayment actualiza estado y datos de pago.
func (r *OrderRepo) UpdatePayment(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = order.Status
	o.PaymentStatus = order.PaymentStatus
	o.PaymentReference = order.PaymentReference
	o.UpdatedAt = order.UpdatedAt
	return nil
}
