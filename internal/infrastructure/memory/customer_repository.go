package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

// Create persiste un cliente; email duplicado -> domain.ErrDuplicate.
func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.Email == customer.Email {
			return domain.ErrDuplicate
		}
	}
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	cp := *customer
	r.s.customers[cp.ID] = &cp
	return nil
}

// GetByID nil, nil si no existe.
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetByEmail nil, nil si no existe.
func (r *CustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
