package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.LicenseKeyRepository = (*LicenseKeyRepo)(nil)

// LicenseKeyRepo claves en memoria, únicas por valor.
type LicenseKeyRepo struct{ s *Store }

// Create persiste la clave; clave repetida -> domain.ErrDuplicate.
func (r *LicenseKeyRepo) Create(_ context.Context, key *entity.LicenseKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.licenseKeys[key.Key]; exists {
		return domain.ErrDuplicate
	}
	if key.ID == "" {
		key.ID = uuid.New().String()
	}
	cp := *key
	r.s.licenseKeys[cp.Key] = &cp
	r.s.keyOrder = append(r.s.keyOrder, cp.Key)
	return nil
}

// ListByOrder claves de la orden en orden de emisión.
func (r *LicenseKeyRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.LicenseKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.LicenseKey
	for _, k := range r.s.keyOrder {
		lk := r.s.licenseKeys[k]
		if lk.OrderID == orderID {
			cp := *lk
			out = append(out, &cp)
		}
	}
	return out, nil
}

// GetByKey nil, nil si no existe.
func (r *LicenseKeyRepo) GetByKey(_ context.Context, key string) (*entity.LicenseKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lk, ok := r.s.licenseKeys[key]
	if !ok {
		return nil, nil
	}
	cp := *lk
	return &cp, nil
}

// UpdateStatus cambia el estado de la clave.
func (r *LicenseKeyRepo) UpdateStatus(_ context.Context, key, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lk, ok := r.s.licenseKeys[key]
	if !ok {
		return domain.ErrNotFound
	}
	lk.Status = status
	return nil
}
