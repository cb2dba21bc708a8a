package repository

import (
	"context"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// LicenseKeyRepository define el puerto de persistencia para claves de licencia.
type LicenseKeyRepository interface {
	// Create devuelve domain.ErrDuplicate si la clave ya existe.
	Create(ctx context.Context, key *entity.LicenseKey) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.LicenseKey, error)
	GetByKey(ctx context.Context, key string) (*entity.LicenseKey, error)
	UpdateStatus(ctx context.Context, key, status string) error
}
