package repository

import (
	"context"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo.
type ProductRepository interface {
	// ListActive devuelve los productos activos en el orden del catálogo.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
