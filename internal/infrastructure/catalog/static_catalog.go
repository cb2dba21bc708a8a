// Package catalog: catálogo fijo de licencias en memoria (solo lectura).
package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*StaticCatalog)(nil)

// StaticCatalog implementación de ProductRepository sobre una lista fija.
type StaticCatalog struct {
	products []*entity.Product
	byID     map[string]*entity.Product
}

// NewStaticCatalog construye el catálogo con los productos dados (en ese orden).
func NewStaticCatalog(products []*entity.Product) *StaticCatalog {
	c := &StaticCatalog{byID: make(map[string]*entity.Product, len(products))}
	for _, p := range products {
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c
}

// NewDefaultCatalog catálogo de la tienda.
func NewDefaultCatalog() *StaticCatalog {
	return NewStaticCatalog(SeedProducts())
}

// ListActive devuelve copias de los productos activos.
func (c *StaticCatalog) ListActive(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Active {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

// GetByID devuelve nil, nil si el producto no existe.
func (c *StaticCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

func clone(p *entity.Product) *entity.Product {
	cp := *p
	cp.Features = append([]string(nil), p.Features...)
	return &cp
}

// SeedProducts productos publicados por la tienda.
func SeedProducts() []*entity.Product {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*entity.Product{
		{
			ID:          "endpoint-protection",
			Name:        "Symantec Endpoint Protection Enterprise",
			Description: "Comprehensive endpoint security with advanced threat protection for enterprise environments.",
			Price:       decimal.RequireFromString("89.99"),
			Features: []string{
				"Advanced malware protection",
				"Real-time threat detection",
				"Centralized management console",
				"Network and email protection",
				"Device and application control",
			},
			Active:    true,
			CreatedAt: created,
		},
		{
			ID:          "endpoint-complete",
			Name:        "Symantec Endpoint Security Complete",
			Description: "Complete security suite with EDR, threat hunting, and advanced analytics capabilities.",
			Price:       decimal.RequireFromString("149.99"),
			Features: []string{
				"Everything in Enterprise +",
				"Endpoint Detection & Response (EDR)",
				"Advanced threat hunting",
				"Behavioral forensics",
				"AI-driven adaptive protection",
				"Global Intelligence Network",
			},
			Active:    true,
			CreatedAt: created,
		},
	}
}
