package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/cart"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

// UseCase lectura del catálogo y cotización de carritos.
type UseCase struct {
	repo     repository.ProductRepository
	currency string
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository, currency string) *UseCase {
	return &UseCase{repo: repo, currency: currency}
}

// List productos activos.
func (uc *UseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.NewProductResponse(p))
	}
	return out, nil
}

// Get producto por id; domain.ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// Quote valoriza las líneas con precios del catálogo.
func (uc *UseCase) Quote(ctx context.Context, in dto.CartQuoteRequest) (*dto.CartQuoteResponse, error) {
	c, err := PriceItems(ctx, uc.repo, in.Items)
	if err != nil {
		return nil, err
	}
	items := c.Items()
	lines := make([]dto.CartLineResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.CartLineResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     dto.NewMoney(it.Price),
			Quantity:  it.Quantity,
			Total:     dto.NewMoney(it.LineTotal()),
		})
	}
	return &dto.CartQuoteResponse{
		Items:      lines,
		TotalItems: c.TotalItems(),
		Subtotal:   dto.NewMoney(c.Subtotal()),
		GST:        dto.NewMoney(c.Tax()),
		Total:      dto.NewMoney(c.Total()),
		Currency:   uc.currency,
	}, nil
}

// PriceItems arma un carrito con precios del catálogo. Un producto inexistente
// o inactivo devuelve *domain.UnknownProductError; cantidades < 1 ErrInvalidInput.
func PriceItems(ctx context.Context, repo repository.ProductRepository, items []dto.CartItemRequest) (*cart.Cart, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("al menos un producto: %w", domain.ErrInvalidInput)
	}
	c := cart.New()
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("cantidad inválida para %s: %w", it.ProductID, domain.ErrInvalidInput)
		}
		p, err := repo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", it.ProductID, err)
		}
		if p == nil || !p.Active {
			return nil, &domain.UnknownProductError{ProductID: it.ProductID}
		}
		c.Add(p, it.Quantity)
	}
	return c, nil
}
