package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/catalog"
	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// ProductHandler catálogo público y cotización del carrito.
type ProductHandler struct {
	uc  *catalog.UseCase
	log zerolog.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch products")
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return writeError(c, h.log, err, "Failed to fetch product")
	}
	return c.JSON(p)
}

// Quote godoc
// @Summary      Cotizar carrito
// @Description  Valoriza las líneas con precios del catálogo; los precios del cliente se ignoran.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CartQuoteRequest  true  "items"
// @Success      200   {object}  dto.CartQuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/quote [post]
func (h *ProductHandler) Quote(c *fiber.Ctx) error {
	var in dto.CartQuoteRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Quote(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "Failed to price cart")
	}
	return c.JSON(out)
}
