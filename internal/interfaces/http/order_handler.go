package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/orders"
)

// OrderHandler consulta de órdenes y facturas.
type OrderHandler struct {
	svc *orders.Service
	log zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *orders.Service, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// orderError 404 específicos de orden y cliente; el resto como writeError.
func (h *OrderHandler) orderError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return notFound(c, "Order not found")
	case errors.Is(err, orders.ErrCustomerNotFound):
		return notFound(c, "Customer not found")
	}
	return writeError(c, h.log, err, fallback)
}

// GetByID godoc
// @Summary      Detalle de la orden
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetDetails(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.orderError(c, err, "Failed to fetch order")
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Descargar factura PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	file, err := h.svc.Invoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.orderError(c, err, "Failed to generate invoice")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.PDF)
}

// EmailInvoice godoc
// @Summary      Enviar factura por correo
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/email-invoice [post]
func (h *OrderHandler) EmailInvoice(c *fiber.Ctx) error {
	out, err := h.svc.EmailInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.orderError(c, err, "Failed to send invoice")
	}
	return c.JSON(out)
}
