package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/admin"
	"github.com/jhoicas/licenseshop-api/internal/application/auth"
	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// AdminHandler login de operador y devoluciones.
type AdminHandler struct {
	auth   *auth.AuthUseCase
	refund *admin.RefundUseCase
	log    zerolog.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(authUC *auth.AuthUseCase, refund *admin.RefundUseCase, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{auth: authUC, refund: refund, log: log}
}

// Login godoc
// @Summary      Login de operador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdminLoginRequest  true  "password"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.log.Warn().Str("ip", c.IP()).Msg("login de operador rechazado")
		}
		return writeError(c, h.log, err, "Failed to log in")
	}
	return c.JSON(out)
}

// Refund godoc
// @Summary      Devolver el pago de una orden
// @Description  Solo órdenes completadas. Sin amount se devuelve el total. Las claves no se modifican.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true   "ID de la orden"
// @Param        body  body      dto.RefundRequest  false  "amount, reason"
// @Success      200   {object}  dto.RefundResponse
// @Failure      400   {object}  dto.RefundResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/refund [post]
func (h *AdminHandler) Refund(c *fiber.Ctx) error {
	var in dto.RefundRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	out, err := h.refund.Refund(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Order not found")
		}
		return writeError(c, h.log, err, "Failed to process refund")
	}
	h.log.Info().Str("admin", GetSubject(c)).Str("order_id", out.OrderID).Bool("success", out.Success).Msg("devolución solicitada")
	if !out.Success {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	return c.JSON(out)
}
