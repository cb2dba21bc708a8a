package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/licensing"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// LicenseHandler consulta y revocación de claves.
type LicenseHandler struct {
	svc *licensing.Service
	log zerolog.Logger
}

// NewLicenseHandler construye el handler.
func NewLicenseHandler(svc *licensing.Service, log zerolog.Logger) *LicenseHandler {
	return &LicenseHandler{svc: svc, log: log}
}

// Lookup godoc
// @Summary      Consultar clave de licencia
// @Description  Valida el formato, deduce el producto por prefijo y, si la clave fue emitida, devuelve su estado.
// @Tags         licenses
// @Produce      json
// @Param        key  path      string  true  "clave de licencia"
// @Success      200  {object}  dto.LicenseStatusResponse
// @Router       /api/licenses/{key} [get]
func (h *LicenseHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.svc.Lookup(c.UserContext(), c.Params("key"))
	if err != nil {
		return writeError(c, h.log, err, "Failed to look up license key")
	}
	return c.JSON(out)
}

// Revoke godoc
// @Summary      Revocar clave de licencia
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        key  path      string  true  "clave de licencia"
// @Success      200  {object}  dto.LicenseStatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/licenses/{key}/revoke [post]
func (h *LicenseHandler) Revoke(c *fiber.Ctx) error {
	out, err := h.svc.Revoke(c.UserContext(), c.Params("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "License key not found")
		}
		return writeError(c, h.log, err, "Failed to revoke license key")
	}
	h.log.Info().Str("admin", GetSubject(c)).Str("order_id", out.OrderID).Msg("revocación solicitada")
	return c.JSON(out)
}
