package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/checkout"
	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// HeaderIdempotentReplay marca respuestas servidas desde el almacén de idempotencia.
const HeaderIdempotentReplay = "Idempotent-Replayed"

// storedResponse respuesta guardada por Idempotency-Key junto al hash de la petición.
type storedResponse struct {
	RequestHash string          `json:"requestHash"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

// requestHash sha256 en hex de la petición ya decodificada: el formato del JSON no cuenta.
func requestHash(in dto.CheckoutRequest) string {
	raw, _ := json.Marshal(in)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// CheckoutHandler compra de licencias.
type CheckoutHandler struct {
	orch *checkout.Orchestrator
	idem ports.IdempotencyStore // nil = sin idempotencia
	log  zerolog.Logger
}

// NewCheckoutHandler construye el handler. idem puede ser nil.
func NewCheckoutHandler(orch *checkout.Orchestrator, idem ports.IdempotencyStore, log zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{orch: orch, idem: idem, log: log}
}

// Checkout godoc
// @Summary      Procesar compra
// @Description  Crea la orden, cobra la tarjeta y emite una clave por puesto. Un pago rechazado
// @Description  devuelve 400 con success=false y el id de la orden. Admite Idempotency-Key.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "clave de idempotencia"
// @Param        body             body      dto.CheckoutRequest  true   "datos de la compra"
// @Success      200              {object}  dto.CheckoutResponse
// @Failure      400              {object}  dto.CheckoutResponse
// @Failure      403              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Failure      422              {object}  dto.ErrorResponse
// @Failure      500              {object}  dto.ErrorResponse
// @Router       /api/orders/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	ctx := c.UserContext()

	key, hash := "", ""
	if h.idem != nil {
		key = strings.TrimSpace(c.Get(ports.IdempotencyHeader))
		hash = requestHash(in)
	}
	if key != "" {
		cached, err := h.idem.Begin(ctx, key)
		switch {
		case errors.Is(err, domain.ErrIdempotencyInFlight):
			return writeError(c, h.log, err, "")
		case err != nil:
			// Sin almacén disponible se procesa como petición normal.
			h.log.Warn().Err(err).Msg("idempotencia no disponible")
			key = ""
		case cached != nil:
			var stored storedResponse
			if err := json.Unmarshal(cached, &stored); err == nil {
				if stored.RequestHash != "" && stored.RequestHash != hash {
					return writeError(c, h.log, domain.ErrIdempotencyMismatch, "")
				}
				c.Set(HeaderIdempotentReplay, "true")
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Status(stored.Status).Send(stored.Body)
			}
			h.log.Warn().Msg("respuesta idempotente ilegible; se procesa de nuevo")
		}
	}

	status, payload := h.process(c, in)
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if key != "" {
		h.remember(c, key, hash, status, body)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}

func (h *CheckoutHandler) process(c *fiber.Ctx, in dto.CheckoutRequest) (int, any) {
	out, err := h.orch.Checkout(c.UserContext(), in)
	if err != nil {
		status, body := mapError(err, "Failed to process order")
		if status == fiber.StatusInternalServerError {
			h.log.Error().Err(err).Msg("checkout")
		}
		return status, body
	}
	if !out.Success {
		return fiber.StatusBadRequest, out
	}
	return fiber.StatusOK, out
}

// remember guarda respuestas definitivas; un 5xx libera la clave para reintentar.
func (h *CheckoutHandler) remember(c *fiber.Ctx, key, hash string, status int, body []byte) {
	ctx := c.UserContext()
	if status >= fiber.StatusInternalServerError {
		if err := h.idem.Release(ctx, key); err != nil {
			h.log.Warn().Err(err).Msg("liberar clave de idempotencia")
		}
		return
	}
	stored, err := json.Marshal(storedResponse{RequestHash: hash, Status: status, Body: body})
	if err == nil {
		err = h.idem.Complete(ctx, key, stored)
	}
	if err != nil {
		h.log.Warn().Err(err).Msg("guardar respuesta idempotente")
	}
}
