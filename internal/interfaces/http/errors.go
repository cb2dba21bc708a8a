package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// writeError traduce errores de dominio a HTTP. Los no previstos se registran
// completos y el cliente recibe fallback.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error, fallback string) error {
	status, body := mapError(err, fallback)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error, fallback string) (int, dto.ErrorResponse) {
	var unknown *domain.UnknownProductError
	switch {
	case errors.As(err, &unknown):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "UNKNOWN_PRODUCT", Message: unknown.Error()}
	case errors.Is(err, domain.ErrInvalidOrExpiredCode):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_CODE", Message: "Invalid or expired verification code"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "Invalid request"}
	case errors.Is(err, domain.ErrEmailNotVerified):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "EMAIL_NOT_VERIFIED", Message: "Email address has not been verified"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrIdempotencyInFlight):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "IN_PROGRESS", Message: "A request with this Idempotency-Key is already in progress"}
	case errors.Is(err, domain.ErrIdempotencyMismatch):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "IDEMPOTENCY_MISMATCH", Message: "Idempotency-Key was already used with a different request"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: "Operation not allowed in the current state"}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: fallback}
}

// notFound respuesta 404 con el mensaje indicado.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
}
