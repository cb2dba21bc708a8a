package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/application/verification"
)

// AuthHandler verificación de email por OTP.
type AuthHandler struct {
	uc  *verification.UseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *verification.UseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// SendOTP godoc
// @Summary      Enviar código de verificación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SendOTPRequest  true  "email"
// @Success      200   {object}  dto.SendOTPResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var in dto.SendOTPRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.SendCode(c.UserContext(), in.Email)
	if err != nil {
		return writeError(c, h.log, err, "Failed to send verification code")
	}
	return c.JSON(out)
}

// VerifyOTP godoc
// @Summary      Verificar código
// @Description  Código incorrecto y código expirado devuelven el mismo mensaje.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.VerifyOTPRequest  true  "email y código"
// @Success      200   {object}  dto.VerifyOTPResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.VerifyCode(c.UserContext(), in.Email, in.Code)
	if err != nil {
		return writeError(c, h.log, err, "Failed to verify code")
	}
	return c.JSON(out)
}
