package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
)

// Mensajes de validación que ve el comprador, por campo JSON y regla.
var fieldMessages = map[string]string{
	"email.required":          "Valid email is required",
	"email.email":             "Valid email is required",
	"code.required":           "OTP must be 6 digits",
	"code.len":                "OTP must be 6 digits",
	"firstName.required":      "First name is required",
	"lastName.required":       "Last name is required",
	"street.required":         "Street address is required",
	"city.required":           "City is required",
	"state.required":          "State is required",
	"postcode.required":       "Valid postcode required",
	"postcode.min":            "Valid postcode required",
	"cardNumber.required":     "Card number is required",
	"expiryDate.required":     "Expiry date is required",
	"cvv.required":            "CVV is required",
	"cvv.min":                 "CVV is required",
	"cardholderName.required": "Cardholder name is required",
	"items.required":          "At least one item is required",
	"items.min":               "At least one item is required",
	"productId.required":      "Product ID is required",
	"quantity.min":            "Quantity must be at least 1",
	"password.required":       "Password is required",
	"reason.max":              "Reason must be at most 200 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage primer error de validación en texto legible.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// bindJSON parsea y valida el cuerpo; si falla ya escribió la respuesta 400 y devuelve false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return true, nil
}
