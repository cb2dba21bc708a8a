package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// Money importe con dos decimales fijos en JSON, p.ej. "98.99".
type Money decimal.Decimal

// NewMoney convierte un decimal.
func NewMoney(d decimal.Decimal) Money { return Money(d) }

// Decimal valor subyacente.
func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }

// String dos decimales fijos.
func (m Money) String() string { return decimal.Decimal(m).StringFixed(2) }

// MarshalJSON serializa como string con dos decimales.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON acepta número o string.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}
