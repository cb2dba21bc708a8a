package dto

import "github.com/jhoicas/licenseshop-api/internal/application/ports"

// BillingRequest dirección de facturación del comprador.
type BillingRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Company   string `json:"company"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Postcode  string `json:"postcode" validate:"required,min=4"`
	Phone     string `json:"phone"`
}

// PaymentRequest datos de la tarjeta. Nunca se persisten ni se registran en logs.
type PaymentRequest struct {
	CardNumber     string `json:"cardNumber" validate:"required"`
	ExpiryDate     string `json:"expiryDate" validate:"required"`
	CVV            string `json:"cvv" validate:"required,min=3"`
	CardholderName string `json:"cardholderName" validate:"required"`
}

// CheckoutRequest entrada de POST /api/orders/checkout.
type CheckoutRequest struct {
	Email             string            `json:"email" validate:"required,email"`
	Billing           BillingRequest    `json:"billing"`
	Payment           PaymentRequest    `json:"payment"`
	Items             []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	VerificationToken string            `json:"verificationToken,omitempty"`
}

// CheckoutResponse resultado del checkout (aprobado o rechazado).
type CheckoutResponse struct {
	Success       bool                    `json:"success"`
	OrderID       string                  `json:"orderId"`
	TransactionID string                  `json:"transactionId,omitempty"`
	LicenseKeys   []ports.LicenseKeyGroup `json:"licenseKeys,omitempty"`
	Total         *Money                  `json:"total,omitempty"`
	Message       string                  `json:"message,omitempty"`
}
