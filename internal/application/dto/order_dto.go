package dto

import (
	"time"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// BillingAddressResponse snapshot de facturación guardado en la orden.
type BillingAddressResponse = entity.BillingAddress

// OrderResponse cabecera de la orden.
type OrderResponse struct {
	ID               string                 `json:"id"`
	CustomerID       string                 `json:"customerId"`
	Email            string                 `json:"email"`
	Status           string                 `json:"status"`
	Subtotal         Money                  `json:"subtotal"`
	GST              Money                  `json:"gst"`
	Total            Money                  `json:"total"`
	PaymentMethod    string                 `json:"paymentMethod"`
	PaymentStatus    string                 `json:"paymentStatus"`
	PaymentReference string                 `json:"paymentReference,omitempty"`
	BillingAddress   BillingAddressResponse `json:"billingAddress"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// OrderItemResponse línea de la orden.
type OrderItemResponse struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       Money  `json:"price"`
	Quantity    int    `json:"quantity"`
	Total       Money  `json:"total"`
}

// LicenseKeyResponse clave emitida.
type LicenseKeyResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"orderId"`
	OrderItemID string     `json:"orderItemId"`
	ProductID   string     `json:"productId"`
	LicenseKey  string     `json:"licenseKey"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CustomerResponse datos del comprador.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderDetailResponse salida de GET /api/orders/:id.
type OrderDetailResponse struct {
	Order       OrderResponse        `json:"order"`
	Items       []OrderItemResponse  `json:"items"`
	LicenseKeys []LicenseKeyResponse `json:"licenseKeys"`
	Customer    *CustomerResponse    `json:"customer"`
}

// NewOrderResponse mapea la entidad.
func NewOrderResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		Email:            o.Email,
		Status:           o.Status,
		Subtotal:         NewMoney(o.Subtotal),
		GST:              NewMoney(o.Tax),
		Total:            NewMoney(o.Total),
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    o.PaymentStatus,
		PaymentReference: o.PaymentReference,
		BillingAddress:   o.BillingAddress,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// NewOrderItemResponse mapea la entidad.
func NewOrderItemResponse(i *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Price:       NewMoney(i.Price),
		Quantity:    i.Quantity,
		Total:       NewMoney(i.Total),
	}
}

// NewLicenseKeyResponse mapea la entidad.
func NewLicenseKeyResponse(k *entity.LicenseKey) LicenseKeyResponse {
	return LicenseKeyResponse{
		ID:          k.ID,
		OrderID:     k.OrderID,
		OrderItemID: k.OrderItemID,
		ProductID:   k.ProductID,
		LicenseKey:  k.Key,
		Status:      k.Status,
		ActivatedAt: k.ActivatedAt,
		CreatedAt:   k.CreatedAt,
	}
}

// NewCustomerResponse mapea la entidad (nil -> nil).
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
