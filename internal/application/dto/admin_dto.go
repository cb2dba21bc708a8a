package dto

// RefundRequest entrada de POST /api/admin/orders/:id/refund. Amount vacío = total de la orden.
type RefundRequest struct {
	Amount *Money `json:"amount,omitempty"`
	Reason string `json:"reason" validate:"max=200"`
}

// RefundResponse resultado de la devolución.
type RefundResponse struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId,omitempty"`
	Amount        Money  `json:"amount"`
	Message       string `json:"message,omitempty"`
}

// LicenseStatusResponse salida de GET /api/licenses/:key y de la revocación.
type LicenseStatusResponse struct {
	LicenseKey  string `json:"licenseKey"`
	ValidFormat bool   `json:"validFormat"`
	ProductID   string `json:"productId,omitempty"`
	Issued      bool   `json:"issued"`
	Status      string `json:"status,omitempty"`
	OrderID     string `json:"orderId,omitempty"`
}
