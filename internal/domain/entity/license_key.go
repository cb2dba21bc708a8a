package entity

import "time"

// Estados de una clave de licencia.
const (
	LicenseStatusActive  = "active"
	LicenseStatusExpired = "expired"
	LicenseStatusRevoked = "revoked"
)

// LicenseKey clave emitida para un puesto de una línea de la orden. Key es única globalmente.
type LicenseKey struct {
	ID          string
	OrderID     string
	OrderItemID string
	ProductID   string
	Key         string
	Status      string
	ActivatedAt *time.Time
	CreatedAt   time.Time
}
