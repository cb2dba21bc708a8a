package entity

import "time"

// OtpCode código de verificación enviado a un email.
type OtpCode struct {
	ID        string
	Email     string
	Code      string
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}

// Usable true si no fue consumido y no ha expirado en el instante now.
func (o *OtpCode) Usable(now time.Time) bool {
	return !o.Verified && now.Before(o.ExpiresAt)
}
