package entity

import (
	"strings"
	"time"
)

// Customer representa un comprador identificado por email (único).
type Customer struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Company   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre y apellido separados por espacio.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
