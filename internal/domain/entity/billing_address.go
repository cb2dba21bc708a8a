package entity

import "strings"

// DefaultCountry país de facturación cuando el comprador no indica otro.
const DefaultCountry = "Australia"

// BillingAddress snapshot de la dirección de facturación guardado con la orden.
type BillingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// FullName nombre completo del titular.
func (a BillingAddress) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Lines dirección en líneas listas para imprimir.
func (a BillingAddress) Lines() []string {
	lines := []string{a.Street, strings.TrimSpace(a.City + " " + a.State + " " + a.Postcode)}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}
