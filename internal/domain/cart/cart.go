// Package cart: estado del carrito y cálculo de totales con GST del 10%.
// El mismo cálculo lo usa el checkout en servidor con precios del catálogo.
package cart

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// TaxRate GST aplicado sobre el subtotal.
var TaxRate = decimal.NewFromInt(10).Div(decimal.NewFromInt(100))

// Item línea del carrito.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal precio por cantidad.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart colección ordenada de líneas, una por producto.
type Cart struct {
	items []Item
}

// New carrito vacío.
func New() *Cart { return &Cart{} }

// Add agrega qty puestos del producto; si ya existe, suma cantidades.
// Cantidades <= 0 se ignoran.
func (c *Cart) Add(p *entity.Product, qty int) {
	if p == nil || qty <= 0 {
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, Item{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty})
}

// Remove quita la línea del producto (no-op si no existe).
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity fija la cantidad; qty <= 0 elimina la línea.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			return
		}
	}
}

// Clear vacía el carrito.
func (c *Cart) Clear() { c.items = nil }

// Items copia de las líneas en orden de inserción.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IsEmpty true si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// TotalItems suma de cantidades (puestos).
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Subtotal suma de precio por cantidad.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Tax GST redondeado a 2 decimales.
func (c *Cart) Tax() decimal.Decimal {
	return TaxFor(c.Subtotal())
}

// Total subtotal más GST.
func (c *Cart) Total() decimal.Decimal {
	sub := c.Subtotal()
	return sub.Add(TaxFor(sub))
}

// TaxFor GST de un subtotal, redondeado a centavos.
func TaxFor(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// ── Persistencia local ───────────────────────────────────────────────────────

// Snapshot representación serializable del carrito con totales calculados.
type Snapshot struct {
	Items      []Item          `json:"items"`
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	CapturedAt time.Time       `json:"capturedAt"`
}

// Snapshot captura el estado actual.
func (c *Cart) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		Subtotal:   c.Subtotal(),
		Tax:        c.Tax(),
		Total:      c.Total(),
		CapturedAt: now,
	}
}

// Save escribe el snapshot como JSON.
func (c *Cart) Save(w io.Writer, now time.Time) error {
	if err := json.NewEncoder(w).Encode(c.Snapshot(now)); err != nil {
		return fmt.Errorf("cart: guardar: %w", err)
	}
	return nil
}

// Load reconstruye el carrito desde un snapshot. Los totales guardados se
// descartan y se recalculan; las líneas con cantidad <= 0 se ignoran.
func Load(r io.Reader) (*Cart, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("cart: cargar: %w", err)
	}
	c := New()
	for _, it := range s.Items {
		if it.Quantity <= 0 || it.ProductID == "" {
			continue
		}
		c.Add(&entity.Product{ID: it.ProductID, Name: it.Name, Price: it.Price}, it.Quantity)
	}
	return c, nil
}
