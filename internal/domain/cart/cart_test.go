package cart_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/domain/cart"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

var (
	protection = &entity.Product{ID: "endpoint-protection", Name: "Protection", Price: decimal.RequireFromString("89.99")}
	complete   = &entity.Product{ID: "endpoint-complete", Name: "Complete", Price: decimal.RequireFromString("149.99")}
)

func TestAdd_FusionaCantidades(t *testing.T) {
	c := cart.New()
	c.Add(protection, 1)
	c.Add(protection, 2)
	c.Add(complete, 1)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 4, c.TotalItems())
}

func TestAdd_CantidadNoPositivaSeIgnora(t *testing.T) {
	c := cart.New()
	c.Add(protection, 0)
	c.Add(protection, -2)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity_CeroElimina(t *testing.T) {
	c := cart.New()
	c.Add(protection, 2)
	c.Add(complete, 1)

	c.UpdateQuantity("endpoint-protection", 5)
	assert.Equal(t, 6, c.TotalItems())

	c.UpdateQuantity("endpoint-protection", 0)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "endpoint-complete", c.Items()[0].ProductID)

	c.Remove("endpoint-complete")
	assert.True(t, c.IsEmpty())
}

func TestTotales_UnPuesto(t *testing.T) {
	c := cart.New()
	c.Add(protection, 1)

	assert.Equal(t, "89.99", c.Subtotal().StringFixed(2))
	assert.Equal(t, "9.00", c.Tax().StringFixed(2))
	assert.Equal(t, "98.99", c.Total().StringFixed(2))
}

func TestTotales_VariosProductos(t *testing.T) {
	c := cart.New()
	c.Add(protection, 2)
	c.Add(complete, 3)

	// 179.98 + 449.97 = 629.95 ; GST 62.995 -> 63.00
	assert.Equal(t, "629.95", c.Subtotal().StringFixed(2))
	assert.Equal(t, "63.00", c.Tax().StringFixed(2))
	assert.True(t, c.Total().Equal(c.Subtotal().Add(c.Tax())))
}

func TestClear(t *testing.T) {
	c := cart.New()
	c.Add(complete, 1)
	c.Clear()
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.Subtotal().IsZero())
}

func TestSaveLoad(t *testing.T) {
	c := cart.New()
	c.Add(protection, 2)
	c.Add(complete, 1)

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	restored, err := cart.Load(&buf)
	require.NoError(t, err)
	want, got := c.Items(), restored.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ProductID, got[i].ProductID)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Price.Equal(got[i].Price))
	}
	assert.True(t, c.Total().Equal(restored.Total()))
}

func TestLoad_RecalculaTotalesYDescartaLineasInvalidas(t *testing.T) {
	raw := `{"items":[{"productId":"endpoint-protection","name":"P","price":"89.99","quantity":1},
		{"productId":"endpoint-complete","name":"C","price":"149.99","quantity":0}],"total":"1.00"}`
	c, err := cart.Load(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalItems())
	assert.Equal(t, "98.99", c.Total().StringFixed(2))
}

func TestLoad_JSONInvalido(t *testing.T) {
	_, err := cart.Load(strings.NewReader("{"))
	assert.Error(t, err)
}
