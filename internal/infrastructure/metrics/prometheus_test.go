package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
)

func TestContadores(t *testing.T) {
	p := New()
	p.ObserveCheckout(ports.ResultSuccess)
	p.ObserveCheckout(ports.ResultSuccess)
	p.ObserveCheckout(ports.ResultDeclined)
	p.ObservePayment("process", ports.ResultSuccess)
	p.ObserveOTPSent()
	p.ObserveEmail("invoice", ports.ResultFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.checkouts.WithLabelValues(ports.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.checkouts.WithLabelValues(ports.ResultDeclined)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.otpSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.emails.WithLabelValues("invoice", ports.ResultFailed)))
}

func TestDosInstanciasNoColisionan(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestMiddlewareYHandler(t *testing.T) {
	p := New()
	app := fiber.New()
	app.Use(p.Middleware())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", adaptor.HTTPHandler(p.Handler()))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products/endpoint-protection", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `licenseshop_http_request_duration_seconds_count{method="GET",route="/api/products/:id",status="200"} 1`)
}
