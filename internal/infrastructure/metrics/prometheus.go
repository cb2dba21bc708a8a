// Package metrics: métricas Prometheus del servicio y middleware HTTP para fiber.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

const namespace = "licenseshop"

// Prometheus implementa ports.Metrics sobre un registro propio.
type Prometheus struct {
	registry      *prometheus.Registry
	checkouts     *prometheus.CounterVec
	payments      *prometheus.CounterVec
	otpSent       prometheus.Counter
	verifications *prometheus.CounterVec
	emails        *prometheus.CounterVec
	requests      *prometheus.HistogramVec
}

// New registra todas las métricas en un registro nuevo (más los colectores de Go y del proceso).
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "checkout_total",
			Help: "Checkouts by result (success, declined, failed, invalid).",
		}, []string{"result"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "payments_total",
			Help: "Payment gateway calls by operation and result.",
		}, []string{"operation", "result"}),
		otpSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "otp_sent_total",
			Help: "Verification codes issued.",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "otp_verifications_total",
			Help: "Verification attempts by result.",
		}, []string{"result"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "emails_total",
			Help: "Transactional emails by kind and result.",
		}, []string{"kind", "result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	p.registry.MustRegister(
		p.checkouts, p.payments, p.otpSent, p.verifications, p.emails, p.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// ObserveCheckout cuenta un checkout.
func (p *Prometheus) ObserveCheckout(result string) { p.checkouts.WithLabelValues(result).Inc() }

// ObservePayment cuenta una llamada a la pasarela.
func (p *Prometheus) ObservePayment(op, result string) { p.payments.WithLabelValues(op, result).Inc() }

// ObserveOTPSent cuenta un código emitido.
func (p *Prometheus) ObserveOTPSent() { p.otpSent.Inc() }

// ObserveOTPVerification cuenta un intento de verificación.
func (p *Prometheus) ObserveOTPVerification(result string) { p.verifications.WithLabelValues(result).Inc() }

// ObserveEmail cuenta un correo.
func (p *Prometheus) ObserveEmail(kind, result string) { p.emails.WithLabelValues(kind, result).Inc() }

// Registry registro subyacente (tests).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler exposición en formato texto para /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Middleware mide la latencia por método, ruta registrada y status.
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		p.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		return err
	}
}
