package ports

// Resultados usados como etiqueta en las métricas.
const (
	ResultSuccess  = "success"
	ResultDeclined = "declined"
	ResultFailed   = "failed"
	ResultInvalid  = "invalid"
)

// Metrics contadores de negocio. La implementación Prometheus vive en infrastructure/metrics.
type Metrics interface {
	ObserveCheckout(result string)
	ObservePayment(operation, result string)
	ObserveOTPSent()
	ObserveOTPVerification(result string)
	ObserveEmail(kind, result string)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObserveCheckout(string)        {}
func (NopMetrics) ObservePayment(string, string) {}
func (NopMetrics) ObserveOTPSent()               {}
func (NopMetrics) ObserveOTPVerification(string) {}
func (NopMetrics) ObserveEmail(string, string)   {}
