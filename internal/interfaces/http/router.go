package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/admin"
	"github.com/jhoicas/licenseshop-api/internal/application/auth"
	"github.com/jhoicas/licenseshop-api/internal/application/catalog"
	"github.com/jhoicas/licenseshop-api/internal/application/checkout"
	"github.com/jhoicas/licenseshop-api/internal/application/licensing"
	"github.com/jhoicas/licenseshop-api/internal/application/orders"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/application/verification"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC      *catalog.UseCase
	VerificationUC *verification.UseCase
	Checkout       *checkout.Orchestrator
	Idempotency    ports.IdempotencyStore // opcional
	Orders         *orders.Service
	Licensing      *licensing.Service
	AuthUC         *auth.AuthUseCase
	Refund         *admin.RefundUseCase
	Tokens         TokenParser
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo y carrito (público)
	productHandler := NewProductHandler(deps.CatalogUC, deps.Log)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Post("/cart/quote", productHandler.Quote)

	// Verificación de email (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.VerificationUC, deps.Log)
	authGroup.Post("/send-otp", authHandler.SendOTP)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)

	// Órdenes (público: el id de la orden actúa como referencia del comprador)
	ordersGroup := api.Group("/orders")
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Idempotency, deps.Log)
	orderHandler := NewOrderHandler(deps.Orders, deps.Log)
	ordersGroup.Post("/checkout", checkoutHandler.Checkout)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/invoice", orderHandler.Invoice)
	ordersGroup.Post("/:id/email-invoice", orderHandler.EmailInvoice)

	// Claves
	licenseHandler := NewLicenseHandler(deps.Licensing, deps.Log)
	api.Get("/licenses/:key", licenseHandler.Lookup)

	// Administración
	adminHandler := NewAdminHandler(deps.AuthUC, deps.Refund, deps.Log)
	api.Post("/admin/login", adminHandler.Login)

	protected := api.Group("/admin", AdminAuth(deps.Tokens), RequireRole(auth.RoleAdmin))
	protected.Post("/orders/:id/refund", adminHandler.Refund)
	protected.Post("/licenses/:key/revoke", licenseHandler.Revoke)
}
