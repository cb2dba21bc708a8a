package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/licenseshop-api/docs"
	"github.com/jhoicas/licenseshop-api/internal/application/admin"
	"github.com/jhoicas/licenseshop-api/internal/application/auth"
	"github.com/jhoicas/licenseshop-api/internal/application/catalog"
	"github.com/jhoicas/licenseshop-api/internal/application/checkout"
	"github.com/jhoicas/licenseshop-api/internal/application/licensing"
	"github.com/jhoicas/licenseshop-api/internal/application/orders"
	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/application/verification"
	"github.com/jhoicas/licenseshop-api/internal/domain/license"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/cache"
	infracatalog "github.com/jhoicas/licenseshop-api/internal/infrastructure/catalog"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/email"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/metrics"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/licenseshop-api/internal/infrastructure/pdf"
	"github.com/jhoicas/licenseshop-api/internal/infrastructure/postgres"
	archive "github.com/jhoicas/licenseshop-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/licenseshop-api/internal/interfaces/http"
	"github.com/jhoicas/licenseshop-api/pkg/config"
	"github.com/jhoicas/licenseshop-api/pkg/jwt"
	"github.com/jhoicas/licenseshop-api/pkg/logger"
)

// repos persistencia elegida por STORAGE_DRIVER.
type repos struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	keys      repository.LicenseKeyRepository
	otps      repository.OtpRepository
	tx        checkout.TxRunner
	close     func()
}

// @title        License Shop API
// @version      1.0
// @description  Tienda de licencias: catálogo, verificación por OTP, checkout, facturas y administración.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("payment", cfg.Payment.Mode).
		Str("email", cfg.Email.Transport).
		Msg("iniciando aplicación")

	ctx := context.Background()
	prom := metrics.New()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer store.close()

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio, los tokens no sobreviven a un reinicio")
	}
	signer, err := jwt.NewSigner(secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador JWT")
	}

	var gateway ports.PaymentGateway
	switch cfg.Payment.Mode {
	case "bpoint":
		gateway = payment.NewBPointGateway(cfg.Payment.APIURL, cfg.Payment.MerchantID, cfg.Payment.APIKey,
			cfg.Payment.Timeout, log.Component("bpoint"))
	default:
		gateway = payment.NewSimulatedGateway(cfg.Payment.SimulatedDelay, log.Component("payment"))
	}

	sender, err := email.NewSender(ctx, email.Options{
		Transport:      cfg.Email.Transport,
		From:           email.Address{Email: cfg.Email.From, Name: cfg.Email.FromName},
		SMTPHost:       cfg.Email.SMTP.Host,
		SMTPPort:       cfg.Email.SMTP.Port,
		SMTPUser:       cfg.Email.SMTP.User,
		SMTPPass:       cfg.Email.SMTP.Pass,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SES: email.SESConfig{
			Region:          cfg.Email.AWS.Region,
			AccessKeyID:     cfg.Email.AWS.AccessKeyID,
			SecretAccessKey: cfg.Email.AWS.SecretAccessKey,
		},
	}, log.Component("email"))
	if err != nil {
		log.Fatal().Err(err).Msg("transporte de correo")
	}
	notifier, err := email.NewNotifier(sender, email.StoreInfo{
		Name:         cfg.Store.Name,
		AddressLines: cfg.Store.AddressLines,
		SupportEmail: cfg.Store.SupportEmail,
		Phone:        cfg.Store.Phone,
	}, cfg.Store.Currency, prom, log.Component("email"))
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas de correo")
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		idem = cache.NewRedisIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
	} else {
		idem = memory.NewIdempotencyStore(cfg.Redis.IdempotencyTTL)
	}

	var invoiceArchive ports.InvoiceArchive
	if cfg.Archive.Endpoint != "" {
		a, err := archive.NewMinioArchive(ctx, archive.Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			Secure:    cfg.Archive.Secure,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("archivo de facturas")
		}
		invoiceArchive = a
	}

	products := infracatalog.NewDefaultCatalog()
	keygen := license.NewGenerator(nil)
	renderer := infrapdf.NewInvoiceRenderer(infrapdf.StoreInfo{
		Name:         cfg.Store.Name,
		LegalName:    cfg.Store.LegalName,
		AddressLines: cfg.Store.AddressLines,
		SupportEmail: cfg.Store.SupportEmail,
		Phone:        cfg.Store.Phone,
		Website:      cfg.Store.Website,
	})

	catalogUC := catalog.NewUseCase(products, cfg.Store.Currency)
	verificationUC := verification.NewUseCase(store.otps, notifier, signer, prom, log.Component("verification"),
		verification.Config{
			CodeTTL:    cfg.Verification.CodeTTL,
			TokenTTL:   time.Duration(cfg.JWT.Expiration) * time.Minute,
			ExposeCode: cfg.Verification.ExposeCode,
		})
	orchestrator := checkout.NewOrchestrator(checkout.Deps{
		Products:  products,
		Customers: store.customers,
		Tx:        store.tx,
		Payments:  gateway,
		Keys:      keygen,
		Notifier:  notifier,
		Tokens:    signer,
		Metrics:   prom,
		Log:       log.Component("checkout"),
	}, checkout.Config{
		OrderPrefix:          cfg.Store.OrderPrefix,
		Currency:             cfg.Store.Currency,
		RequireVerifiedEmail: cfg.Verification.RequireVerifiedEmail,
	})
	orderSvc := orders.NewService(orders.Deps{
		Orders:    store.orders,
		Customers: store.customers,
		Keys:      store.keys,
		Renderer:  renderer,
		Archive:   invoiceArchive,
		Notifier:  notifier,
		Log:       log.Component("orders"),
	}, cfg.Store.Name)
	licensingSvc := licensing.NewService(store.keys, keygen, log.Component("licensing"))
	authUC := auth.NewAuthUseCase(cfg.Admin.PasswordHash, signer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	refundUC := admin.NewRefundUseCase(store.orders, gateway, prom, log.Component("admin"))
	if cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH vacío: el login de administración queda deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 40,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))
	app.Use(prom.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "License Shop API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:      catalogUC,
		VerificationUC: verificationUC,
		Checkout:       orchestrator,
		Idempotency:    idem,
		Orders:         orderSvc,
		Licensing:      licensingSvc,
		AuthUC:         authUC,
		Refund:         refundUC,
		Tokens:         signer,
		Log:            log.Component("http"),
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error en shutdown")
	}
	log.Info().Msg("servidor detenido")
}

// openStorage abre PostgreSQL (aplicando migraciones) o el almacén en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repos{
			customers: s.Customers(),
			orders:    s.Orders(),
			keys:      s.LicenseKeys(),
			otps:      s.OtpCodes(),
			tx:        memory.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		customers: postgres.NewCustomerRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		keys:      postgres.NewLicenseKeyRepository(pool),
		otps:      postgres.NewOtpRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("secreto aleatorio: " + err.Error())
	}
	return hex.EncodeToString(b)
}
