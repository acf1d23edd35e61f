package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/alegra-reports-api/internal/application/analytics"
	"github.com/jhoicas/alegra-reports-api/internal/application/auth"
	"github.com/jhoicas/alegra-reports-api/internal/application/cashclosing"
	"github.com/jhoicas/alegra-reports-api/internal/application/catalog"
	"github.com/jhoicas/alegra-reports-api/internal/application/inventory"
	"github.com/jhoicas/alegra-reports-api/internal/application/sales"
	"github.com/jhoicas/alegra-reports-api/internal/infrastructure/alegra"
	infrapdf "github.com/jhoicas/alegra-reports-api/internal/infrastructure/pdf"
	"github.com/jhoicas/alegra-reports-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/alegra-reports-api/internal/interfaces/http"
	"github.com/jhoicas/alegra-reports-api/pkg/config"
	"github.com/jhoicas/alegra-reports-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	missing := cfg.Validate()
	if slices.Contains(missing, "JWT_SECRET") {
		log.Fatal().Strs("missing", missing).Msg("configuración incompleta")
	}
	alegraConfigured := len(missing) == 0
	if !alegraConfigured {
		log.Warn().Strs("missing", missing).Msg("credenciales de Alegra ausentes; los reportes fallarán")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log.Component("migrations")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	loc := cfg.App.Location()
	userRepo := postgres.NewUserRepository(pool)
	koajRepo := postgres.NewKoajCodeRepository(pool)

	alegraClient := alegra.NewClient(alegra.Config{
		BaseURL:         cfg.Alegra.BaseURL,
		User:            cfg.Alegra.User,
		Token:           cfg.Alegra.Token,
		Timeout:         cfg.Alegra.Timeout(),
		TimeoutRetries:  cfg.Alegra.TimeoutRetries,
		InvoicePageSize: cfg.Alegra.InvoicePageSize,
	}, log.Component("alegra"))

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.LockoutPolicy{
		MaxAttempts: cfg.Auth.MaxLoginAttempts,
		Duration:    time.Duration(cfg.Auth.LockoutTimeMinutes) * time.Minute,
	}, log.Component("auth"))
	userUC := auth.NewUserUseCase(userRepo, log.Component("users"))
	catalogUC := catalog.NewUseCase(koajRepo, log.Component("koaj"))

	analyticsUC := analytics.NewAnalyticsUseCase(alegraClient, loc, log.Component("analytics"))
	inventoryUC := inventory.NewReportUseCase(alegraClient, cfg.Alegra.InventoryPageSize, log.Component("inventory"))
	salesUC := sales.NewUseCase(alegraClient, alegraClient, loc, cfg.Alegra.User, log.Component("sales"))
	cashUC := cashclosing.NewUseCase(cashclosing.Settings{
		BaseTarget:           cfg.Cash.BaseTarget,
		SmallChangeThreshold: cfg.Cash.SmallChangeThreshold,
		CoinDenominations:    cfg.Cash.CoinDenominations,
		BillDenominations:    cfg.Cash.BillDenominations,
	}, salesUC, loc, cfg.Alegra.User, log.Component("cash"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Minute * 3, // un mes de facturas son muchas páginas de Alegra
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "X-Request-ID, X-Alegra-Status",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Alegra Reports API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Health:    httpRouter.NewHealthHandler(cfg.App.Name, alegraClient, alegraConfigured, pool, log.Component("health")),
		Auth:      httpRouter.NewAuthHandler(authUC),
		Users:     httpRouter.NewUserHandler(userUC),
		Koaj:      httpRouter.NewKoajHandler(catalogUC),
		Analytics: httpRouter.NewAnalyticsHandler(analyticsUC, loc),
		Inventory: httpRouter.NewInventoryHandler(inventoryUC, loc),
		Sales:     httpRouter.NewSalesHandler(salesUC, loc),
		Cash:      httpRouter.NewCashHandler(cashUC, infrapdf.NewMarotoPDFGenerator(cfg.App.StoreName)),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
