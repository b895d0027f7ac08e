package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Repuestos-api/internal/application/auth"
	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Repuestos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma las dependencias y sirve HTTP hasta que ctx se cancela. Los recursos
// abiertos se cierran con defer antes de volver, también ante un error.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, _ := cfg.Report.Location() // validada arriba

	if cfg.Migration.AutoRun {
		version, err := postgres.RunMigrations(cfg.DB)
		if err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Uint("version", version).Msg("esquema actualizado")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	ledgerRepo := postgres.NewProfitLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché por sesión: Redis si está configurado, si no en memoria del proceso.
	var sessions ports.SessionStore
	if cfg.Redis.Addr != "" {
		redisStore := session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		defer redisStore.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("conexión a Redis %s: %w", cfg.Redis.Addr, err)
		}
		sessions = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: sesiones en memoria del proceso")
		sessions = session.NewMemoryStore(cfg.Redis.TTL)
	}

	exporter := export.NewRegistry()

	userUC := usecase.NewUserUseCase(userRepo, log.Component("users"))
	if err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("crear administrador inicial: %w", err)
	}

	billingUC := billing.NewBillingUseCase(
		billRepo, txRunner,
		infrapdf.NewBillPDFGenerator(cfg.App.Name), export.NewInvoicePrinter(), exporter,
		billing.Config{Location: loc, Currency: cfg.Report.Currency},
		log.Component("billing"),
	)
	reportUC := report.NewProfitReportUseCase(
		billRepo, expenseRepo, stockRepo, ledgerRepo, exporter,
		report.Config{
			Location:     loc,
			Locale:       ledger.ResolveLocale(cfg.Report.Locale),
			LedgerSync:   cfg.Report.LedgerSync,
			SyncTimeout:  cfg.Report.LedgerSyncTimeout,
			FetchTimeout: cfg.Report.FetchTimeout,
		},
		log.Component("report"),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Repuestos API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		StockUC:       usecase.NewStockUseCase(stockRepo),
		ExpenseUC:     usecase.NewExpenseUseCase(expenseRepo, exporter, loc),
		BillingUC:     billingUC,
		DraftUC:       billing.NewDraftUseCase(sessions, billingUC),
		ReportUC:      reportUC,
		PreferencesUC: report.NewPreferencesUseCase(sessions),
		JWTSecret:     cfg.JWT.Secret,
		Log:           log.Component("http"),
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	case err := <-listenErr:
		serveErr = fmt.Errorf("servidor HTTP: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := app.ShutdownWithContext(shutdownCtx)
	// sincronizaciones del libro en curso terminan antes de cerrar el pool
	reportUC.WaitSync()

	if shutdownErr != nil {
		shutdownErr = fmt.Errorf("apagado del servidor: %w", shutdownErr)
	}
	return errors.Join(serveErr, shutdownErr)
}
