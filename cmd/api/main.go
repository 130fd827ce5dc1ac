package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/chainsync/chainsync-lite/internal/application/auditlog"
	"github.com/chainsync/chainsync-lite/internal/application/auth"
	"github.com/chainsync/chainsync-lite/internal/application/backup"
	"github.com/chainsync/chainsync-lite/internal/application/changefeed"
	"github.com/chainsync/chainsync-lite/internal/application/ledger"
	"github.com/chainsync/chainsync-lite/internal/application/report"
	appsettings "github.com/chainsync/chainsync-lite/internal/application/settings"
	infrapdf "github.com/chainsync/chainsync-lite/internal/infrastructure/pdf"
	"github.com/chainsync/chainsync-lite/internal/infrastructure/postgres"
	httpRouter "github.com/chainsync/chainsync-lite/internal/interfaces/http"
	"github.com/chainsync/chainsync-lite/pkg/config"
	"github.com/chainsync/chainsync-lite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool (lecturas fuera de transacción)
	itemRepo := postgres.NewItemRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	feed := changefeed.New(0)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, itemRepo, saleRepo, log, feed)
	auditUC := auditlog.NewAuditLogUseCase(auditRepo, log)
	settingsUC := appsettings.NewSettingsUseCase(settingsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := report.NewReportUseCase(itemRepo, settingsUC, pdfGenerator, log)
	backupUC := backup.NewBackupUseCase(itemRepo, saleRepo, auditRepo, settingsRepo, ledgerUC)

	// Sin WriteTimeout: /api/events mantiene streams SSE abiertos.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ChainSync Lite API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		LedgerUC:   ledgerUC,
		AuditUC:    auditUC,
		SettingsUC: settingsUC,
		ReportUC:   reportUC,
		BackupUC:   backupUC,
		Feed:       feed,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
