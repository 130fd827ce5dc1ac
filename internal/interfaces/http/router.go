package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/auditlog"
	"github.com/chainsync/chainsync-lite/internal/application/auth"
	"github.com/chainsync/chainsync-lite/internal/application/backup"
	"github.com/chainsync/chainsync-lite/internal/application/changefeed"
	"github.com/chainsync/chainsync-lite/internal/application/ledger"
	"github.com/chainsync/chainsync-lite/internal/application/report"
	"github.com/chainsync/chainsync-lite/internal/application/settings"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	LedgerUC   *ledger.LedgerUseCase
	AuditUC    *auditlog.AuditLogUseCase
	SettingsUC *settings.SettingsUseCase
	ReportUC   *report.ReportUseCase
	BackupUC   *backup.BackupUseCase
	Feed       *changefeed.Feed
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	items.Get("/", inventoryHandler.List)
	items.Post("/", inventoryHandler.Upsert)
	items.Get("/:id", inventoryHandler.GetByID)
	items.Put("/:id", inventoryHandler.Update)
	items.Delete("/:id", inventoryHandler.Delete)

	// Ventas (protegido)
	sales := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.LedgerUC)
	sales.Post("/", salesHandler.Create)
	sales.Get("/", salesHandler.List)

	// Log de mutaciones (protegido)
	audit := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)
	audit.Delete("/", auditHandler.Clear)

	// Ajustes (protegido)
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", settingsHandler.Update)

	// Reportes y exportaciones (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/summary", reportHandler.Summary)
	protected.Get("/export/csv", reportHandler.ExportCSV)
	protected.Get("/export/pdf", reportHandler.ExportPDF)
	protected.Post("/import/csv", inventoryHandler.ImportCSV)

	// Backup / restore / borrado total (protegido)
	backupHandler := NewBackupHandler(deps.BackupUC, deps.LedgerUC)
	protected.Get("/backup", backupHandler.Export)
	protected.Post("/restore", backupHandler.Restore)
	protected.Delete("/data", backupHandler.ClearAll)

	// Feed de cambios (protegido)
	eventsHandler := NewEventsHandler(deps.Feed)
	protected.Get("/events", eventsHandler.Stream)
}
