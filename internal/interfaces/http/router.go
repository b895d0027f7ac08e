package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/auth"
	"github.com/jhoicas/Repuestos-api/internal/application/billing"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	StockUC       *usecase.StockUseCase
	ExpenseUC     *usecase.ExpenseUseCase
	BillingUC     *billing.BillingUseCase
	DraftUC       *billing.DraftUseCase
	ReportUC      *report.ProfitReportUseCase
	PreferencesUC *report.PreferencesUseCase
	JWTSecret     string
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", withLogger(deps.Log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Post("/", stockHandler.Create)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", stockHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/export", expenseHandler.Export)
	expenses.Post("/", expenseHandler.Create)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// /draft y /export antes de /:id
	bills := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.BillingUC, deps.DraftUC)
	bills.Get("/", billingHandler.List)
	bills.Post("/", billingHandler.Create)
	bills.Get("/export", billingHandler.Export)
	bills.Get("/draft", billingHandler.Draft)
	bills.Delete("/draft", billingHandler.ClearDraft)
	bills.Post("/draft/items", billingHandler.AddDraftItem)
	bills.Post("/draft/confirm", billingHandler.ConfirmDraft)
	bills.Get("/:id", billingHandler.GetByID)
	bills.Delete("/:id", billingHandler.Delete)
	bills.Get("/:id/items", billingHandler.Items)
	bills.Get("/:id/print", billingHandler.Print)
	bills.Get("/:id/pdf", billingHandler.PDF)

	reportHandler := NewReportHandler(deps.ReportUC, deps.PreferencesUC)
	ledger := protected.Group("/profit-ledger")
	ledger.Get("/", reportHandler.LedgerRows)
	ledger.Post("/bulk-insert", reportHandler.BulkInsert)
	ledger.Post("/sync", reportHandler.Sync)

	reports := protected.Group("/reports")
	reports.Get("/profit", reportHandler.Dashboard)
	reports.Get("/profit/export", reportHandler.Export)

	prefs := protected.Group("/preferences")
	prefs.Get("/chart", reportHandler.ChartPreference)
	prefs.Put("/chart", reportHandler.SetChartPreference)

	// Usuarios (sólo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
}
