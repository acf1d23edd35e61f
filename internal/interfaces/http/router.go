package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// RouterDeps handlers ya construidos y el secreto JWT.
type RouterDeps struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Users     *UserHandler
	Koaj      *KoajHandler
	Analytics *AnalyticsHandler
	Inventory *InventoryHandler
	Sales     *SalesHandler
	Cash      *CashHandler
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", deps.Health.Health)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", deps.Auth.Login)
	authGroup.Get("/verify", deps.Auth.Verify)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleSales)

	// Analítica (admin)
	an := protected.Group("/analytics", adminOnly)
	an.Get("/peak-hours", deps.Analytics.PeakHours)
	an.Get("/top-customers", deps.Analytics.TopCustomers)
	an.Get("/top-sellers", deps.Analytics.TopSellers)
	an.Get("/customer-retention", deps.Analytics.CustomerRetention)
	an.Get("/sales-trends", deps.Analytics.SalesTrends)
	an.Get("/cross-selling", deps.Analytics.CrossSelling)
	an.Get("/dashboard", deps.Analytics.Dashboard)

	// Consultas directas a Alegra (admin)
	direct := protected.Group("/direct", adminOnly)
	direct.Get("/inventory/value-report", deps.Inventory.ValueReport)
	direct.Get("/inventory/analysis", deps.Inventory.Analysis)
	direct.Get("/sales/totals", deps.Sales.Totals)
	direct.Get("/sales/documents", deps.Sales.Documents)

	protected.Post("/inventory/analyze-file", adminOnly, deps.Inventory.AnalyzeFile)
	protected.Get("/inventory/quick-total", anyRole, deps.Inventory.QuickTotal)
	protected.Get("/sales/quick-summary", anyRole, deps.Sales.QuickSummary)
	protected.Get("/bills/open-totals", anyRole, deps.Sales.BillsOpenTotals)
	protected.Get("/monthly_sales", anyRole, deps.Sales.MonthlySales)

	// Cierre de caja
	protected.Post("/sum_payments", anyRole, deps.Cash.SumPayments)
	protected.Post("/sum_payments/pdf", anyRole, deps.Cash.SumPaymentsPDF)

	// Usuarios: change-password antes de /:id
	users := protected.Group("/users")
	users.Post("/change-password", anyRole, deps.Users.ChangePassword)
	users.Get("/", adminOnly, deps.Users.List)
	users.Post("/", adminOnly, deps.Users.Create)
	users.Get("/:id", adminOnly, deps.Users.Get)
	users.Put("/:id", adminOnly, deps.Users.Update)
	users.Delete("/:id", adminOnly, deps.Users.Delete)
	users.Post("/:id/reset-password", adminOnly, deps.Users.ResetPassword)

	// Códigos KOAJ: lectura para todos, escritura admin
	koaj := protected.Group("/koaj-codes")
	koaj.Get("/", anyRole, deps.Koaj.List)
	koaj.Get("/guide", anyRole, deps.Koaj.Guide)
	koaj.Get("/:id", anyRole, deps.Koaj.Get)
	koaj.Post("/", adminOnly, deps.Koaj.Create)
	koaj.Put("/:id", adminOnly, deps.Koaj.Update)
	koaj.Delete("/:id", adminOnly, deps.Koaj.Delete)
}
