package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Catalog        *handlers.CatalogHandler
	Checkout       *handlers.CheckoutHandler
	Attendance     *handlers.AttendanceHandler
	Terminal       *handlers.TerminalHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	authed.Post("/auth/pin/change", cfg.Auth.ChangePIN)
	authed.Get("/auth/me", cfg.Auth.Me)

	authed.Post("/attendance/scan", cfg.Attendance.Scan)
	authed.Post("/checkout", cfg.Checkout.Checkout)
	authed.Get("/catalog", cfg.Catalog.ListProducts)

	supervisor := authed.Group("", auth.RequireRole(domain.StaffRoleSupervisor))
	supervisor.Get("/terminal/token", cfg.Terminal.CurrentToken)
	supervisor.Post("/terminal/token/refresh", cfg.Terminal.RefreshToken)
	supervisor.Get("/attendance/records", cfg.Attendance.ListRecords)
	supervisor.Get("/transactions", cfg.Checkout.ListTransactions)
	supervisor.Get("/transactions/:id", cfg.Checkout.GetTransaction)
	supervisor.Get("/catalog/low-stock", cfg.Catalog.ListLowStock)

	// Registered after low-stock so the static path wins the match.
	authed.Get("/catalog/:id", cfg.Catalog.GetProduct)

	manager := authed.Group("", auth.RequireRole(domain.StaffRoleManager))
	manager.Post("/staff", cfg.Staff.CreateStaff)
	manager.Get("/staff", cfg.Staff.ListStaff)
	manager.Get("/staff/:id", cfg.Staff.GetStaff)
	manager.Put("/staff/:id", cfg.Staff.UpdateStaff)
	manager.Delete("/staff/:id", cfg.Staff.DeleteStaff)
	manager.Post("/catalog", cfg.Catalog.CreateProduct)
	manager.Put("/catalog/:id", cfg.Catalog.UpdateProduct)
	manager.Delete("/catalog/:id", cfg.Catalog.DeleteProduct)
	manager.Get("/reports/overview", cfg.Reports.Overview)
	manager.Get("/reports/attendance", cfg.Reports.Attendance)
}
