package router

import (
	"github.com/gin-gonic/gin"

	"billbook/internal/handler"
	"billbook/internal/middleware"
	"billbook/internal/service"
)

// Handlers bundles everything Setup wires into the engine.
type Handlers struct {
	Auth      *handler.AuthHandler
	Business  *handler.BusinessHandler
	Contact   *handler.ContactHandler
	Product   *handler.ProductHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	Backup    *handler.BackupHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, corsOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT with business scope
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.BusinessGuard())

	// Business profile
	protected.GET("/business", h.Business.Get)
	protected.PUT("/business", h.Business.Update)

	// Customers and suppliers
	customers := protected.Group("/customers")
	customers.POST("", h.Contact.Create)
	customers.GET("", h.Contact.List)
	customers.GET("/:id", h.Contact.Get)
	customers.GET("/:id/balance", h.Contact.Balance)
	customers.PUT("/:id", h.Contact.Update)
	customers.DELETE("/:id", h.Contact.Delete)

	// Product catalog and stock
	products := protected.Group("/products")
	products.POST("", h.Product.Create)
	products.GET("", h.Product.List)
	products.GET("/low-stock", h.Product.LowStock)
	products.GET("/:id", h.Product.Get)
	products.PUT("/:id", h.Product.Update)
	products.POST("/:id/stock", h.Product.AdjustStock)
	products.DELETE("/:id", h.Product.Delete)

	// Invoices and payments
	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.Get)
	invoices.PUT("/:id/items", h.Invoice.UpdateItems)
	invoices.DELETE("/:id", h.Invoice.Delete)
	invoices.POST("/:id/payments", h.Invoice.RecordPayment)
	invoices.DELETE("/:id/payments/:paymentId", h.Invoice.DeletePayment)
	invoices.POST("/:id/send", h.Invoice.Send)

	// Dashboard and reports
	protected.GET("/dashboard", h.Dashboard.Overview)
	reports := protected.Group("/reports")
	reports.GET("/monthly", h.Report.Monthly)
	reports.GET("/export", h.Report.Export)

	// Backups
	backup := protected.Group("/backup")
	backup.GET("/export", h.Backup.Export)
	backup.POST("/store", h.Backup.Store)
	backup.GET("/download", h.Backup.Download)

	return r
}
