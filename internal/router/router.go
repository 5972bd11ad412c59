package router

import (
	"github.com/gin-gonic/gin"

	"gstdesk/internal/config"
	"gstdesk/internal/handler"
	"gstdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT from the identity provider
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.JWT))
	protected.Use(middleware.TenantGuard())

	invoices := protected.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.POST("/bulk-approve", invoiceH.BulkApprove)
	invoices.POST("/export", invoiceH.Export)
	invoices.GET("/:id", invoiceH.Get)
	invoices.PUT("/:id", invoiceH.Save)
	invoices.POST("/:id/approve", invoiceH.Approve)
	invoices.POST("/:id/reject", invoiceH.Reject)
	invoices.GET("/:id/source-url", invoiceH.SourceURL)
	invoices.GET("/:id/audit", invoiceH.Audit)

	return r
}
