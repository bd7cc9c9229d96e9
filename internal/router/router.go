package router

import (
	"github.com/gin-gonic/gin"

	"wattbill/internal/domain"
	"wattbill/internal/handler"
	"wattbill/internal/middleware"
	"wattbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tokenSvc service.TokenService,
	corsOrigins []string,
	householdH *handler.HouseholdHandler,
	usageH *handler.UsageHandler,
	billH *handler.BillHandler,
	tariffH *handler.TariffHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokenSvc))

	// Household routes
	households := protected.Group("/households")
	households.POST("", householdH.Create)
	households.GET("", householdH.List)
	households.GET("/:id", householdH.GetByID)
	households.PUT("/:id", householdH.Update)
	households.DELETE("/:id", householdH.Delete)

	// Household-scoped usage and billing
	households.GET("/:id/usage", usageH.ListByHousehold)
	households.GET("/:id/usage/summary", usageH.MonthlySummary)
	households.GET("/:id/bills", billH.ListByHousehold)
	households.POST("/:id/bills/generate", billH.Generate)
	households.GET("/:id/bills/compare", billH.Compare)
	households.GET("/:id/bills/export", billH.ExportCSV)

	// Usage entries
	usage := protected.Group("/usage")
	usage.POST("", usageH.Create)
	usage.PUT("/:id", usageH.Update)
	usage.DELETE("/:id", usageH.Delete)

	// Bills
	bills := protected.Group("/bills")
	bills.POST("", billH.Create)
	bills.GET("", middleware.RequireRole(domain.RoleAdmin), billH.List)
	bills.GET("/:id", billH.GetByID)
	bills.POST("/:id/regenerate", billH.Regenerate)
	bills.PATCH("/:id/status", billH.UpdateStatus)
	bills.DELETE("/:id", billH.Delete)

	// Tariff
	tariff := protected.Group("/tariff")
	tariff.GET("", tariffH.Get)
	tariff.GET("/estimate", tariffH.Estimate)
	tariff.PUT("", middleware.RequireRole(domain.RoleAdmin), tariffH.Update)

	return r
}
