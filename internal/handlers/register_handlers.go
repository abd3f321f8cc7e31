package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
	"github.com/fajarprasetia/smartone-finance/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Account)
	registerPeriodRoutes(v1, services.Period)
	registerJournalRoutes(v1, services.Journal, services.Period)
	registerBudgetRoutes(v1, services.Budget, services.Reporting)
	registerCashRoutes(v1, services.Cash)
	registerPaymentRoutes(v1, services.Receivable)
	registerReportingRoutes(v1, services.Reporting)
}
