package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/rate_ledger/cmd/docs"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/rate_ledger/internal/core/ports/services"
	"github.com/SscSPs/rate_ledger/internal/middleware"
	"github.com/SscSPs/rate_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	registerHealthRoute(r, services.Health)

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// healthCheck godoc
// @Summary Health check
// @Description Reports whether the service and its rate store are reachable.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "Rate store unavailable"
// @Router /health [get]
func registerHealthRoute(r *gin.Engine, health portssvc.HealthSvc) {
	r.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health.Ping(c.Request.Context()); err != nil {
				middleware.GetLoggerFromContext(c).Error("Health check failed", "error", err.Error())
				c.String(http.StatusServiceUnavailable, "Rate store unavailable")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	writeGuards := []gin.HandlerFunc{middleware.RequireWriter(domain.RoleWritePolicy(cfg.WriterRoles...))}
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		writeGuards = append(writeGuards, middleware.RateLimit(limiter))
	}

	RegisterConversionRateRoutes(v1, services.RateLedger, services.RateInsights, writeGuards...)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
