package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/unations/tax-engine/docs"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/handlers"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/middleware"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	healthHandler     *handlers.HealthHandler
	taxHandler        *handlers.TaxHandler
	exemptionHandler  *handlers.ExemptionHandler
	returnHandler     *handlers.ReturnHandler
	complianceHandler *handlers.ComplianceHandler

	rateLimiter *middleware.RateLimiter
	serverCfg   *config.Config
	engine      *Engine
)

func useEngine(e *Engine) {
	engine = e
	serverCfg = e.Config

	commonServices := handlers.NewCommonServices(handlers.CommonServicesConfig{
		Stage:  serverCfg.Stage,
		Logger: logger.ForComponent(logger.ComponentAPI),
	})

	healthHandler = handlers.NewHealthHandler(commonServices)
	taxHandler = handlers.NewTaxHandler(commonServices, e.Tax, logger.ForComponent(logger.ComponentCalculator))
	exemptionHandler = handlers.NewExemptionHandler(commonServices, e.StatusCards, logger.ForComponent(logger.ComponentExemption))
	returnHandler = handlers.NewReturnHandler(commonServices, e.Filing, e.ReturnRequests, logger.ForComponent(logger.ComponentFiling))
	complianceHandler = handlers.NewComplianceHandler(commonServices, e.Compliance, logger.ForComponent(logger.ComponentCompliance))

	rateLimiter = middleware.NewRateLimiter(serverCfg.RateLimit.RequestsPerSecond, serverCfg.RateLimit.Burst)
}

// NewRouter builds a router over an already wired engine
func NewRouter(e *Engine) *gin.Engine {
	useEngine(e)
	router := gin.New()
	router.Use(gin.Recovery())
	InitializeRoutes(router)
	return router
}

// RateLimiter returns the limiter built by the last NewRouter call
func RateLimiter() *middleware.RateLimiter {
	return rateLimiter
}

func InitializeRoutes(router *gin.Engine) {
	isDevelopment := serverCfg.IsDevelopment()

	router.Use(configureCORS(serverCfg.CORS))
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(rateLimiter.Middleware())
	router.Use(middleware.EnhancedLoggingMiddleware(isDevelopment))
	if !isDevelopment {
		router.Use(middleware.RequestLoggingMiddleware())
	}

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		tax := v1.Group("/tax")
		{
			tax.POST("/calculations", taxHandler.CalculateTax)
			tax.GET("/calculations/:calculation_id", taxHandler.GetCalculation)
			tax.POST("/calculations/:calculation_id/corrections", taxHandler.CorrectCalculation)
			tax.GET("/jurisdictions", taxHandler.ListJurisdictions)
		}

		statusCards := v1.Group("/status-cards")
		{
			statusCards.POST("/validate", exemptionHandler.ValidateStatusCard)
			statusCards.PATCH("/:card_number/status", exemptionHandler.UpdateStatusCardStatus)
		}

		exemptions := v1.Group("/exemptions")
		{
			exemptions.PUT("/bands/:band_number", exemptionHandler.UpsertBandExemption)
			exemptions.PUT("/treaties/:treaty_number", exemptionHandler.UpsertTreatyExemption)
		}

		returns := v1.Group("/returns")
		{
			returns.POST("", returnHandler.FileReturn)
			returns.POST("/batch", returnHandler.BatchFileReturns)
			returns.GET("/:return_id", returnHandler.GetReturn)
			returns.POST("/:return_id/ready", returnHandler.MarkReady)
			returns.POST("/:return_id/submit", returnHandler.SubmitReturn)
			returns.POST("/:return_id/amend", returnHandler.AmendReturn)
		}

		v1.POST("/remittances/:remittance_id/payments", returnHandler.RecordPayment)
		v1.GET("/compliance/:entity_id", complianceHandler.GetCompliance)
	}

	logger.Info("Routes initialized", zap.String("stage", serverCfg.Stage))
}

func configureCORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	if len(cfg.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowedHeaders
	}
	corsConfig.ExposeHeaders = []string{middleware.CorrelationIDHeader, "X-RateLimit-Limit", "X-RateLimit-Reset", "Retry-After"}
	return cors.New(corsConfig)
}
