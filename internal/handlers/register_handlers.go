package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/matagroup/mata_gestion_app/cmd/docs"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/middleware"
	"github.com/matagroup/mata_gestion_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupPublicRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupPublicRoutes configures the unauthenticated /api/v1/auth group with
// rate limiting.
func setupPublicRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("20-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	public := r.Group("/api/v1", middleware.RateLimit(ipLimiter))
	registerAuthRoutes(public, services.Auth)
	registerGoogleOAuthRoutes(public, services.Auth)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to
// the per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Account, services.Balance, services.Sync, services.Audit)
	registerCreditRoutes(v1, services.Credit)
	registerExpenseRoutes(v1, services.Expense)
	registerTransferRoutes(v1, services.Transfer)
	registerPartnerRoutes(v1, services.Partner)
	registerCreanceRoutes(v1, services.Creance)
	registerStockVivantRoutes(v1, services.StockVivant)
	registerStockSoirRoutes(v1, services.StockSoir)
	registerCashBictorysRoutes(v1, services.CashBictorys)
	registerSettingsRoutes(v1, services.Settings)
	registerDashboardRoutes(v1, services.Cash, services.PL)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
