package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/config"
	"github.com/cppla/fleetcheck/controllers"
	"github.com/cppla/fleetcheck/middleware"
	"github.com/cppla/fleetcheck/utils"
)

// SetupRouter wires the HTTP surface: one public auth endpoint, two
// guarded RPC endpoints and a health probe.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(utils.RequestLogger())
	r.Use(utils.Recovery())
	r.Use(corsMiddleware(cfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	checkinController := controllers.NewCheckinController(db)
	adminController := controllers.NewAdminController(db)

	api := r.Group("/api/v1")
	{
		api.POST("/auth", middleware.RateLimitMiddleware(), authController.Handle)
		api.POST("/checkin", middleware.AuthRequired(db), checkinController.Handle)
		api.POST("/admin", middleware.AuthRequired(db), adminController.Handle)
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(404, gin.H{
			"success": false,
			"code":    4004,
			"message": "接口不存在",
			"type":    utils.KindInvalidParameter,
		})
	})

	return r
}

func corsMiddleware(cfg config.AppConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return cors.New(corsCfg)
}
