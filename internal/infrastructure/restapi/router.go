package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"gas_checker/internal/infrastructure/configloader"
	"gas_checker/internal/pkg/utils"
)

// SetupRouter configures and returns the Gin router.
func SetupRouter(gasHandler *GasHandler, cfg *configloader.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(utils.ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/", gasHandler.IndexHandler)

	api := router.Group("/api")
	{
		api.GET("/health", gasHandler.HealthHandler)
		api.GET("/gas", gasHandler.FullReportHandler)
		api.GET("/quick", gasHandler.QuickLookupHandler)
		api.GET("/fid/:username", gasHandler.ResolveFIDHandler)
		api.GET("/wallets/:username", gasHandler.ListWalletsHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	debug := router.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		for _, profile := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			debug.GET("/"+profile, gin.WrapH(pprof.Handler(profile)))
		}
	}

	if cfg.Swagger.Enabled {
		router.StaticFile("/docs/swagger.yaml", "./docs/swagger.yaml")
		router.GET(cfg.Swagger.Path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
			ginSwagger.URL("/docs/swagger.yaml")))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}
