package route

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"terminal-terrace/blog/config"
	_ "terminal-terrace/blog/docs"
	"terminal-terrace/blog/internal/middleware"
	"terminal-terrace/blog/internal/post"
	"terminal-terrace/blog/internal/tag"
)

func health(c *gin.Context) {
	c.JSON(http.StatusOK, "success")
}

func initRoute(r *gin.Engine, db *gorm.DB) {
	// 存活探针，/health_check 为旧路径
	r.GET("/health", health)
	r.GET("/health_check", health)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	{
		post.SetupPostRoutes(api, db)
		tag.SetupTagRoutes(api, db)
	}
}

func SetupRouter(db *gorm.DB, cfg *config.AppConfig) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Metrics())

	// 设置跨域请求，未配置来源时放开
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}
	if len(cfg.CORS.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}
	r.Use(cors.New(corsConfig))

	initRoute(r, db)

	return r
}
