package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/aqarhub/aqar-hub-api/internal/middleware"
	"github.com/aqarhub/aqar-hub-api/internal/models"
	"github.com/aqarhub/aqar-hub-api/internal/service"
	"github.com/aqarhub/aqar-hub-api/pkg/config"
	"github.com/aqarhub/aqar-hub-api/pkg/logger"
	corsmiddleware "github.com/aqarhub/aqar-hub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/aqarhub/aqar-hub-api/pkg/middleware/requestid"
)

// Services bundles everything the router needs.
type Services struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Documents   *service.DocumentService
	Assignments *service.AssignmentService
	Stats       *service.StatsService
	Metrics     *service.MetricsService
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(cfg *config.Config, logr *zap.Logger, svcs Services) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if svcs.Metrics != nil {
		r.Use(middleware.Metrics(svcs.Metrics))
	}

	authHandler := NewAuthHandler(svcs.Auth)
	userHandler := NewUserHandler(svcs.Users)
	documentHandler := NewDocumentHandler(svcs.Documents, cfg.Exports.Enabled)
	assignmentHandler := NewAssignmentHandler(svcs.Assignments)
	statsHandler := NewStatsHandler(svcs.Stats)
	criteriaHandler := NewCriteriaHandler()
	metricsHandler := NewMetricsHandler(svcs.Metrics)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authRequired := middleware.Auth(svcs.Auth)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	reviewers := middleware.RequireRoles(models.RoleIQAC, models.RoleManagement, models.RoleAdmin)
	userReaders := middleware.RequireRoles(models.RoleAdmin, models.RoleIQAC)

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/verify", authRequired, authHandler.Verify)
		}

		users := api.Group("/users", authRequired)
		{
			users.GET("", userReaders, userHandler.List)
			users.POST("", adminOnly, userHandler.Create)
			users.GET("/:id", adminOnly, userHandler.Get)
			users.PUT("/:id", adminOnly, userHandler.Update)
			users.DELETE("/:id", adminOnly, userHandler.Delete)
		}

		documents := api.Group("/documents", authRequired)
		{
			documents.GET("", documentHandler.List)
			documents.POST("", documentHandler.Upload)
			documents.GET("/export", documentHandler.Export)
			documents.GET("/:id", documentHandler.Get)
			documents.PUT("/:id/file", documentHandler.Reupload)
			documents.PUT("/:id/status", reviewers, documentHandler.Review)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		assignments := api.Group("/assignments", authRequired)
		{
			assignments.GET("", assignmentHandler.List)
			assignments.POST("", adminOnly, assignmentHandler.Create)
			assignments.DELETE("/:id", adminOnly, assignmentHandler.Delete)
		}

		api.GET("/stats", authRequired, statsHandler.Snapshot)
		api.GET("/criteria", authRequired, criteriaHandler.List)
		api.GET("/academic-years", authRequired, criteriaHandler.AcademicYears)
	}

	r.NoRoute(func(c *gin.Context) {
		body := gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}}
		if cfg.DebugRoutes {
			routes := make([]string, 0, len(r.Routes()))
			for _, route := range r.Routes() {
				routes = append(routes, route.Method+" "+route.Path)
			}
			body["routes"] = routes
		}
		c.JSON(http.StatusNotFound, body)
	})

	return r
}
