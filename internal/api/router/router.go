package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/feedtamer/config"
	_ "github.com/d60-Lab/feedtamer/docs"
	"github.com/d60-Lab/feedtamer/internal/api/handler"
	"github.com/d60-Lab/feedtamer/internal/api/middleware"
	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/service"
)

// New 组装 gin 引擎与全部路由
func New(cfg *config.Config, h *handler.Handler, authSvc service.AuthService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			return model.ValidPlatform(fl.Field().String())
		})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("feedtamer"))
	r.Use(middleware.RateLimit(cfg.RateLimit))

	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)

		me := auth.Group("", middleware.Auth(authSvc))
		me.GET("/me", h.Me)
		me.PATCH("/me", h.UpdateMe)
		me.PATCH("/password", h.UpdatePassword)
		me.DELETE("/me", h.DeleteMe)
	}

	protected := api.Group("", middleware.Auth(authSvc))

	accounts := protected.Group("/accounts")
	{
		accounts.POST("", h.FollowAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:accountId", h.GetAccount)
		accounts.DELETE("/:accountId", h.UnfollowAccount)
		accounts.PATCH("/:accountId/pin", h.PinAccount)
		accounts.PATCH("/:accountId/unpin", h.UnpinAccount)
		accounts.PATCH("/:accountId/notifications", h.UpdateNotifications)
	}

	feed := protected.Group("/feed")
	{
		feed.GET("", h.GetFeed)
		feed.GET("/by-platform", h.GetFeedByPlatform)
		feed.GET("/saved", h.GetSavedContent)
		feed.GET("/account/:accountId", h.GetAccountContent)
		feed.PATCH("/:contentId/seen", h.MarkContentSeen)
		feed.PATCH("/:contentId/save", h.ToggleSaveContent)
	}

	return r
}
