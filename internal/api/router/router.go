package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/api/handler"
	"github.com/espinosa98/rifa-backend/internal/api/middleware"
	"github.com/espinosa98/rifa-backend/pkg/jwt"
	"github.com/espinosa98/rifa-backend/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxBytes + 1<<20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── raffle artwork ──
	r.Static("/media/images", cfg.Upload.Dir)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public endpoints
		v1.GET("/raffles/active", h.Raffle.GetActive)
		v1.POST("/entries", middleware.RateLimit(rdb, 10, time.Minute), h.Entry.Submit)
		v1.GET("/rates/conversion", h.Rate.Conversion)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Login)
		}

		// admin endpoints
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(&cfg.Auth, jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentAccount)

			raffles := authorized.Group("/raffles")
			{
				raffles.GET("", h.Raffle.List)
				raffles.GET("/:id", h.Raffle.Get)
				raffles.POST("", h.Raffle.Create)
				raffles.PUT("/:id", h.Raffle.Update)
				raffles.PUT("/:id/toggle", h.Raffle.Toggle)
				raffles.DELETE("/:id", h.Raffle.Delete)
				raffles.GET("/:id/calendar", h.Raffle.Calendar)
			}

			participants := authorized.Group("/participants")
			{
				participants.GET("", h.Participant.List)
				participants.DELETE("/:id", h.Participant.Delete)
				participants.POST("/:id/send-numbers", h.Participant.SendNumbers)
			}

			numbers := authorized.Group("/numbers")
			{
				numbers.GET("", h.Number.List)
				numbers.DELETE("/:id", h.Number.Delete)
			}

			authorized.GET("/export/allocations", h.Export.Allocations)
		}
	}

	return r
}
