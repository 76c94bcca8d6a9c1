package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	handler *Handler,
	authMiddleware gin.HandlerFunc,
	adminMiddleware gin.HandlerFunc,
	chatDeps ChatDeps,
	healthCheck func(ctx context.Context) error,
	env string,
) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		if err := healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/uploads/:filename", handler.serveDocument)

	api := router.Group("/api")
	{
		api.POST("/register", handler.register)
		api.POST("/login", handler.login)

		protected := api.Group("")
		protected.Use(authMiddleware)
		{
			protected.GET("/me", handler.me)
			protected.POST("/logout", handler.logout)

			protected.POST("/complaints", handler.createComplaint)
			protected.GET("/complaints", handler.listComplaints)
			protected.GET("/complaints/:id", handler.getComplaint)

			admin := protected.Group("/admin")
			admin.Use(adminMiddleware)
			{
				admin.GET("/complaints", handler.adminListComplaints)
				admin.GET("/complaints/:id", handler.adminGetComplaint)
				admin.PATCH("/complaints/:id", handler.adminUpdateComplaint)
			}
		}
	}

	router.GET("/ws/chat", authMiddleware, handler.serveChat(chatDeps))

	return router
}
