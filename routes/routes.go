package routes

import (
	"context"
	"net/http"

	"postapi/controllers"
	"postapi/handlers"
	"postapi/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "postapi/docs"
)

// HealthChecker reports whether storage is reachable.
type HealthChecker func(ctx context.Context) error

func SetupRoutes(
	r *gin.Engine,
	postController *controllers.PostController,
	w *handlers.WebSocketHandler,
	health HealthChecker,
	gatherer prometheus.Gatherer,
) {
	r.GET("/health", func(c *gin.Context) {
		if err := health(c.Request.Context()); err != nil {
			logger.FromContext(c.Request.Context()).Warn("Health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	posts := r.Group("/posts")
	{
		posts.GET("", postController.GetPosts)
		posts.POST("", postController.CreatePost)
		posts.GET("/:id", postController.GetPost)
		posts.PATCH("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
	}

	r.GET("/ws/posts", w.HandleWebSocket)
}
