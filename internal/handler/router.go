package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/pkg/errorhandling"
	"github.com/shopfleet/order-service/pkg/middleware"
)

// HealthChecker reports broker reachability for the health endpoint.
type HealthChecker interface {
	HealthCheck() error
}

// NewRouter assembles the HTTP surface. Panics inside handlers recover into
// the same boundary error handler that classifies returned errors, so an
// untrusted panic escalates identically to an untrusted error value.
func NewRouter(orderHandler *OrderHandler, errHandler *errorhandling.Handler, logger *zap.Logger, broker HealthChecker) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		appErr := errHandler.Handle(c.Request.Context(), recovered)
		c.AbortWithStatusJSON(appErr.Status, gin.H{"error": appErr.Kind})
	}))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":  "healthy",
			"service": "order-service",
		}
		if broker != nil {
			if err := broker.HealthCheck(); err != nil {
				status["kafka"] = "unhealthy"
				c.JSON(503, status)
				return
			}
			status["kafka"] = "healthy"
		}
		c.JSON(200, status)
	})

	orders := router.Group("/order")
	orders.Use(middleware.Authentication())
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
	}

	return router
}
