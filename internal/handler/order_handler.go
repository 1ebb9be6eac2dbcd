package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/internal/domain"
	"github.com/shopfleet/order-service/internal/service"
	"github.com/shopfleet/order-service/pkg/errorhandling"
	"github.com/shopfleet/order-service/pkg/middleware"
)

type OrderHandler struct {
	orderService *service.OrderService
	errHandler   *errorhandling.Handler
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, errHandler *errorhandling.Handler, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		errHandler:   errHandler,
		logger:       logger,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.NewOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	requestID := c.GetString(middleware.RequestIDKey)

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, requestID)
	if err != nil {
		// The boundary handler is the single point of logging, metrics
		// and process-exit decisions; the response carries the
		// classified status and nothing else.
		appErr := h.errHandler.Handle(c.Request.Context(), err)
		c.JSON(appErr.Status, gin.H{"error": appErr.Kind})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		// Absence is not a classified failure, just a 404.
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		appErr := h.errHandler.Handle(c.Request.Context(), err)
		c.JSON(appErr.Status, gin.H{"error": appErr.Kind})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		appErr := h.errHandler.Handle(c.Request.Context(), err)
		c.JSON(appErr.Status, gin.H{"error": appErr.Kind})
		return
	}

	c.Status(http.StatusNoContent)
}
