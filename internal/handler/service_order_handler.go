package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// ServiceOrderHandler handles service order endpoints.
type ServiceOrderHandler struct {
	orderService *service.ServiceOrderService
}

// NewServiceOrderHandler creates a new ServiceOrderHandler.
func NewServiceOrderHandler(orderService *service.ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{orderService: orderService}
}

// ListServiceOrders handles GET /api/ordens?q=&status=&prioridade=
func (h *ServiceOrderHandler) ListServiceOrders(c *gin.Context) {
	orders, err := h.orderService.ListServiceOrders(c.Request.Context(), service.OrderFilter{
		Query:    c.Query("q"),
		Status:   models.OrderStatus(c.Query("status")),
		Priority: models.Priority(c.Query("prioridade")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, orders)
}

// GetServiceOrder handles GET /api/ordens/:id
func (h *ServiceOrderHandler) GetServiceOrder(c *gin.Context) {
	order, err := h.orderService.GetServiceOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, order)
}

// CreateServiceOrder handles POST /api/ordens
func (h *ServiceOrderHandler) CreateServiceOrder(c *gin.Context) {
	var req service.CreateServiceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.CreateServiceOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, order)
}

// UpdateServiceOrder handles PUT /api/ordens/:id
func (h *ServiceOrderHandler) UpdateServiceOrder(c *gin.Context) {
	var patch models.ServiceOrderPatch
	if !bindJSON(c, &patch) {
		return
	}
	order, err := h.orderService.UpdateServiceOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, order)
}

// FinalizeServiceOrder handles POST /api/ordens/:id/finalizar
func (h *ServiceOrderHandler) FinalizeServiceOrder(c *gin.Context) {
	order, err := h.orderService.FinalizeServiceOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, order)
}

// DeleteServiceOrder handles DELETE /api/ordens/:id
func (h *ServiceOrderHandler) DeleteServiceOrder(c *gin.Context) {
	removed, err := h.orderService.DeleteServiceOrder(c.Request.Context(), c.Param("id"))
	deleted(c, removed, err)
}
