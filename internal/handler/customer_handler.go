package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// CustomerHandler handles customer HTTP endpoints.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ListCustomers handles GET /api/clientes?q=
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, customers)
}

// GetCustomer handles GET /api/clientes/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, customer)
}

// CreateCustomer handles POST /api/clientes
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/clientes/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var patch models.CustomerPatch
	if !bindJSON(c, &patch) {
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/clientes/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	removed, err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id"))
	deleted(c, removed, err)
}
