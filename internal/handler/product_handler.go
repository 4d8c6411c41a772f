package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// ProductHandler handles inventory endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/produtos?q=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, products)
}

// ListLowStock handles GET /api/estoque/baixo
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, products)
}

// GetProduct handles GET /api/produtos/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/produtos
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/produtos/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/produtos/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	removed, err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	deleted(c, removed, err)
}
