package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// SaleHandler handles point-of-sale endpoints.
type SaleHandler struct {
	saleService   *service.SaleService
	reportService *service.ReportService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService *service.SaleService, reportService *service.ReportService) *SaleHandler {
	return &SaleHandler{saleService: saleService, reportService: reportService}
}

// ListSales handles GET /api/vendas. With inicio or fim the list is limited
// to that period.
func (h *SaleHandler) ListSales(c *gin.Context) {
	var period *utils.Period
	if start, end := c.Query("inicio"), c.Query("fim"); start != "" || end != "" {
		p, err := h.reportService.ParsePeriod(start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		period = &p
	}
	sales, err := h.saleService.ListSales(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, sales)
}

// GetSale handles GET /api/vendas/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, sale)
}

// CreateSale handles POST /api/vendas
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var draft models.SaleDraft
	if !bindJSON(c, &draft) {
		return
	}
	sale, err := h.saleService.CommitSale(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, sale)
}
