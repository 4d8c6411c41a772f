package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// ReportHandler serves the dashboard, period reports and CSV exports.
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
}

func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// GetDashboard handles GET /api/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	d, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, d)
}

// GetReport handles GET /api/relatorios?inicio=YYYY-MM-DD&fim=YYYY-MM-DD
func (h *ReportHandler) GetReport(c *gin.Context) {
	period, err := h.reportService.ParsePeriod(c.Query("inicio"), c.Query("fim"))
	if err != nil {
		respondError(c, err)
		return
	}
	r, err := h.reportService.Report(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, r)
}

// ExportReport handles GET /api/relatorios/exportar?tipo=vendas|ordens&inicio=&fim=
func (h *ReportHandler) ExportReport(c *gin.Context) {
	period, err := h.reportService.ParsePeriod(c.Query("inicio"), c.Query("fim"))
	if err != nil {
		respondError(c, err)
		return
	}
	f, err := h.exportService.Export(c.Request.Context(), c.DefaultQuery("tipo", service.ExportSales), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", f.Content)
}
