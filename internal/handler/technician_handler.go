package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

type TechnicianHandler struct {
	technicianService *service.TechnicianService
}

func NewTechnicianHandler(technicianService *service.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService}
}

// ListTechnicians handles GET /api/tecnicos
func (h *TechnicianHandler) ListTechnicians(c *gin.Context) {
	technicians, err := h.technicianService.ListTechnicians(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, technicians)
}

// GetTechnician handles GET /api/tecnicos/:id
func (h *TechnicianHandler) GetTechnician(c *gin.Context) {
	technician, err := h.technicianService.GetTechnician(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, technician)
}

// CreateTechnician handles POST /api/tecnicos
func (h *TechnicianHandler) CreateTechnician(c *gin.Context) {
	var req service.CreateTechnicianRequest
	if !bindJSON(c, &req) {
		return
	}
	technician, err := h.technicianService.CreateTechnician(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, technician)
}
