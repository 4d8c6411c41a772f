package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
)

// TechnicianService manages the technician roster.
type TechnicianService struct {
	technicianRepo *repository.TechnicianRepository
}

func NewTechnicianService(technicianRepo *repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{technicianRepo: technicianRepo}
}

// CreateTechnicianRequest represents the request to register a technician.
type CreateTechnicianRequest struct {
	Name      string `json:"nome"`
	Phone     string `json:"telefone"`
	Specialty string `json:"especialidade"`
}

func (s *TechnicianService) ListTechnicians(ctx context.Context) ([]models.Technician, error) {
	return s.technicianRepo.List(ctx)
}

func (s *TechnicianService) GetTechnician(ctx context.Context, id string) (*models.Technician, error) {
	return s.technicianRepo.GetByID(ctx, id)
}

func (s *TechnicianService) CreateTechnician(ctx context.Context, req *CreateTechnicianRequest) (*models.Technician, error) {
	t, err := s.technicianRepo.Create(ctx, models.Technician{
		Name:      req.Name,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("technician_id", t.ID).Msg("technician created")
	return t, nil
}
