package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// SeedService fills empty collections with the shop's sample data.
type SeedService struct {
	technicianRepo *repository.TechnicianRepository
	productRepo    *repository.ProductRepository
	newID          utils.IDFunc
}

func NewSeedService(technicianRepo *repository.TechnicianRepository, productRepo *repository.ProductRepository, newID utils.IDFunc) *SeedService {
	if newID == nil {
		newID = utils.NewID
	}
	return &SeedService{technicianRepo: technicianRepo, productRepo: productRepo, newID: newID}
}

// Seed inserts sample technicians and products into whichever of the two
// collections is still empty.
func (s *SeedService) Seed(ctx context.Context) error {
	technicians := []models.Technician{
		{ID: s.newID(), Name: "Carlos Silva", Phone: "(11) 98765-4321", Specialty: "Ar Condicionado"},
		{ID: s.newID(), Name: "João Santos", Phone: "(11) 91234-5678", Specialty: "Geladeira"},
		{ID: s.newID(), Name: "Pedro Oliveira", Phone: "(11) 99876-5432", Specialty: "Freezer"},
	}
	seeded, err := s.technicianRepo.SeedIfEmpty(ctx, technicians)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().Int("count", len(technicians)).Msg("sample technicians inserted")
	}

	products := []models.Product{
		{ID: s.newID(), Name: "Gás Refrigerante R410A", Code: "GAS001", Quantity: 50, MinStock: 10, Price: decimal.NewFromInt(180)},
		{ID: s.newID(), Name: "Compressor 1HP", Code: "COMP001", Quantity: 8, MinStock: 3, Price: decimal.NewFromInt(850)},
		{ID: s.newID(), Name: "Filtro de Ar", Code: "FILT001", Quantity: 100, MinStock: 20, Price: decimal.NewFromInt(45)},
		{ID: s.newID(), Name: "Termostato Digital", Code: "TERM001", Quantity: 15, MinStock: 5, Price: decimal.NewFromInt(120)},
		{ID: s.newID(), Name: "Motor Ventilador", Code: "MOT001", Quantity: 12, MinStock: 4, Price: decimal.NewFromInt(280)},
	}
	seeded, err = s.productRepo.SeedIfEmpty(ctx, products)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().Int("count", len(products)).Msg("sample products inserted")
	}
	return nil
}
