package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
)

// TechnicianRepository persists technicians. Technicians are append-only.
type TechnicianRepository struct {
	db   *DB
	coll collection[models.Technician]
}

// NewTechnicianRepository creates a new TechnicianRepository.
func NewTechnicianRepository(db *DB) *TechnicianRepository {
	return &TechnicianRepository{db: db, coll: collection[models.Technician]{db: db, name: store.Technicians}}
}

func (r *TechnicianRepository) List(ctx context.Context) ([]models.Technician, error) {
	return r.coll.all(ctx)
}

func (r *TechnicianRepository) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	t, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, t models.Technician) (*models.Technician, error) {
	t.ID = r.db.newID()
	created, err := r.coll.insert(ctx, t)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// SeedIfEmpty stores items when there are no technicians yet.
func (r *TechnicianRepository) SeedIfEmpty(ctx context.Context, items []models.Technician) (bool, error) {
	return seedIfEmpty(ctx, r.db, store.Technicians, items)
}
