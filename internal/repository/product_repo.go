package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
)

// ProductRepository persists the inventory.
type ProductRepository struct {
	db   *DB
	coll collection[models.Product]
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db, coll: collection[models.Product]{db: db, name: store.Products}}
}

// List returns every product.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.coll.all(ctx)
}

// GetByID returns utils.ErrNotFound when id is unknown.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create assigns an id and stores p.
func (r *ProductRepository) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	p.ID = r.db.newID()
	created, err := r.coll.insert(ctx, p)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update shallow-merges patch into the stored product.
func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	p, err := r.coll.update(ctx, id, func(p *models.Product) error {
		patch.Apply(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete reports whether a product was removed. Sales referencing it keep
// the dangling id.
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll.remove(ctx, id)
}

// SeedIfEmpty stores items when the collection has never been written or
// holds no records. It reports whether anything was written.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, items []models.Product) (bool, error) {
	return seedIfEmpty(ctx, r.db, store.Products, items)
}
