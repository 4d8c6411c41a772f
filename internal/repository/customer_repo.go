package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
)

// CustomerRepository persists customers.
type CustomerRepository struct {
	db   *DB
	coll collection[models.Customer]
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db, coll: collection[models.Customer]{db: db, name: store.Customers}}
}

// List returns every customer in insertion order.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	return r.coll.all(ctx)
}

// GetByID returns utils.ErrNotFound when id is unknown.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create assigns id and registration time, then stores c.
func (r *CustomerRepository) Create(ctx context.Context, c models.Customer) (*models.Customer, error) {
	c.ID = r.db.newID()
	c.RegisteredAt = r.db.now()
	created, err := r.coll.insert(ctx, c)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update shallow-merges patch into the stored customer.
func (r *CustomerRepository) Update(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error) {
	c, err := r.coll.update(ctx, id, func(c *models.Customer) error {
		patch.Apply(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete reports whether a customer was removed.
func (r *CustomerRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll.remove(ctx, id)
}
