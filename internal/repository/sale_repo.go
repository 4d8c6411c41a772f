package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
)

// SalePlan turns the current inventory into the updated inventory and the
// sale to record. It must not keep references to products after returning.
type SalePlan func(products []models.Product) (updated []models.Product, sale models.Sale, err error)

// SaleRepository persists sales. Sales are immutable once committed.
type SaleRepository struct {
	db   *DB
	coll collection[models.Sale]
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db *DB) *SaleRepository {
	return &SaleRepository{db: db, coll: collection[models.Sale]{db: db, name: store.Sales}}
}

func (r *SaleRepository) List(ctx context.Context) ([]models.Sale, error) {
	return r.coll.all(ctx)
}

func (r *SaleRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	s, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Commit locks products and sales, runs plan against the current inventory
// and writes the new inventory together with the appended sale in one
// SaveBatch. When plan fails nothing is written. The sale id and date are
// assigned here.
func (r *SaleRepository) Commit(ctx context.Context, plan SalePlan) (*models.Sale, error) {
	var committed models.Sale
	err := r.db.WithTx(ctx, []store.Collection{store.Products, store.Sales}, func(tx *Tx) error {
		products, err := loadAll[models.Product](tx, store.Products)
		if err != nil {
			return err
		}
		sales, err := loadAll[models.Sale](tx, store.Sales)
		if err != nil {
			return err
		}

		updated, sale, err := plan(products)
		if err != nil {
			return err
		}
		sale.ID = r.db.newID()
		sale.Date = r.db.now()

		if err := stageAll(tx, store.Products, updated); err != nil {
			return err
		}
		committed = sale
		return stageAll(tx, store.Sales, append(sales, sale))
	})
	if err != nil {
		return nil, err
	}
	return &committed, nil
}
