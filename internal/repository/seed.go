package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
)

func seedIfEmpty[T models.Record](ctx context.Context, db *DB, c store.Collection, items []T) (bool, error) {
	seeded := false
	err := db.WithTx(ctx, []store.Collection{c}, func(tx *Tx) error {
		existing, err := loadAll[T](tx, c)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		seeded = true
		return stageAll(tx, c, items)
	})
	return seeded, err
}
