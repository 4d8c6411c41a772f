package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// collection implements the CRUD operations shared by every entity. Lookups
// are linear scans; collections hold hundreds of records at most.
type collection[T models.Record] struct {
	db   *DB
	name store.Collection
}

func (r collection[T]) scope() []store.Collection { return []store.Collection{r.name} }

func (r collection[T]) all(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithTx(ctx, r.scope(), func(tx *Tx) error {
		var err error
		items, err = loadAll[T](tx, r.name)
		return err
	})
	return items, err
}

func (r collection[T]) get(ctx context.Context, id string) (T, error) {
	items, err := r.all(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	var zero T
	return zero, utils.ErrNotFound
}

// insert validates item and appends it.
func (r collection[T]) insert(ctx context.Context, item T) (T, error) {
	if err := utils.ValidateStruct(item); err != nil {
		var zero T
		return zero, err
	}
	err := r.db.WithTx(ctx, r.scope(), func(tx *Tx) error {
		items, err := loadAll[T](tx, r.name)
		if err != nil {
			return err
		}
		return stageAll(tx, r.name, append(items, item))
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// update applies mutate to the record with the given id and validates the
// result before persisting it.
func (r collection[T]) update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var updated T
	err := r.db.WithTx(ctx, r.scope(), func(tx *Tx) error {
		items, err := loadAll[T](tx, r.name)
		if err != nil {
			return err
		}
		i := indexOf(items, id)
		if i < 0 {
			return utils.ErrNotFound
		}
		next := items[i]
		if err := mutate(&next); err != nil {
			return err
		}
		if err := utils.ValidateStruct(next); err != nil {
			return err
		}
		items[i] = next
		updated = next
		return stageAll(tx, r.name, items)
	})
	return updated, err
}

// remove reports whether a record was deleted. An unknown id leaves the
// collection untouched.
func (r collection[T]) remove(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.db.WithTx(ctx, r.scope(), func(tx *Tx) error {
		items, err := loadAll[T](tx, r.name)
		if err != nil {
			return err
		}
		i := indexOf(items, id)
		if i < 0 {
			return nil
		}
		removed = true
		return stageAll(tx, r.name, append(items[:i], items[i+1:]...))
	})
	return removed, err
}

func indexOf[T models.Record](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}
