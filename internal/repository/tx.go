package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marianorefrig/mariano_api/internal/store"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// DB couples a store with the single-writer discipline and the identifier
// and clock sources used when records are created.
type DB struct {
	store  store.Store
	locker *Locker
	newID  utils.IDFunc
	now    func() time.Time
}

// Option customizes a DB.
type Option func(*DB)

// WithIDFunc overrides the identifier generator.
func WithIDFunc(f utils.IDFunc) Option { return func(db *DB) { db.newID = f } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(db *DB) { db.now = now } }

// NewDB wraps s.
func NewDB(s store.Store, opts ...Option) *DB {
	db := &DB{
		store:  s,
		locker: NewLocker(),
		newID:  utils.NewID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Export renders every collection as one versioned document while holding
// every collection lock, so a transaction is never captured half applied.
func (db *DB) Export(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := db.WithTx(ctx, store.Collections, func(*Tx) error {
		var err error
		doc, err = store.Export(ctx, db.store)
		return err
	})
	return doc, err
}

// Tx is a locked view over a set of collections. Changes are staged in
// memory and written with a single SaveBatch when the callback succeeds.
type Tx struct {
	ctx    context.Context
	db     *DB
	scope  map[store.Collection]bool
	staged map[store.Collection]json.RawMessage
}

// WithTx locks cs, runs fn and persists whatever fn staged in one atomic
// write. Nothing is written when fn returns an error.
func (db *DB) WithTx(ctx context.Context, cs []store.Collection, fn func(tx *Tx) error) error {
	unlock := db.locker.Lock(cs...)
	defer unlock()

	tx := &Tx{
		ctx:    ctx,
		db:     db,
		scope:  make(map[store.Collection]bool, len(cs)),
		staged: make(map[store.Collection]json.RawMessage, len(cs)),
	}
	for _, c := range cs {
		tx.scope[c] = true
	}

	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.staged) == 0 {
		return nil
	}
	if err := db.store.SaveBatch(ctx, tx.staged); err != nil {
		return fmt.Errorf("persist %d collection(s): %w", len(tx.staged), err)
	}
	return nil
}

func (tx *Tx) checkScope(c store.Collection) {
	if !tx.scope[c] {
		panic("repository: collection " + string(c) + " used outside its transaction scope")
	}
}

// loadAll decodes collection c, returning the staged version when present.
func loadAll[T any](tx *Tx, c store.Collection) ([]T, error) {
	tx.checkScope(c)
	raw, ok := tx.staged[c]
	if !ok {
		var err error
		raw, err = tx.db.store.Load(tx.ctx, c)
		if err != nil {
			return nil, err
		}
	}
	items := []T{}
	if raw == nil {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &store.CorruptError{Collection: c, Reason: err.Error()}
	}
	return items, nil
}

// stageAll replaces collection c in the pending write.
func stageAll[T any](tx *Tx, c store.Collection, items []T) error {
	tx.checkScope(c)
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	tx.staged[c] = raw
	return nil
}
