// Package store persists the shop's collections. Every backend stores each
// collection as a JSON array and distinguishes "no data yet" from data it
// cannot read.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Collection names a persisted collection. The values match the top-level
// keys of the db.json document.
type Collection string

const (
	Customers   Collection = "clientes"
	Products    Collection = "produtos"
	Technicians Collection = "tecnicos"
	Orders      Collection = "ordens"
	Sales       Collection = "vendas"
)

// Collections lists every collection in lock order.
var Collections = []Collection{Customers, Orders, Products, Sales, Technicians}

// SchemaVersion is the document layout written by this build.
const SchemaVersion = 1

var (
	ErrCorruptData       = errors.New("STORAGE_CORRUPT")
	ErrUnsupportedSchema = errors.New("UNSUPPORTED_SCHEMA")
)

// CorruptError reports persisted data that exists but cannot be read.
type CorruptError struct {
	Collection Collection
	Reason     string
}

func (e *CorruptError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("corrupt storage: %s", e.Reason)
	}
	return fmt.Sprintf("corrupt storage in %s: %s", e.Collection, e.Reason)
}

func (e *CorruptError) Unwrap() error { return ErrCorruptData }

// Store is the persistence boundary.
//
// Load returns the raw JSON array for c, (nil, nil) when c has never been
// written, or an error wrapping ErrCorruptData when the stored bytes are
// unreadable. SaveBatch replaces every given collection in one atomic write.
type Store interface {
	Load(ctx context.Context, c Collection) (json.RawMessage, error)
	SaveBatch(ctx context.Context, batch map[Collection]json.RawMessage) error
	Close() error
}

// State describes a collection's health.
type State string

const (
	StateOK      State = "ok"
	StateEmpty   State = "empty"
	StateCorrupt State = "corrupt"
	StateError   State = "error"
)

// Inspect reports the state of every collection.
func Inspect(ctx context.Context, s Store) map[Collection]State {
	out := make(map[Collection]State, len(Collections))
	for _, c := range Collections {
		raw, err := s.Load(ctx, c)
		switch {
		case errors.Is(err, ErrCorruptData):
			out[c] = StateCorrupt
		case err != nil:
			out[c] = StateError
		case raw == nil:
			out[c] = StateEmpty
		default:
			out[c] = StateOK
		}
	}
	return out
}

// Export renders every collection as a single versioned document in the
// db.json layout. Missing collections are written as empty arrays.
func Export(ctx context.Context, s Store) ([]byte, error) {
	doc := map[string]json.RawMessage{
		schemaKey: json.RawMessage(fmt.Sprint(SchemaVersion)),
	}
	for _, c := range Collections {
		raw, err := s.Load(ctx, c)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			raw = json.RawMessage("[]")
		}
		doc[string(c)] = raw
	}
	return json.MarshalIndent(doc, "", "  ")
}

const schemaKey = "schemaVersion"

// checkArray returns raw unchanged when it holds a JSON array, nil for JSON
// null, and a CorruptError otherwise.
func checkArray(c Collection, raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &CorruptError{Collection: c, Reason: "empty payload"}
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' || !json.Valid(trimmed) {
		return nil, &CorruptError{Collection: c, Reason: "payload is not a JSON array"}
	}
	return json.RawMessage(trimmed), nil
}

// sortedBatch returns the batch keys in lock order so that backends write
// deterministically.
func sortedBatch(batch map[Collection]json.RawMessage) []Collection {
	keys := make([]Collection, 0, len(batch))
	for c := range batch {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func validateBatch(batch map[Collection]json.RawMessage) error {
	for _, c := range sortedBatch(batch) {
		raw := bytes.TrimSpace(batch[c])
		if len(raw) == 0 || raw[0] != '[' || !json.Valid(raw) {
			return fmt.Errorf("save %s: payload is not a JSON array", c)
		}
	}
	return nil
}
