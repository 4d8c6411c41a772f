package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreEmptyBeforeFirstWrite(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	raw, err := s.Load(context.Background(), Customers)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestFileStoreSaveBatchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "db.json")
	s := NewFileStore(path)
	ctx := context.Background()

	err := s.SaveBatch(ctx, map[Collection]json.RawMessage{
		Products: json.RawMessage(`[{"id":"p1","quantidade":47}]`),
		Sales:    json.RawMessage(`[{"id":"s1"}]`),
	})
	require.NoError(t, err)

	raw, err := s.Load(ctx, Products)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","quantidade":47}]`, string(raw))

	raw, err = s.Load(ctx, Sales)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"s1"}]`, string(raw))

	// Collections outside the batch are untouched.
	raw, err = s.Load(ctx, Customers)
	require.NoError(t, err)
	assert.Nil(t, raw)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, "1", string(doc["schemaVersion"]))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileStoreReadsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	legacy := `{"clientes":[{"id":"c1","nome":"Ana"}],"produtos":[],"ordens":[],"vendas":[]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	s := NewFileStore(path)

	raw, err := s.Load(context.Background(), Customers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1","nome":"Ana"}]`, string(raw))

	raw, err = s.Load(context.Background(), Products)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clientes": [`), 0o644))
	s := NewFileStore(path)
	ctx := context.Background()

	_, err := s.Load(ctx, Customers)
	require.ErrorIs(t, err, ErrCorruptData)

	err = s.SaveBatch(ctx, map[Collection]json.RawMessage{Customers: json.RawMessage(`[]`)})
	require.ErrorIs(t, err, ErrCorruptData)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"clientes": [`, string(data), "corrupt file must be preserved")
}

func TestFileStoreCorruptCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clientes":{"id":"c1"},"produtos":[]}`), 0o644))
	s := NewFileStore(path)

	_, err := s.Load(context.Background(), Customers)
	var cerr *CorruptError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, Customers, cerr.Collection)

	states := Inspect(context.Background(), s)
	assert.Equal(t, StateCorrupt, states[Customers])
	assert.Equal(t, StateOK, states[Products])
	assert.Equal(t, StateEmpty, states[Sales])
}

func TestFileStoreRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schemaVersion":2,"clientes":[]}`), 0o644))

	_, err := NewFileStore(path).Load(context.Background(), Customers)
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
}

func TestFileStoreRejectsNonArrayPayload(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	err := s.SaveBatch(context.Background(), map[Collection]json.RawMessage{Customers: json.RawMessage(`{}`)})
	assert.Error(t, err)
}

func TestExportWritesVersionedDocument(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	ctx := context.Background()
	require.NoError(t, s.SaveBatch(ctx, map[Collection]json.RawMessage{Customers: json.RawMessage(`[{"id":"c1"}]`)}))

	data, err := Export(ctx, s)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, `1`, string(doc["schemaVersion"]))
	assert.JSONEq(t, `[{"id":"c1"}]`, string(doc["clientes"]))
	assert.JSONEq(t, `[]`, string(doc["vendas"]))
}
