package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// FileStore keeps every collection in one JSON document on disk, compatible
// with the legacy db.json layout. Writes replace the file through a
// synced temporary file and a rename, so readers see either the old or the
// new document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the document at path. The file is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, c Collection) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[string(c)]
	if !ok {
		return nil, nil
	}
	return checkArray(c, raw)
}

// SaveBatch implements Store. It refuses to overwrite a document it cannot
// parse so that a damaged file stays available for recovery.
func (s *FileStore) SaveBatch(ctx context.Context, batch map[Collection]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateBatch(batch); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage, len(Collections)+1)
	}
	for c, raw := range batch {
		doc[string(c)] = raw
	}
	doc[schemaKey] = json.RawMessage(strconv.Itoa(SchemaVersion))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

// readDocument returns nil when the file does not exist yet.
func (s *FileStore) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptError{Reason: fmt.Sprintf("%s: %v", s.path, err)}
	}
	if doc == nil {
		return nil, &CorruptError{Reason: fmt.Sprintf("%s: document is null", s.path)}
	}
	// A document without schemaVersion predates versioning and is read as-is.
	if rawVersion, ok := doc[schemaKey]; ok {
		var version int
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			return nil, &CorruptError{Reason: fmt.Sprintf("%s: invalid schemaVersion", s.path)}
		}
		if version > SchemaVersion {
			return nil, fmt.Errorf("%w: document version %d, supported %d", ErrUnsupportedSchema, version, SchemaVersion)
		}
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
