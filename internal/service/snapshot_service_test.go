package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianorefrig/mariano_api/internal/config"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/store"
)

func TestSnapshotUploadsSignedDocument(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := context.Background()
	s3, err := NewS3Service(ctx, &config.S3Config{
		Region:          "sa-east-1",
		Bucket:          "mariano-backups",
		Endpoint:        srv.URL,
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	st := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, st.SaveBatch(ctx, map[store.Collection]json.RawMessage{
		store.Customers: json.RawMessage(`[{"id":"c1"}]`),
	}))

	url, err := NewSnapshotService(repository.NewDB(st), s3, func() time.Time { return fixedNow }).Archive(ctx)
	require.NoError(t, err)

	assert.Equal(t, "/mariano-backups/snapshots/2024/03/15/db-20240315T143000Z.json", gotPath)
	assert.Equal(t, srv.URL+gotPath, url)
	assert.True(t, strings.HasPrefix(gotAuth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/"), gotAuth)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody, &doc))
	assert.JSONEq(t, `[{"id":"c1"}]`, string(doc["clientes"]))
	assert.JSONEq(t, `1`, string(doc["schemaVersion"]))
}

func TestSnapshotSurfacesUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<Error><Code>AccessDenied</Code></Error>"))
	}))
	defer srv.Close()

	ctx := context.Background()
	s3, err := NewS3Service(ctx, &config.S3Config{Region: "sa-east-1", Bucket: "b", Endpoint: srv.URL, AccessKeyID: "k", SecretAccessKey: "s"})
	require.NoError(t, err)

	st := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	_, err = NewSnapshotService(repository.NewDB(st), s3, nil).Archive(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
