package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DocumentExporter renders a consistent copy of every collection.
type DocumentExporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// ObjectUploader stores a blob under a key.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// SnapshotService archives the whole document off-site.
type SnapshotService struct {
	exporter DocumentExporter
	uploader ObjectUploader
	now      func() time.Time
}

func NewSnapshotService(exporter DocumentExporter, uploader ObjectUploader, now func() time.Time) *SnapshotService {
	if now == nil {
		now = time.Now
	}
	return &SnapshotService{exporter: exporter, uploader: uploader, now: now}
}

// Archive exports every collection as one versioned JSON document and uploads
// it. A corrupt collection aborts the snapshot so the last good archive is
// not shadowed by a damaged one.
func (s *SnapshotService) Archive(ctx context.Context) (string, error) {
	doc, err := s.exporter.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export document: %w", err)
	}
	ts := s.now().UTC()
	key := fmt.Sprintf("snapshots/%s/db-%s.json", ts.Format("2006/01/02"), ts.Format("20060102T150405Z"))
	url, err := s.uploader.Upload(ctx, key, doc, "application/json")
	if err != nil {
		return "", err
	}
	log.Info().Str("key", key).Msg("document snapshot archived")
	return url, nil
}
