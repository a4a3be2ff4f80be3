package server

import (
	"context"
	"log/slog"

	"innkeep/internal/blobstore"
)

// Cleaner performs best-effort removal of superseded blobs after the owning
// transaction has committed. A failure here leaves at most one stale blob:
// it is logged for manual review and never retried, queued, or surfaced to
// the caller, whose operation has already succeeded.
type Cleaner struct {
	blobs  blobstore.BlobStore
	logger *slog.Logger
}

// NewCleaner constructs a Cleaner.
func NewCleaner(blobs blobstore.BlobStore, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{blobs: blobs, logger: logger}
}

// ScheduleCleanup attempts a single synchronous delete of one blob key.
func (c *Cleaner) ScheduleCleanup(ctx context.Context, key string) {
	if c == nil || c.blobs == nil || key == "" {
		return
	}
	if err := c.blobs.Delete(ctx, key); err != nil {
		c.logger.Warn("failed to delete superseded blob", "key", key, "error", err)
		return
	}
	c.logger.Info("deleted superseded blob", "key", key)
}
