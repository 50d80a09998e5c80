package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"netbox-importer/core/inventory"
	"netbox-importer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const objectSuffix = ".json"

// Archiver stores run snapshots in object storage.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates a new snapshot archiver.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.logger.Info("Created snapshot bucket", zap.String("bucket", a.bucket))
	return nil
}

// Archive uploads the snapshot under the run id.
func (a *Archiver) Archive(ctx context.Context, runID string, snap *inventory.Snapshot) error {
	var buf bytes.Buffer
	if err := inventory.WriteSnapshot(&buf, snap); err != nil {
		return err
	}

	objectName := runID + objectSuffix
	_, err := a.client.PutObject(ctx, a.bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive snapshot %s: %w", objectName, err)
	}
	a.logger.Info("Archived snapshot",
		zap.String("bucket", a.bucket),
		zap.String("object", objectName))
	return nil
}

// Retrieve loads the snapshot archived under the run id.
func (a *Archiver) Retrieve(ctx context.Context, runID string) (*inventory.Snapshot, error) {
	objectName := runID + objectSuffix
	obj, err := a.client.GetObject(ctx, a.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot %s: %w", objectName, err)
	}
	defer obj.Close()

	return inventory.ReadSnapshot(obj)
}

// List returns the archived run ids, newest first.
func (a *Archiver) List(ctx context.Context) ([]string, error) {
	type entry struct {
		id       string
		modified int64
	}
	var entries []entry

	for info := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", info.Err)
		}
		if !strings.HasSuffix(info.Key, objectSuffix) {
			continue
		}
		entries = append(entries, entry{
			id:       strings.TrimSuffix(info.Key, objectSuffix),
			modified: info.LastModified.UnixNano(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].modified > entries[j].modified })
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	return ids, nil
}

// Prune removes all but the newest keep snapshots.
func (a *Archiver) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	ids, err := a.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids[min(keep, len(ids)):] {
		objectName := id + objectSuffix
		if err := a.client.RemoveObject(ctx, a.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to prune snapshot %s: %w", objectName, err)
		}
		a.logger.Debug("Pruned snapshot", zap.String("object", objectName))
	}
	return nil
}
