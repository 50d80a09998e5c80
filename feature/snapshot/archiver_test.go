package snapshot_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"netbox-importer/core/inventory"
	"netbox-importer/core/storage/mocks"
	"netbox-importer/feature/snapshot"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureBucket(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(true, nil)

		archiver := snapshot.NewArchiver(client, "snapshots", zap.NewNop())
		assert.NoError(t, archiver.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "snapshots", mock.Anything).Return(nil)

		archiver := snapshot.NewArchiver(client, "snapshots", zap.NewNop())
		assert.NoError(t, archiver.EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})
}

func TestArchiveAndRetrieve(t *testing.T) {
	inv := inventory.NewContext("netbox", nil, nil)
	require.NoError(t, inv.Add(&inventory.Site{Name: "nyc", RemoteID: inventory.NewRemoteID(3)}))
	require.NoError(t, inv.Add(&inventory.Device{Name: "sw1", RemoteID: inventory.NewRemoteID(7)}))
	snap := inv.Export()

	var stored bytes.Buffer
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snapshots", "run-1.json",
		mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			_, err := stored.ReadFrom(reader)
			require.NoError(t, err)
		}).
		Return(minio.UploadInfo{}, nil)

	archiver := snapshot.NewArchiver(client, "snapshots", zap.NewNop())
	require.NoError(t, archiver.Archive(context.Background(), "run-1", snap))

	client.On("GetObject", mock.Anything, "snapshots", "run-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(stored.Bytes())), nil)

	loaded, err := archiver.Retrieve(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, loaded.Sites, 1)
	assert.Equal(t, "nyc", loaded.Sites[0].Name)
	require.Len(t, loaded.Devices, 1)
	assert.Equal(t, int64(7), loaded.Devices[0].RemoteID.Int64())
	client.AssertExpectations(t)
}

func listChannel(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestList_NewestFirst(t *testing.T) {
	now := time.Now()
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "snapshots", mock.Anything).
		Return(listChannel(
			minio.ObjectInfo{Key: "run-old.json", LastModified: now.Add(-time.Hour)},
			minio.ObjectInfo{Key: "run-new.json", LastModified: now},
			minio.ObjectInfo{Key: "notes.txt", LastModified: now},
		))

	archiver := snapshot.NewArchiver(client, "snapshots", zap.NewNop())
	ids, err := archiver.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"run-new", "run-old"}, ids)
}

func TestPrune_KeepsNewest(t *testing.T) {
	now := time.Now()
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "snapshots", mock.Anything).
		Return(listChannel(
			minio.ObjectInfo{Key: "run-3.json", LastModified: now},
			minio.ObjectInfo{Key: "run-2.json", LastModified: now.Add(-time.Hour)},
			minio.ObjectInfo{Key: "run-1.json", LastModified: now.Add(-2 * time.Hour)},
		))
	client.On("RemoveObject", mock.Anything, "snapshots", "run-1.json", mock.Anything).Return(nil)

	archiver := snapshot.NewArchiver(client, "snapshots", zap.NewNop())
	require.NoError(t, archiver.Prune(context.Background(), 2))

	client.AssertExpectations(t)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, "snapshots", "run-3.json", mock.Anything)
}
