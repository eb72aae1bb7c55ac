package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/kvdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

func openStore(t *testing.T) *kvdb.KVDB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "import_test.db"), 0600, nil)
	require.NoError(t, err)
	kv, err := kvdb.NewKVDB(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = kv.Close()
	})
	return kv
}

func TestImport(t *testing.T) {
	kv := openStore(t)

	campsites := []datastructure.Campsite{}
	for id := 1; id <= 1234; id++ {
		campsites = append(campsites, datastructure.NewCampsite(id, "Loc", fmt.Sprintf("site %d", id), "tent",
			43+float64(id%100)/100, -75+float64(id%50)/50))
	}

	meta, err := Import(zap.NewNop(), kv, "nys", "nys.json", campsites, ImportOptions{Workers: 3, BatchSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 1234, meta.Count)
	assert.Equal(t, "nys", meta.Name)

	loaded, err := kv.LoadCampsites()
	require.NoError(t, err)
	assert.Equal(t, campsites, loaded, "dataset order survives the concurrent batches")

	stored, err := kv.GetMeta()
	require.NoError(t, err)
	assert.Equal(t, meta.Bounds, stored.Bounds)

	t.Run("append renumbers after the stored campsites", func(t *testing.T) {
		extra := []datastructure.Campsite{
			datastructure.NewCampsite(1, "North", "n", "tent", 46.5, -74),
			datastructure.NewCampsite(2, "West", "w", "tent", 44, -77),
		}
		meta, err := Import(zap.NewNop(), kv, "nys+", "extra.json", extra, ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1236, meta.Count)
		assert.Equal(t, 46.5, meta.Bounds.North)
		assert.Equal(t, -77.0, meta.Bounds.West)
		assert.Equal(t, 1, extra[0].ID, "caller's campsites are not modified")

		got, err := kv.GetCampsite(1236)
		require.NoError(t, err)
		assert.Equal(t, "West", got.LocationName)
	})

	t.Run("reset replaces the dataset", func(t *testing.T) {
		_, err := Import(zap.NewNop(), kv, "small", "small.json", campsites[:10], ImportOptions{Reset: true})
		require.NoError(t, err)
		count, err := kv.CountCampsites()
		require.NoError(t, err)
		assert.Equal(t, 10, count)
	})
}

type failingStore struct {
	*kvdb.KVDB
}

var errDiskFull = errors.New("disk full")

func (failingStore) SaveCampsites([]datastructure.Campsite) error {
	return errDiskFull
}

func TestImportSaveError(t *testing.T) {
	store := failingStore{openStore(t)}
	campsites := []datastructure.Campsite{datastructure.NewCampsite(1, "a", "a", "tent", 44, -74)}

	_, err := Import(zap.NewNop(), store, "x", "x.json", campsites, ImportOptions{})
	assert.ErrorIs(t, err, errDiskFull)

	_, err = store.GetMeta()
	assert.ErrorIs(t, err, kvdb.ErrorsKeyNotExists, "metadata is not written after a failed import")
}
