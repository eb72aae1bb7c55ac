package dataset

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/concurrent"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/geo"

	"go.uber.org/zap"
)

const (
	DEFAULT_IMPORT_WORKERS = 4
	DEFAULT_BATCH_SIZE     = 500
)

type CampsiteStore interface {
	SaveCampsites(campsites []datastructure.Campsite) error
	LoadCampsites() ([]datastructure.Campsite, error)
	CountCampsites() (int, error)
	PutMeta(meta datastructure.DatasetMeta) error
	Reset() error
}

type ImportOptions struct {
	Workers   int
	BatchSize int
	Reset     bool // drop the stored dataset first. otherwise campsites are appended after the stored ones
}

// Import writes campsites to the store in batches from a worker pool, then stores the dataset metadata.
// appended campsites are renumbered to follow the stored ones.
func Import(log *zap.Logger, store CampsiteStore, name, source string, campsites []datastructure.Campsite,
	opts ImportOptions) (datastructure.DatasetMeta, error) {
	if opts.Workers <= 0 {
		opts.Workers = DEFAULT_IMPORT_WORKERS
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DEFAULT_BATCH_SIZE
	}

	if opts.Reset {
		if err := store.Reset(); err != nil {
			return datastructure.DatasetMeta{}, fmt.Errorf("reset campsite store: %w", err)
		}
	} else {
		stored, err := store.CountCampsites()
		if err != nil {
			return datastructure.DatasetMeta{}, fmt.Errorf("count stored campsites: %w", err)
		}
		if stored > 0 {
			renumbered := make([]datastructure.Campsite, len(campsites))
			copy(renumbered, campsites)
			for i := range renumbered {
				renumbered[i].ID = stored + i + 1
			}
			campsites = renumbered
		}
	}

	start := time.Now()
	worker := concurrent.NewBackgroundWorker[[]datastructure.Campsite](opts.Workers, opts.Workers*2, store.SaveCampsites)
	worker.Start()
	batches := 0
	for from := 0; from < len(campsites); from += opts.BatchSize {
		to := min(from+opts.BatchSize, len(campsites))
		worker.TriggerProcessing(campsites[from:to])
		batches++
	}
	if err := worker.Close(); err != nil {
		return datastructure.DatasetMeta{}, fmt.Errorf("save campsites: %w", err)
	}

	all := campsites
	if !opts.Reset {
		var err error
		if all, err = store.LoadCampsites(); err != nil {
			return datastructure.DatasetMeta{}, fmt.Errorf("load stored campsites: %w", err)
		}
	}

	meta := datastructure.DatasetMeta{
		Name:       name,
		Source:     source,
		Count:      len(all),
		Bounds:     geo.CampsitesBoundingBox(all),
		ImportedAt: time.Now().UTC(),
	}
	if err := store.PutMeta(meta); err != nil {
		return datastructure.DatasetMeta{}, err
	}

	log.Info("campsites imported",
		zap.String("dataset", name),
		zap.String("source", source),
		zap.Int("campsites", len(campsites)),
		zap.Int("batches", batches),
		zap.Duration("took", time.Since(start)))
	return meta, nil
}
