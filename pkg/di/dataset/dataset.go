package dataset_di

import (
	"context"

	"github.com/lintang-b-s/campsite-explorer/pkg/dataset"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/kvdb"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// New loads the campsite dataset from the store. an empty store is filled from DATASET_PATH first.
func New(ctx context.Context, log *zap.Logger, db *kvdb.KVDB) (*datastructure.Dataset, error) {
	viper.SetDefault("DATASET_PATH", "")
	viper.SetDefault("DATASET_NAME", "")

	count, err := db.CountCampsites()
	if err != nil {
		return nil, err
	}

	path := viper.GetString("DATASET_PATH")
	if count == 0 && path != "" {
		if err := importDataset(ctx, log, db, path); err != nil {
			return nil, err
		}
	}

	campsites, err := db.LoadCampsites()
	if err != nil {
		return nil, err
	}

	name := viper.GetString("DATASET_NAME")
	if meta, err := db.GetMeta(); err == nil && name == "" {
		name = meta.Name
	}
	log.Info("campsite dataset loaded", zap.String("dataset", name), zap.Int("campsites", len(campsites)))
	if len(campsites) == 0 {
		log.Warn("campsite dataset is empty, set DATASET_PATH or run the importer")
	}

	return datastructure.NewDataset(name, campsites), nil
}

func importDataset(ctx context.Context, log *zap.Logger, db *kvdb.KVDB, path string) error {
	var (
		campsites []datastructure.Campsite
		err       error
	)
	if dataset.IsOSMFile(path) {
		campsites, err = dataset.ParseOSM(ctx, dataset.OSMFile(path), nil)
		if err == nil {
			err = dataset.NewLoader().Validate(campsites)
		}
	} else {
		campsites, err = dataset.NewLoader().LoadFile(path)
	}
	if err != nil {
		return err
	}

	name := viper.GetString("DATASET_NAME")
	if name == "" {
		name = dataset.TrimExt(path)
	}
	_, err = dataset.Import(log, db, name, path, campsites, dataset.ImportOptions{})
	return err
}
