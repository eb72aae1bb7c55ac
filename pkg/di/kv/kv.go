package kv_di

import (
	"context"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/kvdb"

	"github.com/spf13/viper"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

func New(ctx context.Context, log *zap.Logger) (*kvdb.KVDB, func(), error) {
	viper.SetDefault("DB_PATH", "campsites.db")

	path := viper.GetString("DB_PATH")
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, nil, err
	}

	bboltKV, err := kvdb.NewKVDB(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info("campsite store opened", zap.String("path", path))

	cleanup := func() {
		_ = bboltKV.Close()
	}

	return bboltKV, cleanup, nil
}
