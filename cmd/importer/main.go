package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/dataset"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/kvdb"
	logConfig "github.com/lintang-b-s/campsite-explorer/pkg/logger/config"
	myZap "github.com/lintang-b-s/campsite-explorer/pkg/logger/zap"

	"github.com/k0kubun/go-ansi"
	"github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "campsite-importer",
		Usage: "load a campsite dataset into the campsite store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "campsites.db", EnvVars: []string{"DB_PATH"}, Usage: "bbolt campsite store"},
			&cli.IntFlag{Name: "log-level", Value: logConfig.INFO_LEVEL, EnvVars: []string{"LOG_LEVEL"}, Usage: "-1 debug, 0 info, 1 warn, 2 error"},
		},
		Commands: []*cli.Command{
			{
				Name:      "json",
				Usage:     "import a JSON campsite array (.json, .json.gz, .json.zst)",
				ArgsUsage: "<file>",
				Flags:     importFlags(),
				Action:    importAction(loadJSON),
			},
			{
				Name:      "osm",
				Usage:     "import tourism=camp_site|camp_pitch|caravan_site from an OpenStreetMap extract (.osm.pbf, .osm)",
				ArgsUsage: "<file>",
				Flags:     importFlags(),
				Action:    importAction(loadOSM),
			},
			{
				Name:   "info",
				Usage:  "print the stored dataset metadata",
				Action: info,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func importFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "dataset name, defaults to the file name"},
		&cli.IntFlag{Name: "workers", Value: dataset.DEFAULT_IMPORT_WORKERS},
		&cli.IntFlag{Name: "batch", Value: dataset.DEFAULT_BATCH_SIZE, Usage: "campsites per bbolt batch"},
		&cli.BoolFlag{Name: "append", Usage: "keep the stored campsites instead of replacing them"},
	}
}

type loadFunc func(c *cli.Context, path string) ([]datastructure.Campsite, error)

func loadJSON(_ *cli.Context, path string) ([]datastructure.Campsite, error) {
	return dataset.NewLoader().LoadFile(path)
}

func loadOSM(c *cli.Context, path string) ([]datastructure.Campsite, error) {
	campsites, err := dataset.ParseOSM(c.Context, dataset.OSMFile(path), ansi.NewAnsiStdout())
	if err != nil {
		return nil, err
	}
	return campsites, dataset.NewLoader().Validate(campsites)
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	cfg := logConfig.Configuration{
		Level:      c.Int("log-level"),
		TimeFormat: time.RFC3339,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return myZap.New(cfg)
}

func openStore(c *cli.Context) (*kvdb.KVDB, error) {
	db, err := bolt.Open(c.String("db"), 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.String("db"), err)
	}
	kv, err := kvdb.NewKVDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func importAction(load loadFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("missing dataset file", 2)
		}

		log, err := newLogger(c)
		if err != nil {
			return err
		}
		defer log.Sync()

		campsites, err := load(c, path)
		if err != nil {
			return err
		}

		kv, err := openStore(c)
		if err != nil {
			return err
		}
		defer kv.Close()

		name := c.String("name")
		if name == "" {
			name = dataset.TrimExt(path)
		}
		meta, err := dataset.Import(log, kv, name, path, campsites, dataset.ImportOptions{
			Workers:   c.Int("workers"),
			BatchSize: c.Int("batch"),
			Reset:     !c.Bool("append"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("imported %d campsites into %s (north %.4f south %.4f east %.4f west %.4f)\n",
			meta.Count, c.String("db"), meta.Bounds.North, meta.Bounds.South, meta.Bounds.East, meta.Bounds.West)
		return nil
	}
}

func info(c *cli.Context) error {
	kv, err := openStore(c)
	if err != nil {
		return err
	}
	defer kv.Close()

	meta, err := kv.GetMeta()
	if errors.Is(err, kvdb.ErrorsKeyNotExists) {
		return cli.Exit("no dataset imported yet", 1)
	}
	if err != nil {
		return err
	}
	count, err := kv.CountCampsites()
	if err != nil {
		return err
	}
	fmt.Printf("dataset:   %s\nsource:    %s\nimported:  %s\ncampsites: %d (stored %d)\n",
		meta.Name, meta.Source, meta.ImportedAt.Format(time.RFC3339), meta.Count, count)
	return nil
}
