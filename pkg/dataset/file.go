package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenFile opens path, decompressing .gz and .zst/.zstd on the fly.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip dataset %s: %w", path, err)
		}
		return &readCloser{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd dataset %s: %w", path, err)
		}
		closeDec := func() error {
			dec.Close()
			return nil
		}
		return &readCloser{Reader: dec, closers: []func() error{closeDec, f.Close}}, nil
	default:
		return f, nil
	}
}

// TrimExt strips compression then format extensions: "nys.json.zst" -> "nys".
func TrimExt(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".gz", ".zst", ".zstd", ".json", ".pbf", ".osm"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
