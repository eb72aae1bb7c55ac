package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nysSample = `[
  {"location_name": "Fish Creek Pond", "site_name": "Site 12", "type": "tent", "coordinates": {"latitude": 44.3046, "longitude": -74.3573}},
  {"location_name": "Fish Creek Pond", "site_name": "Site 13", "type": "tent", "coordinates": {"latitude": 44.3049, "longitude": -74.3570}},
  {"location_name": "Lake Durant", "site_name": "Lean-to A", "type": "lean-to", "coordinates": {"latitude": 43.8383, "longitude": -74.3917}}
]`

func TestLoadJSON(t *testing.T) {
	l := NewLoader()
	campsites, err := l.LoadJSON(strings.NewReader(nysSample))
	require.NoError(t, err)
	require.Len(t, campsites, 3)

	assert.Equal(t, datastructure.NewCampsite(1, "Fish Creek Pond", "Site 12", "tent", 44.3046, -74.3573), campsites[0])
	assert.Equal(t, 2, campsites[1].ID)
	assert.Equal(t, 3, campsites[2].ID)
	assert.Equal(t, "lean-to", campsites[2].Type)

	t.Run("empty array", func(t *testing.T) {
		campsites, err := l.LoadJSON(strings.NewReader(`[]`))
		require.NoError(t, err)
		assert.Empty(t, campsites)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := l.LoadJSON(strings.NewReader(`[{"location_name": `))
		assert.Error(t, err)
	})
}

func TestLoadJSONValidation(t *testing.T) {
	l := NewLoader()

	cases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "latitude out of range",
			input:   `[{"site_name": "bad", "type": "tent", "coordinates": {"latitude": 95, "longitude": 0}}]`,
			wantMsg: "Latitude",
		},
		{
			name:    "longitude out of range",
			input:   `[{"site_name": "bad", "type": "tent", "coordinates": {"latitude": 0, "longitude": -181}}]`,
			wantMsg: "Longitude",
		},
		{
			name:    "missing type",
			input:   `[{"site_name": "bad", "coordinates": {"latitude": 44, "longitude": -74}}]`,
			wantMsg: "Type",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.LoadJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCampsite)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("nan coordinates", func(t *testing.T) {
		err := l.ValidateCampsite(datastructure.NewCampsite(7, "x", "y", "tent", math.NaN(), -74))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "finite")
	})

	t.Run("every invalid campsite is reported", func(t *testing.T) {
		err := l.Validate([]datastructure.Campsite{
			datastructure.NewCampsite(1, "a", "a", "", 0, 0),
			datastructure.NewCampsite(2, "b", "b", "tent", 0, 0),
			datastructure.NewCampsite(3, "c", "c", "tent", 91, 0),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid campsite 1")
		assert.Contains(t, err.Error(), "invalid campsite 3")
		assert.NotContains(t, err.Error(), "invalid campsite 2")
	})
}

func writeFile(t *testing.T, name string, write func(f *os.File)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	write(f)
	require.NoError(t, f.Close())
	return path
}

func TestLoadFile(t *testing.T) {
	l := NewLoader()

	plain := writeFile(t, "nys.json", func(f *os.File) {
		_, err := f.WriteString(nysSample)
		require.NoError(t, err)
	})
	gz := writeFile(t, "nys.json.gz", func(f *os.File) {
		w := gzip.NewWriter(f)
		_, err := w.Write([]byte(nysSample))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	})
	zst := writeFile(t, "nys.json.zst", func(f *os.File) {
		w, err := zstd.NewWriter(f)
		require.NoError(t, err)
		_, err = w.Write([]byte(nysSample))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	})

	for _, path := range []string{plain, gz, zst} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			campsites, err := l.LoadFile(path)
			require.NoError(t, err)
			assert.Len(t, campsites, 3)
			assert.Equal(t, "Lake Durant", campsites[2].LocationName)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := l.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not gzip", func(t *testing.T) {
		bad := writeFile(t, "bad.json.gz", func(f *os.File) {
			_, err := f.WriteString(nysSample)
			require.NoError(t, err)
		})
		_, err := l.LoadFile(bad)
		assert.Error(t, err)
	})
}

func TestTrimExt(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"data/NYS_campsite_data.json", "NYS_campsite_data"},
		{"/tmp/nys.json.zst", "nys"},
		{"new-york-latest.osm.pbf", "new-york-latest"},
		{"adk.osm.gz", "adk"},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, TrimExt(tt.path))
	}
}
