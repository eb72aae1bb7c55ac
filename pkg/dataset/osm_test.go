package dataset

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/osm/osmxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campsitesOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="44.0" lon="-74.0">
  <tag k="tourism" v="camp_site"/>
  <tag k="name" v="Fish Creek Pond"/>
 </node>
 <node id="2" lat="44.1" lon="-74.1"/>
 <node id="3" lat="44.3" lon="-74.3"/>
 <node id="4" lat="45.0" lon="-73.0">
  <tag k="amenity" v="cafe"/>
  <tag k="name" v="Not a campsite"/>
 </node>
 <node id="5" lat="43.5" lon="-74.5">
  <tag k="tourism" v="camp_pitch"/>
  <tag k="ref" v="12"/>
 </node>
 <way id="10">
  <nd ref="2"/>
  <nd ref="3"/>
  <nd ref="99"/>
  <tag k="tourism" v="caravan_site"/>
  <tag k="operator" v="NYS DEC"/>
 </way>
 <way id="11">
  <nd ref="98"/>
  <tag k="tourism" v="camp_site"/>
 </way>
 <way id="12">
  <nd ref="2"/>
  <nd ref="4"/>
  <tag k="highway" v="track"/>
 </way>
</osm>`

func stringScanner(data string) ScannerFactory {
	return func(ctx context.Context) (Scanner, io.Closer, error) {
		return osmxml.New(ctx, strings.NewReader(data)), io.NopCloser(nil), nil
	}
}

func TestParseOSM(t *testing.T) {
	campsites, err := ParseOSM(context.Background(), stringScanner(campsitesOSM), nil)
	require.NoError(t, err)
	// way 11 has no node inside the extract and is dropped
	require.Len(t, campsites, 3)

	fishCreek := campsites[0]
	assert.Equal(t, 1, fishCreek.ID)
	assert.Equal(t, "Fish Creek Pond", fishCreek.LocationName)
	assert.Equal(t, "Fish Creek Pond", fishCreek.SiteName)
	assert.Equal(t, "camp_site", fishCreek.Type)
	assert.InDelta(t, 44.0, fishCreek.Lat(), 1e-9)
	assert.InDelta(t, -74.0, fishCreek.Lon(), 1e-9)

	pitch := campsites[1]
	assert.Equal(t, 2, pitch.ID)
	assert.Equal(t, UNNAMED_CAMPSITE, pitch.LocationName)
	assert.Equal(t, "12", pitch.SiteName)
	assert.Equal(t, "camp_pitch", pitch.Type)

	caravan := campsites[2]
	assert.Equal(t, 3, caravan.ID)
	assert.Equal(t, "NYS DEC", caravan.LocationName)
	assert.Equal(t, "caravan_site", caravan.Type)
	// centroid of the two resolved nodes, node 99 is missing
	assert.InDelta(t, 44.2, caravan.Lat(), 1e-9)
	assert.InDelta(t, -74.2, caravan.Lon(), 1e-9)

	t.Run("loaded campsites validate", func(t *testing.T) {
		assert.NoError(t, NewLoader().Validate(campsites))
	})
}

func TestParseOSMNoCampsites(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6"><node id="1" lat="1" lon="1"/></osm>`
	campsites, err := ParseOSM(context.Background(), stringScanner(data), io.Discard)
	require.NoError(t, err)
	assert.Empty(t, campsites)
}

func TestOSMFile(t *testing.T) {
	path := writeFile(t, "adk.osm.gz", func(f *os.File) {
		w := gzip.NewWriter(f)
		_, err := w.Write([]byte(campsitesOSM))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	})
	assert.True(t, IsOSMFile(path))
	assert.False(t, IsOSMFile("nys.json.zst"))
	assert.True(t, IsOSMFile("new-york-latest.osm.pbf"))

	campsites, err := ParseOSM(context.Background(), OSMFile(path), nil)
	require.NoError(t, err)
	assert.Len(t, campsites, 3)
}
