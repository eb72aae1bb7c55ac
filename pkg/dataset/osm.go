package dataset

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/geo"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/schollz/progressbar/v3"
)

const UNNAMED_CAMPSITE = "Unnamed campsite"

// CampsiteTourismTags. tourism=* values imported as campsites.
var CampsiteTourismTags = map[string]bool{
	"camp_site":    true,
	"camp_pitch":   true,
	"caravan_site": true,
}

// Scanner is satisfied by both the osmpbf and the osmxml scanners.
type Scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// ScannerFactory opens a fresh scanner over the same osm extract. ParseOSM reads the extract twice.
type ScannerFactory func(ctx context.Context) (Scanner, io.Closer, error)

// OSMFile returns a ScannerFactory for a .pbf or .osm (xml) extract, compressed or not.
func OSMFile(path string) ScannerFactory {
	isXML := filepath.Ext(trimCompressionExt(path)) == ".osm"
	return func(ctx context.Context) (Scanner, io.Closer, error) {
		rc, err := OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		if isXML {
			return osmxml.New(ctx, rc), rc, nil
		}
		return osmpbf.New(ctx, rc, runtime.GOMAXPROCS(0)), rc, nil
	}
}

// osmCampsite. campsite node, or campsite way whose centroid is resolved in the second pass.
type osmCampsite struct {
	tags    osm.Tags
	lat     float64
	lon     float64
	nodeIDs []osm.NodeID
}

type nodeCoord struct {
	lat, lon float64
	seen     bool
}

// ParseOSM extracts campsite nodes and ways from an osm extract, in file order.
// ways are placed at the centroid of their nodes. progress goes to progress, nil for none.
func ParseOSM(ctx context.Context, open ScannerFactory, progress io.Writer) ([]datastructure.Campsite, error) {
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(3,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/3]Scanning campsite tags..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	found := []*osmCampsite{}
	wayNodes := make(map[osm.NodeID]nodeCoord)

	err := scanOSM(ctx, open, func(o osm.Object) {
		switch v := o.(type) {
		case *osm.Node:
			if CampsiteTourismTags[v.Tags.Find("tourism")] {
				found = append(found, &osmCampsite{tags: v.Tags, lat: v.Lat, lon: v.Lon})
			}
		case *osm.Way:
			if !CampsiteTourismTags[v.Tags.Find("tourism")] {
				return
			}
			ids := make([]osm.NodeID, 0, len(v.Nodes))
			for _, n := range v.Nodes {
				ids = append(ids, n.ID)
				wayNodes[n.ID] = nodeCoord{}
			}
			found = append(found, &osmCampsite{tags: v.Tags, nodeIDs: ids})
		}
	})
	if err != nil {
		return nil, err
	}
	bar.Add(1)

	if len(wayNodes) > 0 {
		bar.Describe("[cyan][2/3]Resolving campsite way nodes...")
		err = scanOSM(ctx, open, func(o osm.Object) {
			n, ok := o.(*osm.Node)
			if !ok {
				return
			}
			if _, needed := wayNodes[n.ID]; needed {
				wayNodes[n.ID] = nodeCoord{lat: n.Lat, lon: n.Lon, seen: true}
			}
		})
		if err != nil {
			return nil, err
		}
	}
	bar.Add(1)

	bar.Describe("[cyan][3/3]Building campsites...")
	campsites := make([]datastructure.Campsite, 0, len(found))
	for _, c := range found {
		lat, lon := c.lat, c.lon
		if c.nodeIDs != nil {
			lats := make([]float64, 0, len(c.nodeIDs))
			lons := make([]float64, 0, len(c.nodeIDs))
			for _, id := range c.nodeIDs {
				coord := wayNodes[id]
				if !coord.seen {
					// node outside the extract
					continue
				}
				lats = append(lats, coord.lat)
				lons = append(lons, coord.lon)
			}
			if len(lats) == 0 {
				continue
			}
			lat, lon = geo.Centroid(lats, lons)
		}
		campsites = append(campsites, newOSMCampsite(len(campsites)+1, c.tags, lat, lon))
	}
	bar.Add(1)
	fmt.Fprintln(progress)

	return campsites, nil
}

func scanOSM(ctx context.Context, open ScannerFactory, fn func(osm.Object)) error {
	scanner, closer, err := open(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer scanner.Close()

	for scanner.Scan() {
		fn(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan osm: %w", err)
	}
	return nil
}

func newOSMCampsite(id int, tags osm.Tags, lat, lon float64) datastructure.Campsite {
	locationName := firstTag(tags, "name", "operator")
	if locationName == "" {
		locationName = UNNAMED_CAMPSITE
	}
	siteName := firstTag(tags, "ref", "name")
	if siteName == "" {
		siteName = locationName
	}
	return datastructure.NewCampsite(id, locationName, siteName, tags.Find("tourism"), lat, lon)
}

func firstTag(tags osm.Tags, keys ...string) string {
	for _, k := range keys {
		if v := tags.Find(k); v != "" {
			return v
		}
	}
	return ""
}

// IsOSMFile reports whether path looks like an osm extract rather than a json dataset.
func IsOSMFile(path string) bool {
	ext := filepath.Ext(trimCompressionExt(path))
	return ext == ".pbf" || ext == ".osm"
}

func trimCompressionExt(path string) string {
	p := strings.ToLower(path)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		p = strings.TrimSuffix(p, ext)
	}
	return p
}
