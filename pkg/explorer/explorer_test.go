package explorer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fitCall struct {
	bounds  datastructure.Bounds
	maxZoom int
}

type fakeMap struct {
	mu     sync.Mutex
	ready  bool
	zoom   float64
	bounds datastructure.Bounds
	fits   []fitCall
	fitErr error
}

func (m *fakeMap) View() (float64, datastructure.Bounds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zoom, m.bounds, m.ready
}

func (m *fakeMap) FitBounds(bounds datastructure.Bounds, maxZoom int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fitErr != nil {
		return m.fitErr
	}
	m.fits = append(m.fits, fitCall{bounds: bounds, maxZoom: maxZoom})
	return nil
}

func (m *fakeMap) move(zoom float64, bounds datastructure.Bounds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = true
	m.zoom = zoom
	m.bounds = bounds
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var (
	adirondacks = datastructure.NewBounds(45.0, 43.0, -73.5, -75.5)
	westernHalf = datastructure.NewBounds(45.0, 43.0, -74.5, -75.5)
)

// two tight groups of five (~80km apart) plus one far campsite.
func testDataset() *datastructure.Dataset {
	campsites := []datastructure.Campsite{}
	id := 1
	for _, center := range [][2]float64{{44.0, -75.0}, {44.0, -74.0}} {
		for i := 0; i < 5; i++ {
			campsites = append(campsites, datastructure.NewCampsite(id, "Lake", fmt.Sprintf("site %d", id), "tent",
				center[0]+float64(i)*0.0002, center[1]))
			id++
		}
	}
	campsites = append(campsites, datastructure.NewCampsite(id, "Far", "far", "lean-to", 40.0, -80.0))
	return datastructure.NewDataset("test", campsites)
}

func newTestExplorer(t *testing.T) (*Explorer, *fakeMap, *fakeClock) {
	t.Helper()
	view := &fakeMap{}
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	opts := DefaultOptions()
	opts.Clock = clock.Now
	e := New(zap.NewNop(), view, opts)
	return e, view, clock
}

func TestExplorerInitialState(t *testing.T) {
	e, _, _ := newTestExplorer(t)
	e.SetDataset(testDataset())

	snap := e.Snapshot()
	assert.Equal(t, DEFAULT_INITIAL_ZOOM, snap.Zoom)
	assert.Nil(t, snap.Bounds)
	// no bounds yet: nothing filtered
	assert.Len(t, snap.Clusters, 2)
	assert.Len(t, snap.Singles, 1)
	assert.True(t, snap.Recomputed)

	t.Run("map not ready keeps state", func(t *testing.T) {
		assert.True(t, e.OnViewChange())
		assert.Equal(t, DEFAULT_INITIAL_ZOOM, e.Zoom())
	})
}

func TestExplorerViewUpdatesAreThrottled(t *testing.T) {
	e, view, clock := newTestExplorer(t)
	e.SetDataset(testDataset())

	view.move(5, adirondacks)
	assert.True(t, e.OnViewChange())
	assert.Equal(t, 5, e.Zoom())

	clock.Advance(40 * time.Millisecond)
	view.move(7, adirondacks)
	assert.False(t, e.OnViewChange())
	assert.Equal(t, 5, e.Zoom(), "dropped inside the window")

	clock.Advance(60 * time.Millisecond)
	view.move(8, adirondacks)
	assert.True(t, e.OnViewChange())
	assert.Equal(t, 8, e.Zoom(), "latest snapshot at call time is used")

	t.Run("fractional zoom is rounded", func(t *testing.T) {
		clock.Advance(time.Second)
		view.move(11.6, adirondacks)
		e.OnViewChange()
		assert.Equal(t, 12, e.Zoom())
	})
}

func TestExplorerRecomputesOnlyOnZoomChange(t *testing.T) {
	e, view, clock := newTestExplorer(t)
	e.SetDataset(testDataset())

	view.move(9, adirondacks)
	e.OnViewChange()
	snap := e.Snapshot()
	assert.True(t, snap.Recomputed)
	assert.Len(t, snap.Clusters, 2)
	assert.Empty(t, snap.Singles, "far campsite is outside the view")

	t.Run("bounds change only refilters", func(t *testing.T) {
		clock.Advance(time.Second)
		view.move(9, westernHalf)
		e.OnViewChange()
		snap := e.Snapshot()
		assert.False(t, snap.Recomputed)
		require.Len(t, snap.Clusters, 1)
		assert.InDelta(t, -75.0, snap.Clusters[0].Lng, 1e-9)
		assert.Equal(t, 1, e.CachedResults())
	})

	t.Run("zoom back hits the cache", func(t *testing.T) {
		clock.Advance(time.Second)
		view.move(16, adirondacks)
		e.OnViewChange()
		snap := e.Snapshot()
		assert.True(t, snap.Recomputed)
		assert.Empty(t, snap.Clusters, "groups of five stay single at zoom 16")
		assert.Len(t, snap.Singles, 10)

		clock.Advance(time.Second)
		view.move(9, adirondacks)
		e.OnViewChange()
		snap = e.Snapshot()
		assert.False(t, snap.Recomputed)
		assert.Len(t, snap.Clusters, 2)
		assert.Equal(t, 2, e.CachedResults())
	})
}

func TestExplorerDatasetChangeClearsCache(t *testing.T) {
	e, view, _ := newTestExplorer(t)
	first := testDataset()
	e.SetDataset(first)
	view.move(9, adirondacks)
	e.OnViewChange()
	e.Snapshot()
	assert.Equal(t, 1, e.CachedResults())

	e.SetDataset(first)
	assert.Equal(t, 1, e.CachedResults(), "same dataset pointer keeps the cache")

	second := testDataset()
	e.SetDataset(second)
	assert.Equal(t, 0, e.CachedResults())
	assert.True(t, e.Snapshot().Recomputed)
}

func TestExplorerCacheKeyIgnoresCampsiteIdentity(t *testing.T) {
	e, view, clock := newTestExplorer(t)
	ds := testDataset()
	e.SetDataset(ds)

	view.move(9, adirondacks)
	e.OnViewChange()
	before := e.Snapshot()
	require.Len(t, before.Clusters, 2)

	// same length, different campsite: spread the first group apart in place.
	ds.Campsites[1] = datastructure.NewCampsite(99, "Moved", "moved", "tent", 44.5, -75.4)

	clock.Advance(time.Second)
	view.move(12, adirondacks)
	e.OnViewChange()
	e.Snapshot()

	clock.Advance(time.Second)
	view.move(9, adirondacks)
	e.OnViewChange()
	after := e.Snapshot()

	// (zoom, count) matches, the stale partition is served
	assert.False(t, after.Recomputed)
	assert.Equal(t, before.Clusters, after.Clusters)

	e.Refresh()
	fresh := e.Snapshot()
	assert.True(t, fresh.Recomputed)
	assert.NotEqual(t, before.Clusters, fresh.Clusters)
}

func TestExplorerRefresh(t *testing.T) {
	e, view, _ := newTestExplorer(t)
	e.SetDataset(testDataset())

	view.move(9, adirondacks)
	e.OnViewChange()
	e.Snapshot()

	// inside the throttle window: only Refresh gets through
	view.move(14, westernHalf)
	assert.False(t, e.OnViewChange())
	e.Refresh()
	assert.Equal(t, 14, e.Zoom())
	assert.Equal(t, 0, e.CachedResults())

	snap := e.Snapshot()
	assert.True(t, snap.Recomputed)
	assert.Equal(t, &westernHalf, snap.Bounds)
	assert.Len(t, snap.Clusters, 1, "five campsites cluster at zoom 14")
}

func TestExplorerEmptyDataset(t *testing.T) {
	e, view, _ := newTestExplorer(t)
	view.move(9, adirondacks)
	e.OnViewChange()

	snap := e.Snapshot()
	assert.Empty(t, snap.Clusters)
	assert.Empty(t, snap.Singles)
	assert.False(t, snap.Recomputed)

	e.SetDataset(datastructure.NewDataset("empty", nil))
	snap = e.Snapshot()
	assert.Empty(t, snap.Clusters)
	assert.Equal(t, 0, e.CachedResults())
}

func TestExplorerHandleClusterClick(t *testing.T) {
	e, view, _ := newTestExplorer(t)
	c := datastructure.Cluster{
		Lat:    44.0,
		Lng:    -75.0,
		Count:  5,
		Bounds: datastructure.NewBounds(44.0008, 44.0, -75.0, -75.0),
	}

	require.NoError(t, e.HandleClusterClick(c))
	require.Len(t, view.fits, 1)
	fit := view.fits[0]
	assert.Equal(t, MAX_FIT_ZOOM, fit.maxZoom)
	assert.InDelta(t, 44.0108, fit.bounds.North, 1e-9)
	assert.InDelta(t, 43.99, fit.bounds.South, 1e-9)
	assert.InDelta(t, -74.99, fit.bounds.East, 1e-9)
	assert.InDelta(t, -75.01, fit.bounds.West, 1e-9)

	t.Run("map failure is returned", func(t *testing.T) {
		view.fitErr = ErrMapNotReady
		err := e.HandleClusterClick(c)
		assert.ErrorIs(t, err, ErrMapNotReady)
	})
}
