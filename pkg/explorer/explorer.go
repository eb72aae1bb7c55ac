// Package explorer keeps the clustered markers of one map instance in sync with its view.
package explorer

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/cache"
	"github.com/lintang-b-s/campsite-explorer/pkg/cluster"
	"github.com/lintang-b-s/campsite-explorer/pkg/concurrent"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"go.uber.org/zap"
)

var (
	ErrMapNotReady = errors.New("map view is not ready")
)

const (
	DEFAULT_INITIAL_ZOOM    = 10
	DEFAULT_THROTTLE_WINDOW = 100 * time.Millisecond
	FIT_PADDING_DEG         = 0.01
	MAX_FIT_ZOOM            = 18

	// suggested first view of a new map: the Adirondacks
	DEFAULT_CENTER_LAT = 43.371122
	DEFAULT_CENTER_LNG = -74.730233
	DEFAULT_VIEW_ZOOM  = 15
)

// MapView is the map widget the explorer drives.
type MapView interface {
	// View returns the current zoom and visible bounds. ok is false while the map is not ready.
	View() (zoom float64, bounds datastructure.Bounds, ok bool)
	// FitBounds moves the map so bounds is visible, zooming in no further than maxZoom.
	FitBounds(bounds datastructure.Bounds, maxZoom int) error
}

// ViewState. zoom and visible bounds as a map reports them.
type ViewState struct {
	Zoom   float64              `json:"zoom" validate:"min=0,max=22"`
	Bounds datastructure.Bounds `json:"bounds"`
}

type Options struct {
	RadiusKM       float64 // <= 0: radius follows the zoom level
	CacheCapacity  int
	ThrottleWindow time.Duration
	InitialZoom    int
	Clock          concurrent.Clock
}

func DefaultOptions() Options {
	return Options{
		CacheCapacity:  cache.DEFAULT_CAPACITY,
		ThrottleWindow: DEFAULT_THROTTLE_WINDOW,
		InitialZoom:    DEFAULT_INITIAL_ZOOM,
		Clock:          time.Now,
	}
}

// Snapshot. markers visible right now.
type Snapshot struct {
	Zoom       int                      `json:"zoom"`
	Bounds     *datastructure.Bounds    `json:"bounds"` // nil until the map reported a view
	Clusters   []datastructure.Cluster  `json:"clusters"`
	Singles    []datastructure.Campsite `json:"singles"`
	Recomputed bool                     `json:"recomputed"` // the clustering engine ran for this snapshot
}

type memo struct {
	valid   bool
	dataset *datastructure.Dataset
	zoom    int
	result  cluster.Result
}

// Explorer. clustering orchestrator for one map instance. owns its result cache.
// the clustering pass reruns only when the dataset or the zoom changes; bounds changes
// only refilter the last result.
type Explorer struct {
	mu   sync.Mutex
	log  *zap.Logger
	view MapView
	opts Options

	dataset *datastructure.Dataset
	zoom    int
	bounds  *datastructure.Bounds

	cache      *cache.ResultCache[cluster.Result]
	memo       memo
	updateView func() bool
}

func New(log *zap.Logger, view MapView, opts Options) *Explorer {
	defaults := DefaultOptions()
	if opts.CacheCapacity <= 0 {
		opts.CacheCapacity = defaults.CacheCapacity
	}
	if opts.ThrottleWindow <= 0 {
		opts.ThrottleWindow = defaults.ThrottleWindow
	}
	if opts.Clock == nil {
		opts.Clock = defaults.Clock
	}

	e := &Explorer{
		log:   log,
		view:  view,
		opts:  opts,
		zoom:  opts.InitialZoom,
		cache: cache.NewResultCache[cluster.Result](opts.CacheCapacity),
	}
	e.updateView = concurrent.Throttle(e.readView, opts.ThrottleWindow, concurrent.WithClock(opts.Clock))
	return e
}

// SetDataset swaps the campsite set. a different *Dataset drops every cached result.
func (e *Explorer) SetDataset(ds *datastructure.Dataset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ds == e.dataset {
		return
	}
	e.dataset = ds
	e.cache.Clear()
	e.memo = memo{}
	e.log.Debug("dataset changed, cluster cache cleared", zap.Int("campsites", ds.Len()))
}

// OnViewChange is the map move/zoom callback. throttled: returns false when the
// event was dropped because another one was applied less than ThrottleWindow ago.
func (e *Explorer) OnViewChange() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updateView()
}

// Refresh clears the cache and rereads the view without throttling.
func (e *Explorer) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Clear()
	e.memo = memo{}
	e.readView()
}

// readView copies zoom & bounds from the map. callers hold e.mu.
func (e *Explorer) readView() {
	zoom, bounds, ok := e.view.View()
	if !ok {
		return
	}
	e.zoom = int(math.Round(zoom))
	e.bounds = &bounds
}

func (e *Explorer) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	all, recomputed := e.clusters()
	visible := all
	var bounds *datastructure.Bounds
	if e.bounds != nil {
		visible = all.Visible(*e.bounds)
		b := *e.bounds
		bounds = &b
	}

	return Snapshot{
		Zoom:       e.zoom,
		Bounds:     bounds,
		Clusters:   visible.Clusters,
		Singles:    visible.Singles,
		Recomputed: recomputed,
	}
}

// clusters returns the full (unfiltered) result for the current zoom. callers hold e.mu.
func (e *Explorer) clusters() (cluster.Result, bool) {
	if e.dataset.Len() == 0 {
		return cluster.NewResult(), false
	}

	if e.memo.valid && e.memo.dataset == e.dataset && e.memo.zoom == e.zoom {
		return e.memo.result, false
	}

	campsites := e.dataset.Campsites
	result, ok := e.cache.Get(e.zoom, len(campsites))
	recomputed := false
	if !ok {
		start := time.Now()
		result = cluster.ClusterCampsites(campsites, e.zoom, e.opts.RadiusKM)
		e.cache.Set(e.zoom, len(campsites), result)
		recomputed = true

		e.log.Debug("clustering pass",
			zap.Int("zoom", e.zoom),
			zap.Int("campsites", len(campsites)),
			zap.Int("clusters", len(result.Clusters)),
			zap.Int("singles", len(result.Singles)),
			zap.Duration("took", time.Since(start)))
	}

	e.memo = memo{
		valid:   true,
		dataset: e.dataset,
		zoom:    e.zoom,
		result:  result,
	}
	return result, recomputed
}

// HandleClusterClick asks the map to fit the cluster's bounds padded by FIT_PADDING_DEG,
// capped at MAX_FIT_ZOOM.
func (e *Explorer) HandleClusterClick(c datastructure.Cluster) error {
	padded := c.Bounds.Pad(FIT_PADDING_DEG)
	if err := e.view.FitBounds(padded, MAX_FIT_ZOOM); err != nil {
		e.log.Warn("failed to fit map view to cluster", zap.Int("count", c.Count), zap.Error(err))
		return fmt.Errorf("fit view to cluster: %w", err)
	}
	return nil
}

func (e *Explorer) Zoom() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoom
}

func (e *Explorer) CachedResults() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.Len()
}
