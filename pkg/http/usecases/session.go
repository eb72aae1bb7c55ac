package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/concurrent"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/explorer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DEFAULT_SESSION_TTL = 30 * time.Minute

// FitInstruction. where the client should move its map after a cluster click.
type FitInstruction struct {
	Bounds  datastructure.Bounds `json:"bounds"`
	MaxZoom int                  `json:"max_zoom"`
}

// RemoteView is the explorer.MapView of a map living in a browser.
// the client reports its view, fit requests are stored for the client to apply.
type RemoteView struct {
	mu      sync.Mutex
	ready   bool
	zoom    float64
	bounds  datastructure.Bounds
	lastFit *FitInstruction
}

func (v *RemoteView) View() (float64, datastructure.Bounds, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom, v.bounds, v.ready
}

// FitBounds fails with explorer.ErrMapNotReady until the client reported a view.
func (v *RemoteView) FitBounds(bounds datastructure.Bounds, maxZoom int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.ready {
		return explorer.ErrMapNotReady
	}
	v.lastFit = &FitInstruction{Bounds: bounds, MaxZoom: maxZoom}
	return nil
}

func (v *RemoteView) Set(zoom float64, bounds datastructure.Bounds) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ready = true
	v.zoom = zoom
	v.bounds = bounds
}

func (v *RemoteView) LastFit() *FitInstruction {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastFit
}

type session struct {
	explorer *explorer.Explorer
	view     *RemoteView
	lastSeen time.Time
}

// SessionStore. one explorer per browser map. sessions idle longer than ttl are dropped by Sweep.
type SessionStore struct {
	log     *zap.Logger
	dataset *datastructure.Dataset
	opts    explorer.Options
	ttl     time.Duration
	clock   concurrent.Clock

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionStore(log *zap.Logger, dataset *datastructure.Dataset, opts explorer.Options, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DEFAULT_SESSION_TTL
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &SessionStore{
		log:      log,
		dataset:  dataset,
		opts:     opts,
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]*session),
	}
}

// CreateSession starts a map session. view is the initial map view, nil when the map is not ready yet.
func (s *SessionStore) CreateSession(view *explorer.ViewState) (string, explorer.Snapshot, error) {
	remote := &RemoteView{}
	e := explorer.New(s.log, remote, s.opts)
	e.SetDataset(s.dataset)
	if view != nil {
		remote.Set(view.Zoom, view.Bounds)
		e.Refresh()
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{explorer: e, view: remote, lastSeen: s.clock()}
	s.mu.Unlock()

	s.log.Debug("map session created", zap.String("session", id))
	return id, e.Snapshot(), nil
}

func (s *SessionStore) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.clock()
	return sess, nil
}

// UpdateView feeds a map move/zoom event to the session's explorer.
// applied is false when the event fell inside the throttle window.
func (s *SessionStore) UpdateView(id string, view explorer.ViewState) (explorer.Snapshot, bool, error) {
	sess, err := s.get(id)
	if err != nil {
		return explorer.Snapshot{}, false, err
	}
	sess.view.Set(view.Zoom, view.Bounds)
	applied := sess.explorer.OnViewChange()
	return sess.explorer.Snapshot(), applied, nil
}

func (s *SessionStore) Markers(id string) (explorer.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return explorer.Snapshot{}, err
	}
	return sess.explorer.Snapshot(), nil
}

// ZoomToCluster handles a click on the index-th visible cluster.
func (s *SessionStore) ZoomToCluster(id string, index int) (FitInstruction, error) {
	sess, err := s.get(id)
	if err != nil {
		return FitInstruction{}, err
	}
	clusters := sess.explorer.Snapshot().Clusters
	if index < 0 || index >= len(clusters) {
		return FitInstruction{}, ErrClusterNotFound
	}
	if err := sess.explorer.HandleClusterClick(clusters[index]); err != nil {
		return FitInstruction{}, err
	}
	return *sess.view.LastFit(), nil
}

func (s *SessionStore) Refresh(id string) (explorer.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return explorer.Snapshot{}, err
	}
	sess.explorer.Refresh()
	return sess.explorer.Snapshot(), nil
}

func (s *SessionStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many were dropped.
func (s *SessionStore) Sweep() int {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle sessions every ttl/2 until ctx is done.
func (s *SessionStore) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if dropped := s.Sweep(); dropped > 0 {
				s.log.Info("idle map sessions dropped", zap.Int("dropped", dropped), zap.Int("active", s.Len()))
			}
		}
	}
}
