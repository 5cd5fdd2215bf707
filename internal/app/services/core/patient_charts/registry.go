package patient_charts

import (
	"context"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RegistryConfig bounds the views a registry keeps. A zero limit is unbounded.
type RegistryConfig struct {
	IdleTTL            time.Duration
	MaxViews           int
	MaxViewsPerSession int
}

// Registry owns the patient views of every browser session, one per patient
// the session has open.
type Registry struct {
	deps     *Dependencies
	cfg      RegistryConfig
	lifetime context.Context
	stop     context.CancelFunc

	mu     sync.Mutex
	views  map[string]map[string]*PatientView
	count  int
	closed bool
}

func NewRegistry(deps *Dependencies, cfg RegistryConfig) *Registry {
	lifetime, stop := context.WithCancel(context.Background())
	return &Registry{
		deps:     deps,
		cfg:      cfg,
		lifetime: lifetime,
		stop:     stop,
		views:    make(map[string]map[string]*PatientView),
	}
}

// View returns the view of patientID in sessionID, creating it on first use.
// created is true when the view is new. Creating a view past a limit closes
// the least recently used view of the session, or of the whole registry.
func (r *Registry) View(sessionID, patientID string) (view *PatientView, created bool, err error) {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return nil, false, exceptions.ErrViewClosed(nil)
	}

	if view, ok := r.views[sessionID][patientID]; ok {
		r.mu.Unlock()
		return view, false, nil
	}

	var evicted []*PatientView
	if limit := r.cfg.MaxViewsPerSession; limit > 0 {
		for len(r.views[sessionID]) >= limit {
			evicted = append(evicted, r.removeOldest(r.views[sessionID]))
		}
	}
	if limit := r.cfg.MaxViews; limit > 0 {
		for r.count >= limit {
			evicted = append(evicted, r.removeOldestOverall())
		}
	}

	view = NewPatientView(r.lifetime, sessionID, r.deps)
	if r.views[sessionID] == nil {
		r.views[sessionID] = make(map[string]*PatientView)
	}
	r.views[sessionID][patientID] = view
	r.count++
	r.deps.Metrics.ActiveViews.Set(float64(r.count))
	r.mu.Unlock()

	for _, old := range evicted {
		old.Close()
	}
	if len(evicted) > 0 {
		r.deps.Log.Info("Registry.View closed least recently used patient views",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Int("count", len(evicted)),
		)
	}
	r.deps.Log.Debug("Registry.View created patient view",
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return view, true, nil
}

func (r *Registry) Lookup(sessionID, patientID string) (*PatientView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.views[sessionID][patientID]
	return view, ok
}

// Evict tears down every view of sessionID.
func (r *Registry) Evict(sessionID string) {
	r.mu.Lock()
	session := r.views[sessionID]
	delete(r.views, sessionID)
	r.count -= len(session)
	r.deps.Metrics.ActiveViews.Set(float64(r.count))
	r.mu.Unlock()

	for _, view := range session {
		view.Close()
	}
}

// removeOldest unlinks the least recently used view of session. Callers hold
// r.mu and close the returned view after unlocking.
func (r *Registry) removeOldest(session map[string]*PatientView) *PatientView {
	var (
		oldestID   string
		oldest     *PatientView
		oldestSeen time.Time
	)
	for patientID, view := range session {
		seen := view.idleSince()
		if oldest == nil || seen.Before(oldestSeen) {
			oldestID, oldest, oldestSeen = patientID, view, seen
		}
	}
	delete(session, oldestID)
	r.count--
	if len(session) == 0 {
		delete(r.views, oldest.sessionID)
	}
	return oldest
}

func (r *Registry) removeOldestOverall() *PatientView {
	var (
		oldestSession map[string]*PatientView
		oldestSeen    time.Time
	)
	for _, session := range r.views {
		for _, view := range session {
			seen := view.idleSince()
			if oldestSession == nil || seen.Before(oldestSeen) {
				oldestSession, oldestSeen = session, seen
			}
		}
	}
	return r.removeOldest(oldestSession)
}

// EvictIdle tears down views untouched since before now minus the idle TTL
// and returns how many were removed.
func (r *Registry) EvictIdle(now time.Time) int {
	cutoff := now.Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var idle []*PatientView
	for sessionID, session := range r.views {
		for patientID, view := range session {
			if view.idleSince().Before(cutoff) {
				idle = append(idle, view)
				delete(session, patientID)
			}
		}
		if len(session) == 0 {
			delete(r.views, sessionID)
		}
	}
	r.count -= len(idle)
	r.deps.Metrics.ActiveViews.Set(float64(r.count))
	r.mu.Unlock()

	for _, view := range idle {
		view.Close()
	}
	if len(idle) > 0 {
		r.deps.Log.Info("Registry.EvictIdle closed idle patient views",
			zap.Int("count", len(idle)),
		)
	}
	return len(idle)
}

// Run evicts idle views until ctx ends or the registry is closed.
func (r *Registry) Run(ctx context.Context) {
	interval := r.cfg.IdleTTL / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.lifetime.Done():
			return
		case now := <-ticker.C:
			r.EvictIdle(now)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Close tears down every view. Later calls to View fail.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	views := r.views
	r.views = make(map[string]map[string]*PatientView)
	r.count = 0
	r.deps.Metrics.ActiveViews.Set(0)
	r.mu.Unlock()

	for _, session := range views {
		for _, view := range session {
			view.Close()
		}
	}
	r.stop()
}
