package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

type session struct {
	mu       sync.Mutex
	ctrl     *Controller
	lastSeen atomic.Int64
}

// Registry holds one Controller per wizard session and serializes access to
// each of them. Sessions idle for longer than the TTL are removed by Sweep.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	opts     Options
	ttl      time.Duration
}

// NewRegistry creates an empty registry. A zero ttl disables sweeping.
func NewRegistry(opts Options, ttl time.Duration) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*session),
		opts:     opts,
		ttl:      ttl,
	}
}

// Create starts a new session on the greeting screen.
func (r *Registry) Create() (string, View) {
	id := uuid.NewString()
	s := &session{ctrl: NewController(r.opts)}
	s.lastSeen.Store(r.opts.Now().UnixNano())

	r.mu.Lock()
	r.sessions[id] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.opts.Metrics.SetActiveSessions(n)
	return id, s.ctrl.View()
}

func (r *Registry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// With runs fn with exclusive access to the session's controller.
func (r *Registry) With(id string, fn func(*Controller) error) error {
	s, ok := r.get(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen.Store(r.opts.Now().UnixNano())
	return fn(s.ctrl)
}

// Delete drops a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	r.opts.Metrics.SetActiveSessions(n)
	return ok
}

// Sweep removes sessions last touched before now minus the TTL and returns
// how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-r.ttl).UnixNano()

	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Load() < cutoff {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	r.opts.Metrics.SetActiveSessions(n)
	r.opts.Metrics.RecordEvicted(removed)
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
