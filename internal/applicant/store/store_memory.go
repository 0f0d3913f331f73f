// Package store keeps workflow sessions in process memory. Sessions do not
// survive a restart.
package store

import (
	"context"
	"sync"
	"time"

	"insurtech/internal/applicant/workflow"
	id "insurtech/pkg/domain"
	"insurtech/pkg/platform/sentinel"
)

// Session is one applicant's form.
type Session struct {
	ID        id.ApplicationID
	State     workflow.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// entry serializes every event of one session. The store-wide lock only
// guards the map, so sessions never wait on each other.
type entry struct {
	mu      sync.Mutex
	session Session
	deleted bool
}

// InMemorySessionStore is a map of sessions with per-session critical
// sections.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.ApplicationID]*entry
	now      func() time.Time
}

// Option configures the store.
type Option func(*InMemorySessionStore)

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *InMemorySessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *InMemorySessionStore {
	s := &InMemorySessionStore{
		sessions: make(map[id.ApplicationID]*entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new session in its initial state.
func (s *InMemorySessionStore) Create(_ context.Context, state workflow.State) (Session, error) {
	now := s.now()
	session := Session{
		ID:        id.NewApplicationID(),
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &entry{session: session}
	return session, nil
}

// FindByID returns a snapshot of the session. It waits for an in-flight
// Execute on the same session to finish.
func (s *InMemorySessionStore) FindByID(ctx context.Context, sessionID id.ApplicationID) (Session, error) {
	e, err := s.lookup(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return Session{}, sentinel.ErrNotFound
	}
	return e.session, nil
}

// Execute runs fn inside the session's critical section and commits the
// returned state when fn succeeds. The returned session is the committed
// one, or the unchanged one when fn fails.
func (s *InMemorySessionStore) Execute(ctx context.Context, sessionID id.ApplicationID, fn func(Session) (workflow.State, error)) (Session, error) {
	e, err := s.lookup(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return Session{}, sentinel.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return e.session, err
	}

	next, err := fn(e.session)
	if err != nil {
		return e.session, err
	}
	e.session.State = next
	e.session.UpdatedAt = s.now()
	return e.session, nil
}

// DeleteIdle removes sessions not updated since cutoff and returns their IDs.
// Sessions inside Execute are skipped.
func (s *InMemorySessionStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]id.ApplicationID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []id.ApplicationID
	for sessionID, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.session.UpdatedAt.Before(cutoff) {
			e.deleted = true
			delete(s.sessions, sessionID)
			removed = append(removed, sessionID)
		}
		e.mu.Unlock()
	}
	return removed, nil
}

// Count returns the number of stored sessions.
func (s *InMemorySessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *InMemorySessionStore) lookup(ctx context.Context, sessionID id.ApplicationID) (*entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return e, nil
}
