package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/audit"
	"github.com/hackgods/healthcare-plus/internal/records"
	redisclient "github.com/hackgods/healthcare-plus/internal/redis"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is busy with another request, please retry")
)

// Session owns the record store for one user session.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Store     *records.Store

	lastSeen time.Time
	turns    int
}

type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	locker Locker
	sink   audit.Sink
	logger zerolog.Logger
	ttl    time.Duration
	now    func() time.Time
	store  []records.Option
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLocker(l Locker) Option {
	return func(m *Manager) { m.locker = l }
}

func WithSink(s audit.Sink) Option {
	return func(m *Manager) { m.sink = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithStoreOptions is applied to every store the manager creates.
func WithStoreOptions(opts ...records.Option) Option {
	return func(m *Manager) { m.store = append(m.store, opts...) }
}

// NewManager creates a manager that expires sessions idle for longer than ttl.
// A non-positive ttl disables expiry.
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		locker:   NewMemoryLocker(),
		sink:     audit.Discard{},
		logger:   zerolog.Nop(),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Create(ctx context.Context) *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		Store:     records.NewStore(m.store...),
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	audit.Emit(ctx, m.sink, m.logger, audit.EventSessionStarted, s.ID, nil)
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// LastSeen reports when the session last started or finished a turn.
func (m *Manager) LastSeen(id uuid.UUID) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return time.Time{}, ErrSessionNotFound
	}
	return s.lastSeen, nil
}

// End discards a session and its store once any running turn has finished.
func (m *Manager) End(ctx context.Context, id uuid.UUID) error {
	var appts, recs int
	err := m.Turn(ctx, id, func(_ context.Context, s *Session) error {
		if _, ok := m.remove(id); !ok {
			return ErrSessionNotFound
		}
		appts, recs = s.Store.Counts()
		return nil
	})
	if err != nil {
		return err
	}

	audit.Emit(ctx, m.sink, m.logger, audit.EventSessionEnded, id, map[string]any{
		"appointments":    appts,
		"patient_records": recs,
	})
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Turn runs fn as the single active turn of the session.
func (m *Manager) Turn(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, s *Session) error) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	err = m.locker.WithSessionLock(ctx, id, func(lockCtx context.Context) error {
		if !m.begin(s) {
			return ErrSessionNotFound
		}
		defer m.finish(s)
		return fn(lockCtx, s)
	})
	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return ErrSessionBusy
	}
	return err
}

// Sweep drops sessions idle for longer than the ttl and returns how many.
// Sessions with a turn in progress are never idle.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.ttl <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.turns == 0 && s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		audit.Emit(ctx, m.sink, m.logger, audit.EventSessionExpired, s.ID, map[string]any{
			"idle_for": m.now().Sub(s.lastSeen).String(),
		})
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("session sweeper stopped")
			return nil
		case <-ticker.C:
			start := time.Now()
			if n := m.Sweep(ctx); n > 0 {
				m.logger.Info().
					Int("expired", n).
					Int("active", m.Len()).
					Dur("took", time.Since(start)).
					Msg("expired idle sessions")
			}
		}
	}
}

// begin marks a turn as started, unless the session was ended or expired
// while the turn waited for the lock.
func (m *Manager) begin(s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[s.ID] != s {
		return false
	}
	s.turns++
	s.lastSeen = m.now()
	return true
}

func (m *Manager) finish(s *Session) {
	m.mu.Lock()
	s.turns--
	s.lastSeen = m.now()
	m.mu.Unlock()
}

func (m *Manager) remove(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	return s, ok
}
