package session

import (
	"context"
	"sync"
	"time"

	"HealthifyChat/pkg/nlp"

	"github.com/sirupsen/logrus"
)

const (
	DefaultHistorySize = 10
	DefaultIdleTimeout = 30 * time.Minute
)

// Store is an optional durable copy of session contexts. Load returns
// (nil, nil) for an unknown session.
type Store interface {
	Load(ctx context.Context, id string) (*Context, error)
	Save(ctx context.Context, c *Context) error
	Delete(ctx context.Context, id string) error
}

type Option func(*Manager)

func WithHistorySize(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.historySize = n
		}
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idleTimeout = d
		}
	}
}

func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

type slot struct {
	mu      sync.Mutex
	ctx     *Context
	removed bool
}

// Manager keeps one Context per session id. Turns on the same session are
// serialised; different sessions only share the map lookup.
type Manager struct {
	mu          sync.Mutex
	slots       map[string]*slot
	historySize int
	idleTimeout time.Duration
	store       Store
	now         func() time.Time
	log         *logrus.Logger
}

func NewManager(log *logrus.Logger, opts ...Option) *Manager {
	m := &Manager{
		slots:       make(map[string]*slot),
		historySize: DefaultHistorySize,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		log:         log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin locks the session and returns a turn working on a private copy of
// its context. The caller must Commit or Release the turn.
func (m *Manager) Begin(ctx context.Context, id string) *Turn {
	var s *slot
	for {
		m.mu.Lock()
		existing, ok := m.slots[id]
		if !ok {
			existing = &slot{}
			m.slots[id] = existing
		}
		m.mu.Unlock()

		existing.mu.Lock()
		if existing.removed {
			existing.mu.Unlock()
			continue
		}
		s = existing
		break
	}

	base := s.ctx
	if base == nil {
		base = m.load(ctx, id)
	}

	return &Turn{
		m:       m,
		s:       s,
		ctx:     ctx,
		working: base.clone(),
	}
}

func (m *Manager) load(ctx context.Context, id string) *Context {
	if m.store != nil {
		stored, err := m.store.Load(ctx, id)
		if err != nil {
			m.logger().WithFields(logrus.Fields{
				"session_id": id,
				"error":      err.Error(),
			}).Warn("Failed to load session context, starting fresh")
		} else if stored != nil {
			if stored.History == nil {
				stored.History = []HistoryEntry{}
			}
			return stored
		}
	}
	return newContext(id, m.now())
}

// Get returns a copy of the session context. Unknown sessions report false.
func (m *Manager) Get(ctx context.Context, id string) (Context, bool) {
	m.mu.Lock()
	s, ok := m.slots[id]
	m.mu.Unlock()

	if ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ctx != nil && !s.removed {
			return *s.ctx.clone(), true
		}
	}

	if m.store != nil {
		stored, err := m.store.Load(ctx, id)
		if err == nil && stored != nil {
			return *stored, true
		}
	}
	return Context{}, false
}

// Clear drops the session. It waits for an in-flight turn to finish.
func (m *Manager) Clear(ctx context.Context, id string) bool {
	m.mu.Lock()
	s, ok := m.slots[id]
	m.mu.Unlock()

	existed := false
	if ok {
		s.mu.Lock()
		m.mu.Lock()
		if m.slots[id] == s {
			delete(m.slots, id)
		}
		m.mu.Unlock()
		existed = s.ctx != nil
		s.removed = true
		s.ctx = nil
		s.mu.Unlock()
	}

	if m.store != nil {
		if !existed {
			stored, err := m.store.Load(ctx, id)
			existed = err == nil && stored != nil
		}
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger().WithFields(logrus.Fields{
				"session_id": id,
				"error":      err.Error(),
			}).Warn("Failed to delete stored session context")
		}
	}

	return existed
}

// Sweep evicts sessions idle for longer than the idle timeout. Sessions in
// the middle of a turn are skipped.
func (m *Manager) Sweep() int {
	now := m.now()
	evicted := 0

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.slots {
		if !s.mu.TryLock() {
			continue
		}
		if s.ctx == nil || now.Sub(s.ctx.LastActivity) > m.idleTimeout {
			delete(m.slots, id)
			s.removed = true
			s.ctx = nil
			evicted++
		}
		s.mu.Unlock()
	}

	if evicted > 0 {
		m.logger().WithFields(logrus.Fields{
			"evicted":   evicted,
			"remaining": len(m.slots),
		}).Debug("Swept idle chat sessions")
	}
	return evicted
}

// StartJanitor runs Sweep every interval until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

func (m *Manager) logger() *logrus.Logger {
	if m.log == nil {
		return logrus.StandardLogger()
	}
	return m.log
}

// Turn is one serialised read-modify-write of a session context.
type Turn struct {
	m       *Manager
	s       *slot
	ctx     context.Context
	working *Context
	done    bool
}

// Context returns a copy of the working context.
func (t *Turn) Context() Context {
	return *t.working.clone()
}

// Save records the turn's intent and entities, applies the patch and appends
// a history entry.
func (t *Turn) Save(intent nlp.Intent, entities nlp.EntityBag, patch Patch) {
	if t.done {
		return
	}
	t.working.LastIntent = intent
	t.working.LastEntities = entities.Clone()
	patch.apply(t.working)
	t.AppendHistory(intent, entities)
}

// Update applies the patch without touching the last intent or entities.
func (t *Turn) Update(patch Patch) {
	if t.done {
		return
	}
	patch.apply(t.working)
}

func (t *Turn) AppendHistory(intent nlp.Intent, entities nlp.EntityBag) {
	if t.done {
		return
	}
	t.working.History = append(t.working.History, HistoryEntry{
		Timestamp: t.m.now(),
		Intent:    intent,
		Entities:  entities.Clone(),
	})
	if over := len(t.working.History) - t.m.historySize; over > 0 {
		t.working.History = append([]HistoryEntry{}, t.working.History[over:]...)
	}
}

// Commit publishes the working copy and unlocks the session.
func (t *Turn) Commit() {
	if t.done {
		return
	}
	t.done = true

	t.working.LastActivity = t.m.now()
	t.s.ctx = t.working
	t.working = t.working.clone()
	defer t.s.mu.Unlock()

	if t.m.store != nil {
		if err := t.m.store.Save(t.ctx, t.working); err != nil {
			t.m.logger().WithFields(logrus.Fields{
				"session_id": t.working.SessionID,
				"error":      err.Error(),
			}).Warn("Failed to persist session context")
		}
	}
}

// Release unlocks the session and drops the working copy. It is a no-op
// after Commit.
func (t *Turn) Release() {
	if t.done {
		return
	}
	t.done = true
	t.s.mu.Unlock()
}
