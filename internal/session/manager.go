// Package session keeps one uploader per browser session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transcribeui/internal/uploader"
)

// Factory builds the uploader for a new session.
type Factory func() *uploader.Uploader

// Manager maps session ids to uploaders and drops idle ones.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	newUploader Factory
	maxAge      time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

type entry struct {
	uploader *uploader.Uploader
	lastSeen time.Time
}

// NewManager creates a session manager.
func NewManager(newUploader Factory, maxAge time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions:    make(map[string]*entry),
		newUploader: newUploader,
		maxAge:      maxAge,
		now:         time.Now,
		logger:      logger,
	}
}

// Acquire returns the uploader for id, creating a session with a fresh id
// when id is unknown or malformed. The returned id is the one the client
// must keep using.
func (m *Manager) Acquire(id string) (string, *uploader.Uploader) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, err := uuid.Parse(id); err == nil {
		if e, ok := m.sessions[id]; ok {
			e.lastSeen = now
			return id, e.uploader
		}
	}

	id = uuid.NewString()
	e := &entry{uploader: m.newUploader(), lastSeen: now}
	m.sessions[id] = e
	m.logger.Debug("session created", zap.String("session", id))
	return id, e.uploader
}

// Lookup returns the uploader for an existing session and refreshes its
// last access. Unlike Acquire it never creates a session.
func (m *Manager) Lookup(id string) (*uploader.Uploader, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.uploader, true
}

// Sweep removes sessions idle for longer than the max age. Sessions with a
// request in flight are kept. It returns the number removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.maxAge)
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.After(cutoff) || e.uploader.Snapshot().Loading() {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	if removed > 0 {
		m.logger.Info("expired sessions removed", zap.Int("removed", removed), zap.Int("remaining", len(m.sessions)))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
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
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
