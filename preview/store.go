// Package preview implements the admin-only draft workflow: compose a
// promotional post, iterate on its fields, then publish or discard.
package preview

import (
	"sync"
	"time"

	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

// Store holds live preview sessions and per-admin edit states. Injected so
// the flow's lifetime and locking discipline are explicit instead of living
// in package globals.
type Store interface {
	Get(id string) (*types.PreviewSession, bool)
	Put(s *types.PreviewSession)
	Delete(id string)

	EditState(adminID int64) (*types.EditState, bool)
	SetEditState(adminID int64, st *types.EditState)
	ClearEditState(adminID int64)

	// SweepExpired discards sessions and edit states older than their TTLs and
	// reports how many of each were removed.
	SweepExpired(sessionTTL, editTTL time.Duration) (sessions, edits int)
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*types.PreviewSession
	edits    map[int64]*types.EditState
}

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*types.PreviewSession),
		edits:    make(map[int64]*types.EditState),
	}
}

func (m *memoryStore) Get(id string) (*types.PreviewSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *memoryStore) Put(s *types.PreviewSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *memoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *memoryStore) EditState(adminID int64) (*types.EditState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.edits[adminID]
	return st, ok
}

// SetEditState replaces whatever edit state the admin had; one per admin at a
// time.
func (m *memoryStore) SetEditState(adminID int64, st *types.EditState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits[adminID] = st
}

func (m *memoryStore) ClearEditState(adminID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edits, adminID)
}

func (m *memoryStore) SweepExpired(sessionTTL, editTTL time.Duration) (sessions, edits int) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.Sub(s.CreatedAt) > sessionTTL {
			delete(m.sessions, id)
			sessions++
		}
	}
	for adminID, st := range m.edits {
		if now.Sub(st.Since) > editTTL {
			delete(m.edits, adminID)
			edits++
		}
	}
	return sessions, edits
}

// RunSweeper periodically expires sessions and edit states until stop is
// closed.
func RunSweeper(store Store, interval, sessionTTL, editTTL time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if s, e := store.SweepExpired(sessionTTL, editTTL); s > 0 || e > 0 {
				tool.DefaultLogger.Debugf("[Preview] Sweep removed %d sessions, %d edit states", s, e)
			}
		case <-stop:
			return
		}
	}
}
