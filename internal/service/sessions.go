package service

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions hosts one Directory per connected client so the stateful pipeline
// can sit behind a stateless HTTP surface.
type Sessions struct {
	mu   sync.RWMutex
	snap *Snapshot
	dirs map[string]*Directory
}

// NewSessions creates an empty session registry over the shared snapshot.
// The registry subscribes to the snapshot so every live session re-runs its
// viewport filter when the initial load completes.
func NewSessions(snap *Snapshot) *Sessions {
	s := &Sessions{snap: snap, dirs: make(map[string]*Directory)}
	snap.NotifyReady(s.DataLoaded)
	return s
}

// DataLoaded re-runs every live session's visibility against its current
// bounds. Records delivered by the initial fetch may fall inside a viewport
// that has not moved since it was reported.
func (s *Sessions) DataLoaded() {
	s.mu.RLock()
	dirs := make([]*Directory, 0, len(s.dirs))
	for _, dir := range s.dirs {
		dirs = append(dirs, dir)
	}
	s.mu.RUnlock()

	for _, dir := range dirs {
		dir.DataLoaded()
	}
}

// Create registers a new session and returns its id and directory.
func (s *Sessions) Create() (string, *Directory) {
	id := uuid.NewString()
	dir := NewDirectory(s.snap)

	s.mu.Lock()
	s.dirs[id] = dir
	s.mu.Unlock()
	return id, dir
}

// Get looks up a session by id.
func (s *Sessions) Get(id string) (*Directory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dir, ok := s.dirs[id]
	return dir, ok
}

// Delete removes a session. Unknown ids are a no-op.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.dirs, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dirs)
}
