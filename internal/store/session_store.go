// ABOUTME: In-memory session vector store keyed by opaque session identifier
// ABOUTME: Entries are immutable snapshots swapped under a single lock
package store

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Harshs0891/ChatWithDoc/internal/models"
)

// SessionStore holds one SessionIndex per session. Indexes are built fully
// off to the side and published with a single pointer swap, so concurrent
// readers never observe chunks without their embeddings. Nothing is
// persisted; a restart loses all sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.SessionIndex
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.SessionIndex),
	}
}

// Put replaces the session's index with a new snapshot. Re-processing is
// destructive: any prior index for the session is dropped entirely.
func (s *SessionStore) Put(sessionID string, chunks []models.Chunk, embeddings [][]float64) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	index := &models.SessionIndex{
		SessionID:  sessionID,
		Chunks:     chunks,
		Embeddings: embeddings,
		IndexedAt:  time.Now(),
	}

	s.mu.Lock()
	s.sessions[sessionID] = index
	s.mu.Unlock()

	log.Printf("[Store] Stored %d chunks for session %s", len(chunks), sessionID)
	return nil
}

// Get returns the current index snapshot for a session. The snapshot is
// never mutated after publication, so callers may read it without holding
// the store lock.
func (s *SessionStore) Get(sessionID string) (*models.SessionIndex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.sessions[sessionID]
	return index, ok
}

// HasDocuments reports whether the session has a non-empty index.
func (s *SessionStore) HasDocuments(sessionID string) bool {
	index, ok := s.Get(sessionID)
	return ok && len(index.Chunks) > 0
}

// Count returns the number of indexed chunks for a session, 0 if absent.
func (s *SessionStore) Count(sessionID string) int {
	index, ok := s.Get(sessionID)
	if !ok {
		return 0
	}
	return len(index.Chunks)
}

// ActiveSessions returns the number of sessions holding an index.
func (s *SessionStore) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Clear removes a session's index. Idempotent; reports whether an entry
// existed.
func (s *SessionStore) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	log.Printf("[Store] Cleared session %s", sessionID)
	return true
}
