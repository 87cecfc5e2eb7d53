// ABOUTME: SessionIndex model holding a session's chunks and embedding matrix
// ABOUTME: Entries are immutable snapshots swapped atomically by the store
package models

import "time"

// SessionIndex holds the indexed content for one session: the ordered chunk
// list and its positionally aligned embedding matrix. The two slices are
// always the same length; embeddings[i] belongs to chunks[i]. An index is
// built fully off to the side and then published as a whole, so readers
// never observe chunks without embeddings.
type SessionIndex struct {
	SessionID  string      `json:"session_id"`
	Chunks     []Chunk     `json:"chunks"`
	Embeddings [][]float64 `json:"embeddings"`
	IndexedAt  time.Time   `json:"indexed_at"`
}
