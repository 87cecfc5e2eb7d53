// ABOUTME: Chunk model representing a bounded passage of document text
// ABOUTME: Carries source and page attribution used for retrieval and citations
package models

// Chunk is the unit of indexing and retrieval: a bounded passage of
// document text with its source name and page/position metadata.
// Chunks are immutable once created.
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	Text       string `json:"text"`
	Source     string `json:"source"`
	PageNumber int    `json:"page_number"` // 1-based; 1 for formats without pages
	ChunkIndex int    `json:"chunk_index"` // position within its page or document
	ChunkCount int    `json:"chunk_count"` // total chunks in the same page or document
}

// RetrievalResult pairs a stored chunk with its cosine similarity to a query.
// Results are ephemeral: produced per query and discarded after synthesis.
type RetrievalResult struct {
	Chunk      Chunk   `json:"chunk"`
	Similarity float64 `json:"similarity"`
}
