// ABOUTME: Brute-force cosine similarity search over a session's embeddings
// ABOUTME: Stable descending sort so ties preserve document and page order
package store

import (
	"math"
	"sort"

	"github.com/Harshs0891/ChatWithDoc/internal/models"
)

// Search ranks the session's chunks against a query vector and returns the
// topK best matches by descending cosine similarity. Ties keep original
// chunk order: chunks follow document and page order, and earlier content
// is the preferred default. Returns an empty slice if the session has no
// index or the query vector is empty.
func (s *SessionStore) Search(sessionID string, queryVector []float64, topK int) []models.RetrievalResult {
	if len(queryVector) == 0 || topK <= 0 {
		return nil
	}

	index, ok := s.Get(sessionID)
	if !ok || len(index.Chunks) == 0 {
		return nil
	}

	results := make([]models.RetrievalResult, len(index.Chunks))
	for i := range index.Chunks {
		results[i] = models.RetrievalResult{
			Chunk:      index.Chunks[i],
			Similarity: CosineSimilarity(queryVector, index.Embeddings[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// CosineSimilarity computes (a·b)/(‖a‖·‖b‖) for equal-length vectors.
// Mismatched lengths or a zero-norm vector yield 0.0: no meaningful signal
// rather than an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
