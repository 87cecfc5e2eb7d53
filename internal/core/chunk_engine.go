// ABOUTME: ChunkEngine splits extracted document text into bounded overlapping passages
// ABOUTME: Prefers paragraph, line, sentence, then word boundaries before hard cuts
package core

import (
	"sort"
	"strings"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/models"
	"github.com/google/uuid"
)

// separators in descending preference: paragraph break, line break,
// sentence-terminal punctuation, clause break, word boundary.
var separators = []string{"\n\n", "\n", ".", "!", "?", ",", " "}

// ChunkEngine produces retrieval chunks from extracted text. Paginated
// sources use finer chunks than plain text because page attribution makes
// precise citations worth the extra index size.
type ChunkEngine struct {
	pageChunkSize    int
	pageChunkOverlap int
	docChunkSize     int
	docChunkOverlap  int
}

// NewChunkEngine creates a ChunkEngine with the configured size policies.
func NewChunkEngine(cfg *config.Config) *ChunkEngine {
	return &ChunkEngine{
		pageChunkSize:    cfg.PageChunkSize,
		pageChunkOverlap: cfg.PageChunkOverlap,
		docChunkSize:     cfg.DocChunkSize,
		docChunkOverlap:  cfg.DocChunkOverlap,
	}
}

// ChunkPages chunks page-indexed text, emitting chunks in ascending page
// order. Every chunk carries its 1-based page number and its position and
// count within that page.
func (ce *ChunkEngine) ChunkPages(source string, pages map[int]string) []models.Chunk {
	pageNums := make([]int, 0, len(pages))
	for n := range pages {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	var chunks []models.Chunk
	for _, pageNum := range pageNums {
		pieces := splitText(pages[pageNum], ce.pageChunkSize, ce.pageChunkOverlap)
		for i, piece := range pieces {
			chunks = append(chunks, models.Chunk{
				ChunkID:    newChunkID(),
				Text:       piece,
				Source:     source,
				PageNumber: pageNum,
				ChunkIndex: i,
				ChunkCount: len(pieces),
			})
		}
	}
	return chunks
}

// ChunkDocument chunks a whole-document text blob. Formats without a page
// concept get page number 1 as a sentinel.
func (ce *ChunkEngine) ChunkDocument(source, text string) []models.Chunk {
	pieces := splitText(text, ce.docChunkSize, ce.docChunkOverlap)

	chunks := make([]models.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, models.Chunk{
			ChunkID:    newChunkID(),
			Text:       piece,
			Source:     source,
			PageNumber: 1,
			ChunkIndex: i,
			ChunkCount: len(pieces),
		})
	}
	return chunks
}

// splitText cuts text into pieces of at most chunkSize characters with
// roughly overlap characters shared between consecutive pieces. Each cut
// lands on the best boundary available inside the size budget, falling back
// to a hard character cut when no separator appears in the window.
func splitText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var pieces []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end >= len(text) {
			piece := strings.TrimSpace(text[start:])
			if piece != "" {
				pieces = append(pieces, piece)
			}
			break
		}

		cut := findCut(text, start, end)
		piece := strings.TrimSpace(text[start:cut])
		if piece != "" {
			pieces = append(pieces, piece)
		}

		next := cut - overlap
		if next <= start {
			// Overlap must never stall the scan.
			next = cut
		}
		start = next
	}
	return pieces
}

// findCut returns the cut position inside (start, end] that lands on the
// most preferred boundary. The cut is placed just after the separator so
// sentence punctuation stays with its sentence.
func findCut(text string, start, end int) int {
	window := text[start:end]
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx + len(sep)
		}
	}
	return end
}

func newChunkID() string {
	return "chunk_" + uuid.New().String()
}
