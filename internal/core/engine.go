// ABOUTME: Engine facade tying extraction, chunking, embedding, and retrieval together
// ABOUTME: Public operations return result values, never errors or panics
package core

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/extract"
	"github.com/Harshs0891/ChatWithDoc/internal/models"
	"github.com/Harshs0891/ChatWithDoc/internal/store"
)

// Provider extends LLMProvider with the liveness and capability probes the
// status surface needs. *llm.Client satisfies it.
type Provider interface {
	LLMProvider
	CheckConnection(ctx context.Context) bool
	CheckEmbeddingModel(ctx context.Context) bool
}

// Engine is the document Q&A engine: it indexes uploaded documents per
// session and answers questions grounded in that session's content. The
// session store is injected so callers own its lifetime and tests can
// inspect it.
type Engine struct {
	store     *store.SessionStore
	provider  Provider
	extractor *extract.Extractor
	chunker   *ChunkEngine
	answerer  *Answerer
	insights  *InsightGenerator
}

// NewEngine wires an Engine from its dependencies.
func NewEngine(sessionStore *store.SessionStore, provider Provider, cfg *config.Config) *Engine {
	return &Engine{
		store:     sessionStore,
		provider:  provider,
		extractor: extract.NewExtractor(),
		chunker:   NewChunkEngine(cfg),
		answerer:  NewAnswerer(sessionStore, provider, cfg),
		insights:  NewInsightGenerator(sessionStore, provider, cfg),
	}
}

// ProcessDocuments extracts, chunks, and embeds the given files, replacing
// the session's index with the result. Returns a success flag and a
// human-readable message; it never returns an error.
func (e *Engine) ProcessDocuments(ctx context.Context, filePaths []string, sessionID string) (success bool, message string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] Panic processing documents: %v", r)
			success = false
			message = "Error processing documents. Please try again."
		}
	}()

	if len(filePaths) == 0 {
		return false, "No files provided"
	}

	log.Printf("[Engine] Processing %d files for session %s", len(filePaths), sessionID)

	var chunks []models.Chunk
	processedFiles := 0

	for _, filePath := range filePaths {
		filename := filepath.Base(filePath)
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

		if !extract.Supported(ext) {
			log.Printf("[Engine] Unsupported file type: %s", ext)
			continue
		}

		fileChunks := e.extractAndChunk(filePath, filename, ext)
		if len(fileChunks) == 0 {
			log.Printf("[Engine] No text extracted from %s", filename)
			continue
		}

		chunks = append(chunks, fileChunks...)
		processedFiles++
		log.Printf("[Engine] Processed %s: %d total chunks", filename, len(chunks))
	}

	if len(chunks) == 0 {
		return false, "No valid documents processed. Please check if the files contain readable text."
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	log.Printf("[Engine] Generating embeddings for %d chunks", len(texts))
	embeddings, degraded := e.provider.EmbedBatch(ctx, texts)

	degradedCount := 0
	for _, d := range degraded {
		if d {
			degradedCount++
		}
	}
	if degradedCount > 0 {
		log.Printf("[Engine] Warning: %d of %d chunks use fallback embeddings", degradedCount, len(texts))
	}

	if err := e.store.Put(sessionID, chunks, embeddings); err != nil {
		log.Printf("[Engine] Failed to store index: %v", err)
		return false, fmt.Sprintf("Error generating embeddings: %v", err)
	}

	return true, fmt.Sprintf("Successfully processed %d files with %d chunks", processedFiles, len(chunks))
}

// extractAndChunk routes a file through the right extractor and chunking
// policy. PDFs keep page attribution; everything else gets the page sentinel.
func (e *Engine) extractAndChunk(filePath, filename, ext string) []models.Chunk {
	switch ext {
	case "pdf":
		pages := e.extractor.PDFPages(filePath)
		if len(pages) == 0 {
			return nil
		}
		return e.chunker.ChunkPages(filename, pages)
	case "docx", "doc":
		text := e.extractor.Docx(filePath)
		if text == "" {
			return nil
		}
		return e.chunker.ChunkDocument(filename, text)
	case "txt":
		text := e.extractor.Txt(filePath)
		if text == "" {
			return nil
		}
		return e.chunker.ChunkDocument(filename, text)
	}
	return nil
}

// GenerateAnswer answers a query grounded in the session's indexed content.
func (e *Engine) GenerateAnswer(ctx context.Context, query, sessionID string) models.AnswerResult {
	if strings.TrimSpace(query) == "" {
		return models.AnswerResult{
			Success: false,
			Message: "Empty query. Please ask a question.",
		}
	}
	return e.answerer.Answer(ctx, query, sessionID)
}

// GenerateSmartQuestions derives a welcome message and suggested questions
// from the session's indexed content.
func (e *Engine) GenerateSmartQuestions(ctx context.Context, sessionID string, count int) models.InsightResult {
	if count <= 0 {
		count = 3
	}
	return e.insights.Generate(ctx, sessionID, count)
}

// HasDocuments reports whether the session has indexed content.
func (e *Engine) HasDocuments(sessionID string) bool {
	return e.store.HasDocuments(sessionID)
}

// GetDocumentCount returns the number of indexed chunks for the session.
func (e *Engine) GetDocumentCount(sessionID string) int {
	return e.store.Count(sessionID)
}

// GetActiveSessionsCount returns the number of sessions holding an index.
func (e *Engine) GetActiveSessionsCount() int {
	return e.store.ActiveSessions()
}

// ClearSession drops the session's index. Idempotent.
func (e *Engine) ClearSession(sessionID string) bool {
	return e.store.Clear(sessionID)
}

// CheckOllamaConnection probes the completion provider's liveness.
func (e *Engine) CheckOllamaConnection(ctx context.Context) bool {
	return e.provider.CheckConnection(ctx)
}

// CheckEmbeddingModel verifies the embedding model can actually serve a
// request.
func (e *Engine) CheckEmbeddingModel(ctx context.Context) bool {
	return e.provider.CheckEmbeddingModel(ctx)
}
