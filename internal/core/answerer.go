// ABOUTME: Answer synthesis from retrieved chunks under a strict grounding prompt
// ABOUTME: Filters by relevance threshold and detects the model's own refusals
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/llm"
	"github.com/Harshs0891/ChatWithDoc/internal/models"
	"github.com/Harshs0891/ChatWithDoc/internal/store"
)

// RefusalAnswer is the exact sentence the model is instructed to return when
// the documents do not contain the requested information. It doubles as the
// degraded-path answer when the completion provider is unreachable.
const RefusalAnswer = "I don't have information about that in the document."

// negativePhrases are scanned case-insensitively in generated answers. A
// match means the model admitted ignorance, which overrides its surface
// text: the result is treated as a non-answer.
var negativePhrases = []string{
	"i don't have information",
	"the document doesn't contain",
	"no information about",
	"not mentioned in the document",
	"cannot find information",
	"no details about",
	"not available in the document",
}

// LLMProvider is the slice of the Ollama client the core components need.
type LLMProvider interface {
	Embed(ctx context.Context, text string) ([]float64, bool)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, []bool)
	Complete(ctx context.Context, prompt string, opts llm.CompletionOptions) (string, error)
}

// Answerer synthesizes grounded answers from a session's indexed content.
type Answerer struct {
	store    *store.SessionStore
	provider LLMProvider

	topK              int
	threshold         float64
	shortContextWords int
	maxOutputTokens   int
}

// NewAnswerer creates an Answerer over the given store and provider.
func NewAnswerer(sessionStore *store.SessionStore, provider LLMProvider, cfg *config.Config) *Answerer {
	return &Answerer{
		store:             sessionStore,
		provider:          provider,
		topK:              cfg.TopK,
		threshold:         cfg.SimilarityThreshold,
		shortContextWords: cfg.ShortContextWords,
		maxOutputTokens:   cfg.MaxOutputTokens,
	}
}

// Answer produces a grounded answer for the query from the session's index.
// It never returns an error: input problems and internal failures both come
// back as result objects.
func (a *Answerer) Answer(ctx context.Context, query, sessionID string) (result models.AnswerResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Answerer] Panic during answer generation: %v", r)
			result = models.AnswerResult{
				Success: false,
				Message: "An error occurred while generating the response. Please try again.",
			}
		}
	}()

	if !a.store.HasDocuments(sessionID) {
		log.Printf("[Answerer] Session %s has no indexed documents", sessionID)
		return models.AnswerResult{
			Success: false,
			Message: "No documents uploaded. Please upload documents first.",
		}
	}

	relevant := a.findRelevant(ctx, query, sessionID)

	var filtered []models.RetrievalResult
	for _, r := range relevant {
		if r.Similarity >= a.threshold {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) == 0 {
		// Nothing relevant enough to ground an answer on: refuse without
		// paying for (and risking) a hallucinated completion.
		return models.AnswerResult{
			Success:       true,
			Answer:        RefusalAnswer,
			HasAnswer:     false,
			Sources:       "",
			SourceDetails: []models.SourceDetail{},
		}
	}

	context, sources := assembleContext(filtered)
	targetLength := targetAnswerLength(context, a.shortContextWords)
	prompt := buildAnswerPrompt(context, query, targetLength)

	answer, err := a.provider.Complete(ctx, prompt, llm.DefaultCompletionOptions(a.maxOutputTokens))
	if err != nil || answer == "" {
		if err != nil {
			log.Printf("[Answerer] Completion failed, returning refusal: %v", err)
		}
		answer = RefusalAnswer
	}

	hasAnswer := !containsNegativePhrase(answer)

	result = models.AnswerResult{
		Success:       true,
		Answer:        answer,
		HasAnswer:     hasAnswer,
		Sources:       "",
		SourceDetails: []models.SourceDetail{},
	}
	if hasAnswer {
		result.Sources = strings.Join(sources, ", ")
		for _, r := range filtered {
			result.SourceDetails = append(result.SourceDetails, models.SourceDetail{
				Source:     r.Chunk.Source,
				Page:       r.Chunk.PageNumber,
				Similarity: r.Similarity,
			})
		}
	}
	return result
}

// findRelevant embeds the query and ranks the session's chunks against it.
func (a *Answerer) findRelevant(ctx context.Context, query, sessionID string) []models.RetrievalResult {
	queryVector, degraded := a.provider.Embed(ctx, query)
	if degraded {
		log.Printf("[Answerer] Query embedding degraded to fallback vector")
	}
	return a.store.Search(sessionID, queryVector, a.topK)
}

// assembleContext concatenates surviving chunks as "Page N: text" blocks and
// collects distinct source names in first-seen order.
func assembleContext(results []models.RetrievalResult) (string, []string) {
	var parts []string
	var sources []string
	seen := make(map[string]bool)

	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Page %d: %s", r.Chunk.PageNumber, r.Chunk.Text))
		if !seen[r.Chunk.Source] {
			seen[r.Chunk.Source] = true
			sources = append(sources, r.Chunk.Source)
		}
	}
	return strings.Join(parts, "\n\n"), sources
}

// targetAnswerLength adapts the requested answer length to the evidence: a
// short context cannot support a long answer without fabrication.
func targetAnswerLength(context string, shortContextWords int) string {
	if len(strings.Fields(context)) < shortContextWords {
		return "between 50 and 150 words"
	}
	return "between 200 and 300 words"
}

func buildAnswerPrompt(context, query, targetLength string) string {
	return fmt.Sprintf(`Answer the user's question using ONLY the information from the document excerpts below.
Follow these rules:
1. If the information is available in the document excerpts, provide a clear and direct answer.
2. If the information is NOT available in the document excerpts, respond ONLY with: %q
3. Do not use external knowledge or make assumptions.
4. Do not mention document excerpts, sources, or page numbers in your answer.
5. Your answer MUST be %s, depending on the available information.

Document excerpts:
%s

Question: %s

Answer:`, RefusalAnswer, targetLength, context, query)
}

func containsNegativePhrase(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range negativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
