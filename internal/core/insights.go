// ABOUTME: Insight generation deriving a welcome narrative and suggested questions
// ABOUTME: Runs a staged cascade with narrower retries and static fallbacks
package core

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/llm"
	"github.com/Harshs0891/ChatWithDoc/internal/models"
	"github.com/Harshs0891/ChatWithDoc/internal/store"
)

const (
	// minWelcomeLength is the usability bar for a generated welcome.
	minWelcomeLength = 20
	// minQuestions is the lower bound the cascade guarantees (capped by count).
	minQuestions = 2
	// minQuestionLength rejects trivially short questions.
	minQuestionLength = 15
)

// fallbackQuestions top up the result when generation cannot produce enough
// usable questions.
var fallbackQuestions = []string{
	"What are the main topics and key points covered in this document?",
	"Can you summarize the most important information presented?",
	"What specific details or findings should I pay attention to?",
	"How is the information in this document organized or structured?",
}

// genericPrefixes mark questions too generically phrased to keep when
// better ones exist.
var genericPrefixes = []string{"can you", "what are", "how is"}

var numberedPrefix = regexp.MustCompile(`^\d+[.)]\s*`)

// insightStage enumerates the generation cascade. Stages only ever advance,
// so the cascade terminates after at most four provider-facing steps.
type insightStage int

const (
	stageCombined insightStage = iota
	stageWelcomeRetry
	stageQuestionsRetry
	stageFallback
	stageDone
)

// InsightGenerator derives a welcome summary and suggested questions from a
// session's indexed content. It works from stored chunks, not a query.
type InsightGenerator struct {
	store    *store.SessionStore
	provider LLMProvider

	chunkLimit      int
	contextChars    int
	maxOutputTokens int
}

// NewInsightGenerator creates an InsightGenerator over the given store and
// provider.
func NewInsightGenerator(sessionStore *store.SessionStore, provider LLMProvider, cfg *config.Config) *InsightGenerator {
	return &InsightGenerator{
		store:           sessionStore,
		provider:        provider,
		chunkLimit:      cfg.InsightChunkLimit,
		contextChars:    cfg.InsightContextChars,
		maxOutputTokens: cfg.MaxOutputTokens,
	}
}

// Generate returns a welcome message and up to count suggested questions.
// For sessions with indexed content the result always has a non-empty
// welcome and at least min(count, 2) questions, even under total provider
// failure. A session without an index yields an empty result.
func (g *InsightGenerator) Generate(ctx context.Context, sessionID string, count int) (result models.InsightResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Insights] Panic during generation: %v", r)
			result = staticFallback(count)
		}
	}()

	index, ok := g.store.Get(sessionID)
	if !ok || len(index.Chunks) == 0 {
		return models.InsightResult{Welcome: "", Questions: []string{}}
	}

	docContext, sourceName := g.buildContext(index.Chunks)

	var welcome string
	var questions []string

	for stage := stageCombined; stage != stageDone; {
		switch stage {
		case stageCombined:
			welcome, questions = g.combinedAttempt(ctx, docContext)
			switch {
			case needWelcome(welcome):
				stage = stageWelcomeRetry
			case needQuestions(questions):
				stage = stageQuestionsRetry
			default:
				stage = stageFallback
			}

		case stageWelcomeRetry:
			if retried := g.welcomeRetry(ctx, docContext); !needWelcome(retried) {
				welcome = retried
			}
			if needQuestions(questions) {
				stage = stageQuestionsRetry
			} else {
				stage = stageFallback
			}

		case stageQuestionsRetry:
			if retried := g.questionsRetry(ctx, docContext); len(retried) > 0 {
				questions = retried
			}
			stage = stageFallback

		case stageFallback:
			if needWelcome(welcome) {
				welcome = templatedWelcome(sourceName)
			}
			if needQuestions(questions) {
				questions = append(questions, fallbackQuestions[:4-len(questions)]...)
			}
			stage = stageDone
		}
	}

	return models.InsightResult{
		Welcome:   welcome,
		Questions: finalizeQuestions(questions, count),
	}
}

// Transition predicates for the cascade.
func needWelcome(welcome string) bool {
	return len(strings.TrimSpace(welcome)) < minWelcomeLength
}

func needQuestions(questions []string) bool {
	return len(questions) < minQuestions
}

// buildContext samples the session's leading chunks into one capped context
// string and picks the first source name for templated fallbacks.
func (g *InsightGenerator) buildContext(chunks []models.Chunk) (string, string) {
	limit := g.chunkLimit
	if limit > len(chunks) {
		limit = len(chunks)
	}

	samples := make([]string, 0, limit)
	for _, c := range chunks[:limit] {
		samples = append(samples, c.Text)
	}

	docContext := strings.Join(samples, "\n\n")
	if len(docContext) > g.contextChars {
		docContext = docContext[:g.contextChars]
	}

	sourceName := "document"
	if chunks[0].Source != "" {
		sourceName = chunks[0].Source
	}
	return docContext, sourceName
}

// combinedAttempt issues the single prompt asking for both the welcome and
// the questions in a fixed labeled format.
func (g *InsightGenerator) combinedAttempt(ctx context.Context, docContext string) (string, []string) {
	prompt := fmt.Sprintf(`Based ONLY on the document content below, create:
1. Write a warm, professional, and detailed welcome message that introduces the purpose, scope, and structure of this document. The message should clearly explain what the document is about and what the reader can expect to learn or find within it.
2. 3-5 specific questions that can be answered from this document

Document content:
%s

Respond in this EXACT format:
WELCOME: [your welcome message here]
QUESTIONS:
1. [question 1]
2. [question 2]
3. [question 3]`, docContext)

	response, err := g.provider.Complete(ctx, prompt, llm.DefaultCompletionOptions(g.maxOutputTokens))
	if err != nil {
		log.Printf("[Insights] Combined attempt failed: %v", err)
		return "", nil
	}
	return parseCombined(response)
}

// welcomeRetry issues a narrower prompt for the welcome alone.
func (g *InsightGenerator) welcomeRetry(ctx context.Context, docContext string) string {
	prompt := fmt.Sprintf(`Based ONLY on the document content below, write a warm, professional, and detailed welcome message that:
- Introduces the purpose and scope of this document
- Explains what the document is about
- Describes what the reader can expect to learn or find within it
- Mentions the structure or key sections

Document content:
%s

Respond with ONLY the welcome message, no labels or formatting:`, capString(docContext, 3000))

	response, err := g.provider.Complete(ctx, prompt, llm.DefaultCompletionOptions(g.maxOutputTokens))
	if err != nil {
		log.Printf("[Insights] Welcome retry failed: %v", err)
		return ""
	}
	return strings.TrimSpace(response)
}

// questionsRetry issues a narrower prompt for the questions alone.
func (g *InsightGenerator) questionsRetry(ctx context.Context, docContext string) []string {
	prompt := fmt.Sprintf(`Based ONLY on the document content below, generate 3-5 specific questions that can be answered directly from the content. Make them diverse and cover different aspects.

Document content:
%s

Respond with ONLY the questions in this exact format:
1. [specific question about document content]
2. [specific question about document content]
3. [specific question about document content]`, capString(docContext, 3000))

	response, err := g.provider.Complete(ctx, prompt, llm.DefaultCompletionOptions(g.maxOutputTokens))
	if err != nil {
		log.Printf("[Insights] Questions retry failed: %v", err)
		return nil
	}
	return parseNumberedLines(response)
}

// parseCombined splits a combined response on the QUESTIONS: marker and
// extracts both parts.
func parseCombined(response string) (string, []string) {
	if !strings.Contains(response, "WELCOME:") || !strings.Contains(response, "QUESTIONS:") {
		return "", nil
	}

	parts := strings.SplitN(response, "QUESTIONS:", 2)
	welcome := strings.TrimSpace(strings.Replace(parts[0], "WELCOME:", "", 1))
	return welcome, parseNumberedLines(parts[1])
}

// parseNumberedLines extracts questions from numbered lines, detected by a
// digit within the first three characters, stripping the numbering.
func parseNumberedLines(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !hasLeadingDigit(line) {
			continue
		}
		question := strings.TrimSpace(numberedPrefix.ReplaceAllString(line, ""))
		if len(question) > 10 && !containsString(questions, question) {
			questions = append(questions, question)
		}
	}
	return questions
}

func hasLeadingDigit(line string) bool {
	limit := 3
	if len(line) < limit {
		limit = len(line)
	}
	for _, r := range line[:limit] {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// finalizeQuestions deduplicates case-insensitively, rejects trivially short
// or generically phrased questions, truncates to count, and repairs missing
// question marks. If filtering leaves fewer than minQuestions, the unfiltered
// list is used instead so the caller still gets something to offer.
func finalizeQuestions(questions []string, count int) []string {
	var unique []string
	seen := make(map[string]bool)
	for _, q := range questions {
		lower := strings.ToLower(q)
		if len(q) <= minQuestionLength || seen[lower] || hasGenericPrefix(lower) {
			continue
		}
		seen[lower] = true
		unique = append(unique, q)
	}

	if len(unique) < minQuestions {
		unique = questions
		if len(unique) > count {
			unique = unique[:count]
		}
	}

	final := make([]string, 0, count)
	for _, q := range unique {
		if len(final) == count {
			break
		}
		q = strings.TrimSpace(q)
		if !strings.Contains(q, "?") {
			q += "?"
		}
		final = append(final, q)
	}
	return final
}

func hasGenericPrefix(lowerQuestion string) bool {
	for _, prefix := range genericPrefixes {
		if strings.HasPrefix(lowerQuestion, prefix) {
			return true
		}
	}
	return false
}

func templatedWelcome(sourceName string) string {
	return fmt.Sprintf("I've analyzed your document '%s' and I'm ready to help you explore its content. This document contains valuable information that I can help you understand and discuss.", sourceName)
}

// staticFallback is the last resort when generation itself fails.
func staticFallback(count int) models.InsightResult {
	questions := []string{
		"What are the main topics discussed in this document?",
		"Can you summarize the key points and important information?",
		"What specific details or findings should I know about?",
	}
	if count < len(questions) {
		questions = questions[:count]
	}
	return models.InsightResult{
		Welcome:   "I've processed your document and I'm ready to help answer questions about its content.",
		Questions: questions,
	}
}

func capString(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// containsString checks if a slice contains a string.
func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
