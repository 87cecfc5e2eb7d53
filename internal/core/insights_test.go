// ABOUTME: Tests for the insight generation cascade
// ABOUTME: Covers parsing, retries, fallbacks, dedupe, and hard guarantees

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Harshs0891/ChatWithDoc/internal/models"
	"github.com/Harshs0891/ChatWithDoc/internal/store"
)

func seedInsightSession(t *testing.T, s *store.SessionStore, sessionID string, n int) {
	t.Helper()
	chunks := make([]models.Chunk, n)
	embeddings := make([][]float64, n)
	for i := range chunks {
		chunks[i] = models.Chunk{
			ChunkID:    fmt.Sprintf("chunk_%d", i),
			Text:       fmt.Sprintf("Section %d covers deployment strategies in depth.", i),
			Source:     "handbook.pdf",
			PageNumber: i + 1,
		}
		embeddings[i] = []float64{1, 0}
	}
	if err := s.Put(sessionID, chunks, embeddings); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate_NoSession(t *testing.T) {
	s := store.NewSessionStore()
	g := NewInsightGenerator(s, newStubProvider(), testCoreConfig())

	result := g.Generate(context.Background(), "ghost", 3)
	if result.Welcome != "" || len(result.Questions) != 0 {
		t.Errorf("Generate(absent session) = %+v, want empty result", result)
	}
}

func TestGenerate_WellFormedCombinedResponse(t *testing.T) {
	s := store.NewSessionStore()
	seedInsightSession(t, s, "sess", 3)

	provider := newStubProvider()
	provider.completeFn = func(string) (string, error) {
		return `WELCOME: This handbook walks you through deployment strategies from planning to rollback.
QUESTIONS:
1. Which deployment strategies does the handbook recommend for high-traffic services?
2. What rollback procedure does section two describe?
3. How does the handbook suggest monitoring canary releases?`, nil
	}

	g := NewInsightGenerator(s, provider, testCoreConfig())
	result := g.Generate(context.Background(), "sess", 3)

	if !strings.Contains(result.Welcome, "deployment strategies") {
		t.Errorf("Welcome = %q, want parsed welcome", result.Welcome)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(result.Questions))
	}
	if result.Questions[0] != "Which deployment strategies does the handbook recommend for high-traffic services?" {
		t.Errorf("Questions[0] = %q, numbering not stripped", result.Questions[0])
	}
	if provider.completions() != 1 {
		t.Errorf("provider called %d times, want 1 for a well-formed response", provider.completions())
	}
}

func TestGenerate_RetriesWhenWelcomeMissing(t *testing.T) {
	s := store.NewSessionStore()
	seedInsightSession(t, s, "sess", 3)

	provider := newStubProvider()
	call := 0
	provider.completeFn = func(prompt string) (string, error) {
		call++
		if call == 1 {
			// Combined attempt: questions parse but the welcome is too short.
			return `WELCOME: hi
QUESTIONS:
1. Which deployment strategies does the handbook recommend overall?
2. What rollback procedure does section two describe?`, nil
		}
		return "This handbook introduces deployment strategies and explains what each chapter covers.", nil
	}

	g := NewInsightGenerator(s, provider, testCoreConfig())
	result := g.Generate(context.Background(), "sess", 3)

	if provider.completions() != 2 {
		t.Errorf("provider called %d times, want 2 (combined + welcome retry)", provider.completions())
	}
	if !strings.Contains(result.Welcome, "introduces deployment strategies") {
		t.Errorf("Welcome = %q, want retried welcome", result.Welcome)
	}
	if len(result.Questions) != 2 {
		t.Errorf("got %d questions, want the 2 from the combined attempt", len(result.Questions))
	}
}

func TestGenerate_RetriesWhenQuestionsMissing(t *testing.T) {
	s := store.NewSessionStore()
	seedInsightSession(t, s, "sess", 3)

	provider := newStubProvider()
	call := 0
	provider.completeFn = func(prompt string) (string, error) {
		call++
		if call == 1 {
			return "WELCOME: This handbook walks you through deployment strategies in detail.\nQUESTIONS:\nnone", nil
		}
		return "1. Which deployment strategy suits stateful workloads according to the text?\n2. What monitoring does the handbook require during rollouts?", nil
	}

	g := NewInsightGenerator(s, provider, testCoreConfig())
	result := g.Generate(context.Background(), "sess", 3)

	if provider.completions() != 2 {
		t.Errorf("provider called %d times, want 2 (combined + questions retry)", provider.completions())
	}
	if len(result.Questions) != 2 {
		t.Fatalf("got %d questions, want 2 from retry", len(result.Questions))
	}
	if !strings.HasSuffix(result.Questions[0], "?") {
		t.Errorf("Questions[0] = %q, want question mark", result.Questions[0])
	}
}

func TestGenerate_TotalProviderFailure(t *testing.T) {
	s := store.NewSessionStore()
	seedInsightSession(t, s, "sess", 3)

	provider := newStubProvider()
	provider.completeFn = func(string) (string, error) {
		return "", errors.New("provider down")
	}

	g := NewInsightGenerator(s, provider, testCoreConfig())
	result := g.Generate(context.Background(), "sess", 3)

	if result.Welcome == "" {
		t.Error("Welcome is empty, want templated fallback")
	}
	if !strings.Contains(result.Welcome, "handbook.pdf") {
		t.Errorf("Welcome = %q, want templated welcome naming the source", result.Welcome)
	}
	if len(result.Questions) < 2 {
		t.Errorf("got %d questions, want at least 2 under total failure", len(result.Questions))
	}
	for i, q := range result.Questions {
		if !strings.Contains(q, "?") {
			t.Errorf("Questions[%d] = %q, missing question mark", i, q)
		}
	}
}

func TestGenerate_MalformedResponsesEveryCall(t *testing.T) {
	s := store.NewSessionStore()
	seedInsightSession(t, s, "sess", 3)

	provider := newStubProvider()
	provider.completeFn = func(string) (string, error) {
		return "complete nonsense with no structure at all", nil
	}

	g := NewInsightGenerator(s, provider, testCoreConfig())

	for _, count := range []int{1, 2, 3, 5} {
		result := g.Generate(context.Background(), "sess", count)
		if result.Welcome == "" {
			t.Errorf("count=%d: empty welcome", count)
		}
		want := count
		if want > 2 {
			want = 2
		}
		if len(result.Questions) < want {
			t.Errorf("count=%d: got %d questions, want at least %d", count, len(result.Questions), want)
		}
		if len(result.Questions) > count {
			t.Errorf("count=%d: got %d questions, exceeds requested count", count, len(result.Questions))
		}
	}
}

func TestGenerate_TruncatesToCount(t *testing.T) {
	s := store.NewSessionStore()
	seedInsightSession(t, s, "sess", 3)

	provider := newStubProvider()
	provider.completeFn = func(string) (string, error) {
		return `WELCOME: This handbook walks you through deployment strategies in detail.
QUESTIONS:
1. Which deployment strategy suits stateless services in the handbook?
2. What rollback procedure does the handbook describe for failures?
3. Which monitoring tools does the handbook name for canary rollouts?
4. What capacity planning guidance appears in the appendix section?
5. Which chapters discuss incident response processes most directly?`, nil
	}

	g := NewInsightGenerator(s, provider, testCoreConfig())
	result := g.Generate(context.Background(), "sess", 2)

	if len(result.Questions) != 2 {
		t.Errorf("got %d questions, want truncation to 2", len(result.Questions))
	}
}

func TestParseNumberedLines(t *testing.T) {
	text := `1. First real question about the document content?
2) Second question with a parenthesis marker?
not a numbered line
3. Short?
1. First real question about the document content?`

	questions := parseNumberedLines(text)

	want := []string{
		"First real question about the document content?",
		"Second question with a parenthesis marker?",
	}
	if len(questions) != len(want) {
		t.Fatalf("parseNumberedLines() = %v, want %v", questions, want)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("questions[%d] = %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestFinalizeQuestions_DedupeAndFilter(t *testing.T) {
	questions := []string{
		"Which chapters discuss incident response processes?",
		"WHICH CHAPTERS DISCUSS INCIDENT RESPONSE PROCESSES?",
		"Can you summarize everything here for me quickly?", // generic prefix
		"Why so short",
		"What does the appendix say about capacity planning",
	}

	final := finalizeQuestions(questions, 5)

	if len(final) != 2 {
		t.Fatalf("finalizeQuestions() = %v, want 2 surviving questions", final)
	}
	if final[0] != "Which chapters discuss incident response processes?" {
		t.Errorf("final[0] = %q", final[0])
	}
	if final[1] != "What does the appendix say about capacity planning?" {
		t.Errorf("final[1] = %q, want repaired question mark", final[1])
	}
}
