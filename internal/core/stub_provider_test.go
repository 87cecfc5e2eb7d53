// ABOUTME: Stub LLM provider for core tests
// ABOUTME: Deterministic embeddings and scriptable completions, no network

package core

import (
	"context"
	"strings"
	"sync"

	"github.com/Harshs0891/ChatWithDoc/internal/llm"
)

// stubProvider implements Provider with deterministic behavior. The default
// embedding is a letter-frequency vector, so identical texts embed
// identically and similarity is reproducible.
type stubProvider struct {
	mu sync.Mutex

	embedFn    func(text string) ([]float64, bool)
	completeFn func(prompt string) (string, error)

	connectionOK bool
	embeddingOK  bool

	embedCalls    int
	completeCalls int
	prompts       []string
}

func newStubProvider() *stubProvider {
	return &stubProvider{connectionOK: true, embeddingOK: true}
}

// letterFrequencyVector embeds text as counts of 'a'..'z'. Verbatim matches
// yield cosine similarity 1.0.
func letterFrequencyVector(text string) []float64 {
	vec := make([]float64, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec
}

func (s *stubProvider) Embed(ctx context.Context, text string) ([]float64, bool) {
	s.mu.Lock()
	s.embedCalls++
	s.mu.Unlock()
	if s.embedFn != nil {
		return s.embedFn(text)
	}
	return letterFrequencyVector(text), false
}

func (s *stubProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float64, []bool) {
	vectors := make([][]float64, len(texts))
	degraded := make([]bool, len(texts))
	for i, t := range texts {
		vectors[i], degraded[i] = s.Embed(ctx, t)
	}
	return vectors, degraded
}

func (s *stubProvider) Complete(ctx context.Context, prompt string, opts llm.CompletionOptions) (string, error) {
	s.mu.Lock()
	s.completeCalls++
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.completeFn != nil {
		return s.completeFn(prompt)
	}
	return "A generated answer grounded in the excerpts.", nil
}

func (s *stubProvider) CheckConnection(ctx context.Context) bool {
	return s.connectionOK
}

func (s *stubProvider) CheckEmbeddingModel(ctx context.Context) bool {
	return s.embeddingOK
}

func (s *stubProvider) completions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeCalls
}

func (s *stubProvider) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}
