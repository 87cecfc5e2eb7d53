// ABOUTME: Ollama client for embeddings and grounded chat completions
// ABOUTME: Speaks the OpenAI-compatible API via go-openai, with native liveness probes
package llm

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionOptions tunes a single chat completion call.
type CompletionOptions struct {
	Temperature float32
	TopP        float32
	MaxTokens   int
	Stop        []string
}

// DefaultCompletionOptions matches the generation settings used for grounded
// answers: deterministic-leaning sampling with a bounded output ceiling.
func DefaultCompletionOptions(maxTokens int) CompletionOptions {
	return CompletionOptions{
		Temperature: 0.5,
		TopP:        0.9,
		MaxTokens:   maxTokens,
		Stop:        []string{"Human:", "Assistant:", "Document excerpts:", "Question:"},
	}
}

// Client wraps an Ollama server. Chat and embedding calls go through the
// OpenAI-compatible /v1 endpoint; the liveness probe hits the native
// /api/tags endpoint, which go-openai does not cover.
type Client struct {
	api            *openai.Client
	httpClient     *http.Client
	baseURL        string
	chatModel      string
	embeddingModel string
	vectorDim      int

	embedTimeout    time.Duration
	generateTimeout time.Duration
	probeTimeout    time.Duration
	maxRetries      int
	retryDelay      time.Duration
}

// NewClient creates a Client from configuration.
func NewClient(cfg *config.Config) *Client {
	apiCfg := openai.DefaultConfig("ollama") // Ollama ignores the token
	apiCfg.BaseURL = strings.TrimRight(cfg.OllamaBaseURL, "/") + "/v1"

	return &Client{
		api:             openai.NewClientWithConfig(apiCfg),
		httpClient:      &http.Client{},
		baseURL:         strings.TrimRight(cfg.OllamaBaseURL, "/"),
		chatModel:       cfg.ChatModel,
		embeddingModel:  cfg.EmbeddingModel,
		vectorDim:       cfg.VectorDimension,
		embedTimeout:    cfg.EmbedTimeout,
		generateTimeout: cfg.GenerateTimeout,
		probeTimeout:    cfg.ProbeTimeout,
		maxRetries:      cfg.MaxRetries,
		retryDelay:      cfg.RetryDelay,
	}
}

// CheckConnection issues a lightweight liveness probe against the native
// Ollama tag listing endpoint.
func (c *Client) CheckConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// CheckEmbeddingModel verifies the embedding model by performing one real
// embedding call and checking a non-empty vector comes back. This is a
// functional check, not a metadata query: a model listed by the server but
// unable to serve requests fails it.
func (c *Client) CheckEmbeddingModel(ctx context.Context) bool {
	vec, err := c.embedOnce(ctx, "test")
	return err == nil && len(vec) > 0
}

// Embed converts text into a fixed-length vector. On provider failure it
// returns a pseudo-random vector and degraded=true instead of an error, so
// indexing survives transient embedding-service outages at the cost of
// retrieval quality for the affected chunk.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, bool) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		vec, err := c.embedOnce(ctx, text)
		if err != nil {
			lastErr = err
			continue
		}
		return vec, false
	}

	log.Printf("[LLM] Embedding failed, using fallback vector: %v", lastErr)
	return c.fallbackVector(), true
}

// EmbedBatch embeds each text in order. The returned vectors are one-to-one
// and positionally aligned with the input; degraded[i] reports whether
// vectors[i] is a fallback.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, []bool) {
	vectors := make([][]float64, len(texts))
	degraded := make([]bool, len(texts))
	for i, text := range texts {
		vectors[i], degraded[i] = c.Embed(ctx, text)
	}
	return vectors, degraded
}

// embedOnce performs a single embedding call with a hard timeout.
func (c *Client) embedOnce(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.embedTimeout)
	defer cancel()

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}

	embedding32 := resp.Data[0].Embedding
	embedding64 := make([]float64, len(embedding32))
	for i, v := range embedding32 {
		embedding64[i] = float64(v)
	}
	return embedding64, nil
}

// fallbackVector returns a pseudo-random normally distributed vector of the
// configured dimension.
func (c *Client) fallbackVector() []float64 {
	vec := make([]float64, c.vectorDim)
	for i := range vec {
		vec[i] = rand.NormFloat64()
	}
	return vec
}

// Complete runs a chat completion and returns the trimmed response text.
// Callers decide how to degrade on error; answer synthesis substitutes the
// canned refusal sentence.
func (c *Client) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		text, err := c.completeOnce(ctx, prompt, opts)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
		Stop:        opts.Stop,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
