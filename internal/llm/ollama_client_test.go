// ABOUTME: Tests for the Ollama client against a stub HTTP server
// ABOUTME: Covers embeddings, fallback vectors, completions, and liveness probes

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		OllamaBaseURL:   baseURL,
		ChatModel:       "llama3.1:8b",
		EmbeddingModel:  "nomic-embed-text",
		VectorDimension: 8,
		ProbeTimeout:    2 * time.Second,
		EmbedTimeout:    2 * time.Second,
		GenerateTimeout: 2 * time.Second,
		MaxRetries:      0,
		RetryDelay:      time.Millisecond,
	}
}

// stubOllama serves the endpoints the client touches. Embedding and chat
// behavior is swappable per test.
func stubOllama(t *testing.T, embed func(w http.ResponseWriter), chat func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		embed(w)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		chat(w)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func serveEmbedding(vec []float32) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		resp := map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": vec},
			},
			"model": "nomic-embed-text",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func serveChat(content string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		resp := map[string]interface{}{
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func serveError(status int) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		http.Error(w, "boom", status)
	}
}

func TestEmbed_Success(t *testing.T) {
	srv := stubOllama(t, serveEmbedding([]float32{0.1, 0.2, 0.3}), serveChat(""))
	c := NewClient(testConfig(srv.URL))

	vec, degraded := c.Embed(context.Background(), "hello")
	if degraded {
		t.Error("Embed() degraded = true, want false")
	}
	if len(vec) != 3 {
		t.Fatalf("Embed() returned %d dims, want 3", len(vec))
	}
	if vec[1] < 0.199 || vec[1] > 0.201 {
		t.Errorf("vec[1] = %f, want ~0.2", vec[1])
	}
}

func TestEmbed_ProviderErrorFallsBack(t *testing.T) {
	srv := stubOllama(t, serveError(http.StatusInternalServerError), serveChat(""))
	c := NewClient(testConfig(srv.URL))

	vec, degraded := c.Embed(context.Background(), "hello")
	if !degraded {
		t.Error("Embed() degraded = false, want true on provider error")
	}
	if len(vec) != 8 {
		t.Errorf("fallback vector has %d dims, want configured 8", len(vec))
	}
}

func TestEmbed_EmptyResultFallsBack(t *testing.T) {
	srv := stubOllama(t, serveEmbedding(nil), serveChat(""))
	c := NewClient(testConfig(srv.URL))

	vec, degraded := c.Embed(context.Background(), "hello")
	if !degraded {
		t.Error("Embed() degraded = false, want true on empty embedding")
	}
	if len(vec) != 8 {
		t.Errorf("fallback vector has %d dims, want configured 8", len(vec))
	}
}

func TestEmbedBatch_OrderPreserving(t *testing.T) {
	srv := stubOllama(t, serveEmbedding([]float32{1, 2}), serveChat(""))
	c := NewClient(testConfig(srv.URL))

	texts := []string{"a", "b", "c"}
	vectors, degraded := c.EmbedBatch(context.Background(), texts)

	if len(vectors) != len(texts) {
		t.Fatalf("EmbedBatch() returned %d vectors, want %d", len(vectors), len(texts))
	}
	if len(degraded) != len(texts) {
		t.Fatalf("EmbedBatch() returned %d flags, want %d", len(degraded), len(texts))
	}
	for i := range vectors {
		if len(vectors[i]) != 2 {
			t.Errorf("vectors[%d] has %d dims, want 2", i, len(vectors[i]))
		}
		if degraded[i] {
			t.Errorf("degraded[%d] = true, want false", i)
		}
	}
}

func TestComplete_Success(t *testing.T) {
	srv := stubOllama(t, serveEmbedding(nil), serveChat("  The answer is 42.  "))
	c := NewClient(testConfig(srv.URL))

	text, err := c.Complete(context.Background(), "prompt", DefaultCompletionOptions(100))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "The answer is 42." {
		t.Errorf("Complete() = %q, want trimmed answer", text)
	}
}

func TestComplete_ProviderError(t *testing.T) {
	srv := stubOllama(t, serveEmbedding(nil), serveError(http.StatusBadGateway))
	c := NewClient(testConfig(srv.URL))

	if _, err := c.Complete(context.Background(), "prompt", DefaultCompletionOptions(100)); err == nil {
		t.Error("Complete() error = nil, want error on provider failure")
	}
}

func TestCheckConnection(t *testing.T) {
	srv := stubOllama(t, serveEmbedding(nil), serveChat(""))
	c := NewClient(testConfig(srv.URL))

	if !c.CheckConnection(context.Background()) {
		t.Error("CheckConnection() = false, want true")
	}

	srv.Close()
	if c.CheckConnection(context.Background()) {
		t.Error("CheckConnection() = true after server close, want false")
	}
}

func TestCheckEmbeddingModel(t *testing.T) {
	okSrv := stubOllama(t, serveEmbedding([]float32{1, 2, 3}), serveChat(""))
	if !NewClient(testConfig(okSrv.URL)).CheckEmbeddingModel(context.Background()) {
		t.Error("CheckEmbeddingModel() = false, want true")
	}

	// The functional check must not be fooled by the fallback vector path.
	badSrv := stubOllama(t, serveError(http.StatusInternalServerError), serveChat(""))
	if NewClient(testConfig(badSrv.URL)).CheckEmbeddingModel(context.Background()) {
		t.Error("CheckEmbeddingModel() = true on failing provider, want false")
	}
}
