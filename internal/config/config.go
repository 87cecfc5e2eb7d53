// ABOUTME: Centralized configuration for the document Q&A engine
// ABOUTME: Loads an optional config.yaml, then environment variables, with validation
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable policy values for the engine.
type Config struct {
	// Ollama settings
	OllamaBaseURL  string
	ChatModel      string
	EmbeddingModel string

	// Timeouts and retries for provider calls
	ProbeTimeout    time.Duration
	EmbedTimeout    time.Duration
	GenerateTimeout time.Duration
	MaxRetries      int
	RetryDelay      time.Duration

	// Retrieval policy
	VectorDimension     int
	TopK                int
	SimilarityThreshold float64

	// Chunking policy: paginated sources get finer chunks because page
	// attribution is available; plain text uses coarser chunks.
	PageChunkSize    int
	PageChunkOverlap int
	DocChunkSize     int
	DocChunkOverlap  int

	// Answer synthesis policy
	ShortContextWords int // context below this requests a 50-150 word answer
	MaxOutputTokens   int

	// Insight generation policy
	InsightChunkLimit   int
	InsightContextChars int
}

// fileConfig mirrors the optional config.yaml layout. Environment variables
// always override file values.
type fileConfig struct {
	Ollama struct {
		BaseURL        string `yaml:"base_url"`
		ChatModel      string `yaml:"chat_model"`
		EmbeddingModel string `yaml:"embedding_model"`
	} `yaml:"ollama"`
	Retrieval struct {
		TopK                int     `yaml:"top_k"`
		SimilarityThreshold float64 `yaml:"similarity_threshold"`
		VectorDimension     int     `yaml:"vector_dimension"`
	} `yaml:"retrieval"`
	Chunking struct {
		PageChunkSize    int `yaml:"page_chunk_size"`
		PageChunkOverlap int `yaml:"page_chunk_overlap"`
		DocChunkSize     int `yaml:"doc_chunk_size"`
		DocChunkOverlap  int `yaml:"doc_chunk_overlap"`
	} `yaml:"chunking"`
}

// Load reads configuration from an optional config.yaml in the working
// directory, then from environment variables, then applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		ChatModel:           getEnv("CHAT_MODEL", "llama3.1:8b"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		ProbeTimeout:        getEnvDuration("OLLAMA_PROBE_TIMEOUT", 5*time.Second),
		EmbedTimeout:        getEnvDuration("OLLAMA_EMBED_TIMEOUT", 30*time.Second),
		GenerateTimeout:     getEnvDuration("OLLAMA_GENERATE_TIMEOUT", 120*time.Second),
		MaxRetries:          getEnvInt("OLLAMA_MAX_RETRIES", 2),
		RetryDelay:          getEnvDuration("OLLAMA_RETRY_DELAY", time.Second),
		VectorDimension:     getEnvInt("VECTOR_DIMENSION", 768),
		TopK:                getEnvInt("RETRIEVAL_TOP_K", 3),
		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.3),
		PageChunkSize:       getEnvInt("PAGE_CHUNK_SIZE", 800),
		PageChunkOverlap:    getEnvInt("PAGE_CHUNK_OVERLAP", 100),
		DocChunkSize:        getEnvInt("DOC_CHUNK_SIZE", 1000),
		DocChunkOverlap:     getEnvInt("DOC_CHUNK_OVERLAP", 200),
		ShortContextWords:   getEnvInt("SHORT_CONTEXT_WORDS", 300),
		MaxOutputTokens:     getEnvInt("MAX_OUTPUT_TOKENS", 3024),
		InsightChunkLimit:   getEnvInt("INSIGHT_CHUNK_LIMIT", 80),
		InsightContextChars: getEnvInt("INSIGHT_CONTEXT_CHARS", 5000),
	}

	if err := applyFile(cfg, "config.yaml"); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// applyFile overlays values from a YAML config file onto defaults, but only
// where the corresponding environment variable is not set.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	setUnlessEnv("OLLAMA_BASE_URL", fc.Ollama.BaseURL, &cfg.OllamaBaseURL)
	setUnlessEnv("CHAT_MODEL", fc.Ollama.ChatModel, &cfg.ChatModel)
	setUnlessEnv("EMBEDDING_MODEL", fc.Ollama.EmbeddingModel, &cfg.EmbeddingModel)
	setIntUnlessEnv("RETRIEVAL_TOP_K", fc.Retrieval.TopK, &cfg.TopK)
	setIntUnlessEnv("VECTOR_DIMENSION", fc.Retrieval.VectorDimension, &cfg.VectorDimension)
	if fc.Retrieval.SimilarityThreshold != 0 && os.Getenv("SIMILARITY_THRESHOLD") == "" {
		cfg.SimilarityThreshold = fc.Retrieval.SimilarityThreshold
	}
	setIntUnlessEnv("PAGE_CHUNK_SIZE", fc.Chunking.PageChunkSize, &cfg.PageChunkSize)
	setIntUnlessEnv("PAGE_CHUNK_OVERLAP", fc.Chunking.PageChunkOverlap, &cfg.PageChunkOverlap)
	setIntUnlessEnv("DOC_CHUNK_SIZE", fc.Chunking.DocChunkSize, &cfg.DocChunkSize)
	setIntUnlessEnv("DOC_CHUNK_OVERLAP", fc.Chunking.DocChunkOverlap, &cfg.DocChunkOverlap)

	return nil
}

func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OLLAMA_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.PageChunkSize <= c.PageChunkOverlap {
		return fmt.Errorf("PAGE_CHUNK_SIZE (%d) must exceed PAGE_CHUNK_OVERLAP (%d)", c.PageChunkSize, c.PageChunkOverlap)
	}
	if c.DocChunkSize <= c.DocChunkOverlap {
		return fmt.Errorf("DOC_CHUNK_SIZE (%d) must exceed DOC_CHUNK_OVERLAP (%d)", c.DocChunkSize, c.DocChunkOverlap)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func setUnlessEnv(envKey, fileVal string, dst *string) {
	if fileVal != "" && os.Getenv(envKey) == "" {
		*dst = fileVal
	}
}

func setIntUnlessEnv(envKey string, fileVal int, dst *int) {
	if fileVal != 0 && os.Getenv(envKey) == "" {
		*dst = fileVal
	}
}
