// ABOUTME: Retry utilities for provider calls with exponential backoff
// ABOUTME: Shared by the Ollama client for embeddings and completions
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff bounds the delay between provider retries. Provider calls
// already carry hard timeouts, so long sleeps only delay the fallback path.
const maxBackoff = 15 * time.Second

// Backoff returns the delay before the given retry attempt: exponential in
// the attempt number with random jitter of up to 25% in either direction.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 20 {
		attempt = 20
	}
	backoff := baseDelay << uint(attempt-1)
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
