// ABOUTME: Result models for answer synthesis and insight generation
// ABOUTME: Every public engine operation returns one of these, never an error
package models

// SourceDetail attributes one surviving context chunk in an answer.
type SourceDetail struct {
	Source     string  `json:"source"`
	Page       int     `json:"page"`
	Similarity float64 `json:"similarity"`
}

// AnswerResult is the outcome of a grounded answer request.
// Success=false means the request itself failed (no documents, internal
// error); HasAnswer=false with Success=true means the documents simply do
// not contain the requested information.
type AnswerResult struct {
	Success       bool           `json:"success"`
	Answer        string         `json:"answer,omitempty"`
	HasAnswer     bool           `json:"has_answer"`
	Message       string         `json:"message,omitempty"`
	Sources       string         `json:"sources"`
	SourceDetails []SourceDetail `json:"source_details"`
}

// InsightResult carries the derived welcome narrative and suggested
// questions for a session's indexed content.
type InsightResult struct {
	Welcome   string   `json:"welcome"`
	Questions []string `json:"questions"`
}
