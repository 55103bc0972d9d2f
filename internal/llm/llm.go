// Package llm defines the completion port the agent pipeline talks to and an
// Anthropic-backed implementation of it. Pipeline code depends only on
// Provider so tests can substitute a canned model.
package llm

import (
	"context"
	"strings"
)

// Message is one turn of a model conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider produces a text completion for a system prompt and message list.
type Provider interface {
	Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error)
}

// StripFences removes a surrounding markdown code fence from model output.
// Models often wrap JSON in ```json ... ``` despite instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
