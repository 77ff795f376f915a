// Package chat defines the chat-completion capability the engine is built on
// and the generation logic layered on top of it: per-slide text variations
// with a uniqueness guarantee, and a one-shot caption.
//
// The Completer contract is deliberately narrow. The engine does not carry a
// general LLM client; it needs exactly one operation — send a prompt at a
// given temperature and token budget, get back text plus usage metadata —
// and every call site funnels the usage into the run's cost tracker.
package chat

import (
	"context"
	"strings"

	"github.com/commentscout/carousel-engine/internal/cost"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// RoleUser is the only role the engine sends; templates are single-turn.
const RoleUser = "user"

// Request describes one chat-completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completion is the result of one chat-completion call. Usage is nil when the
// provider response omitted usage metadata; such calls are still counted by
// the cost tracker but contribute no tokens or cost.
type Completion struct {
	Text  string
	Usage *cost.Usage
}

// Completer is the chat-completion capability. Implementations block until
// the provider responds and must honor context cancellation.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// userRequest builds a single-turn request for the given prompt.
func userRequest(model, prompt string, temperature float64, maxTokens int) Request {
	return Request{
		Model:       model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// cleanResponse trims whitespace and surrounding quote characters from a
// model response. Models frequently wrap short rewrites in quotes; two
// responses differing only in quoting are the same variant.
func cleanResponse(text string) string {
	return strings.Trim(strings.TrimSpace(text), `"'`)
}
