// Package providers wires the upstream generative-AI adapters behind small
// capability interfaces so the active provider is a configuration choice.
package providers

import "context"

// TextProvider is the capability behind the question-answering operation:
// one prompt in, one free-text completion out. Implementations make exactly
// one HTTP call and never retry.
type TextProvider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
}
