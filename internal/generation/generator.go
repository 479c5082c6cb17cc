// Package generation provides language model clients for answer generation.
package generation

import "context"

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
