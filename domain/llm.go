package domain

import "context"

// LanguageModel defines the interface for generating text from a prompt.
type LanguageModel interface {
	// GenerateResponse sends the prompt to the model and returns the
	// generated text.
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}
