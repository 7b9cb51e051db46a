package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Generate sends a single prompt to the model and returns the response
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateStream sends a prompt and invokes onFragment for every text
	// fragment as it arrives. Returns when the model signals completion, the
	// context is cancelled, or onFragment returns an error.
	GenerateStream(ctx context.Context, prompt string, onFragment func(fragment string) error, options ...Option) error
}
