package llm

import (
	"context"
)

// LLM defines the interface for language model interactions. All three
// decision-pipeline leaves (classification, lead detection, reply
// generation) speak to their backend through this interface so tests
// can substitute fakes.
type LLM interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Option defines functional options for LLM configuration
type Option func(*Options)

// Options holds configuration for LLM calls
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

// DefaultOptions returns the baseline generation options applied
// before per-call overrides
func DefaultOptions() *Options {
	return &Options{
		Temperature: 0.7,
		MaxTokens:   500,
	}
}

// WithTemperature sets the temperature for generation
func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// WithMaxTokens sets the maximum tokens for generation
func WithMaxTokens(tokens int) Option {
	return func(o *Options) {
		o.MaxTokens = tokens
	}
}

// WithModel sets the model to use
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}
