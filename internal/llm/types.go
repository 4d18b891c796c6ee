package llm

import "context"

// Completer generates a free-text completion for a prompt. Implementations
// return an error for transport-level failures; callers decide whether to
// degrade or fall back.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// WithModel overrides the configured model for a single call.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens caps the completion length for a single call.
func WithMaxTokens(n int64) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}
