package port

import "context"

// Completer abstracts one blocking call to an LLM completion service:
// prompt string in, free-text reply out. Implementations own no retry
// policy; a failed call surfaces immediately.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
