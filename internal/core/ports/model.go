package ports

import (
	"context"
	"errors"
)

// ErrModelUnavailable indicates the generative model errored or returned
// no usable text. Adapters wrap it so callers can match with errors.Is.
var ErrModelUnavailable = errors.New("model unavailable")

// ModelProvider wraps a single synchronous call to the generative model.
type ModelProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
