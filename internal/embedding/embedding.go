// Package embedding converts text into vector representations for
// similarity search.
package embedding

import (
	"context"
	"errors"
)

// ErrRateLimited marks a batch rejected by the provider's rate limiter.
// Callers distinguish it from other failures to decide between backing off
// and giving up on the batch.
var ErrRateLimited = errors.New("embedding provider rate limited")

// Embedder generates one vector per input text, in input order.
type Embedder interface {
	// Embed returns an embedding for each text, in the same order.
	// A rate-limit rejection satisfies errors.Is(err, ErrRateLimited).
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string
}
