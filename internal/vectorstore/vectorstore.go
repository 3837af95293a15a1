// Package vectorstore provides storage backends for embedded transcript
// chunks with nearest-neighbor search.
//
// A store holds up to two generations of chunks: the active generation,
// which serves searches, and a staging generation being built by an
// in-progress ingest. Promote atomically replaces the active generation with
// staging, so a search never observes a half-built index.
package vectorstore

import "context"

// SearchResult is a retrieved chunk with its similarity score.
type SearchResult struct {
	Text  string
	Score float64
}

// Store holds embedded chunks and serves similarity lookups over the active
// generation.
type Store interface {
	// Init starts a new staging generation for vectors of the given
	// dimension, discarding any stale staging artifacts from a prior run.
	// The active generation is untouched.
	Init(ctx context.Context, dimension int) error

	// Upsert appends chunks to the staging generation; insertion order is
	// preserved and used for deterministic tie-breaking in Search.
	Upsert(ctx context.Context, texts []string, vectors [][]float32) error

	// Promote atomically makes the staging generation the active one.
	Promote(ctx context.Context) error

	// Search returns up to topK active-generation chunks ordered by
	// similarity descending, ties broken by insertion order. topK must be
	// positive.
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)

	// Count reports the number of chunks in the active generation.
	Count(ctx context.Context) (int, error)

	// Clear discards both generations.
	Clear(ctx context.Context) error
}
