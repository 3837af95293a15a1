package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// generation is one immutable-after-promote set of embedded chunks.
type generation struct {
	dimension int
	texts     []string
	vectors   [][]float32
}

// MemoryStore is an in-memory brute-force cosine similarity store. It is the
// default backend: index state is ephemeral and rebuilt on every ingest.
type MemoryStore struct {
	mu      sync.RWMutex
	active  *generation
	staging *generation
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Init starts a fresh staging generation, leaving the active one queryable.
func (s *MemoryStore) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staging = &generation{dimension: dimension}
	return nil
}

// Upsert appends chunks to the staging generation in order.
func (s *MemoryStore) Upsert(_ context.Context, texts []string, vectors [][]float32) error {
	if len(texts) != len(vectors) {
		return errors.New("texts and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staging == nil {
		return errors.New("store not initialized")
	}
	for _, v := range vectors {
		if len(v) != s.staging.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.staging.texts = append(s.staging.texts, texts...)
	s.staging.vectors = append(s.staging.vectors, vectors...)
	return nil
}

// Promote swaps staging in as the active generation.
func (s *MemoryStore) Promote(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staging == nil {
		return errors.New("nothing staged to promote")
	}
	s.active = s.staging
	s.staging = nil
	return nil
}

// Search ranks all active-generation chunks by cosine similarity to the
// query vector. Equal scores keep insertion order, earlier chunks first.
func (s *MemoryStore) Search(_ context.Context, vector []float32, topK int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	if s.active == nil {
		return nil, nil
	}

	idxs := make([]int, len(s.active.vectors))
	scores := make([]float64, len(s.active.vectors))
	for i := range s.active.vectors {
		idxs[i] = i
		scores[i] = CosineSimilarity(s.active.vectors[i], vector)
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return scores[idxs[a]] > scores[idxs[b]]
	})

	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]SearchResult, 0, topK)
	for _, i := range idxs[:topK] {
		results = append(results, SearchResult{Text: s.active.texts[i], Score: scores[i]})
	}
	return results, nil
}

// Count reports the number of chunks in the active generation.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return 0, nil
	}
	return len(s.active.texts), nil
}

// Clear discards both generations.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	s.staging = nil
	return nil
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
