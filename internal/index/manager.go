// Package index owns the lifecycle of the active vector index: it embeds
// transcript chunks in rate-limited batches, builds each ingest into a fresh
// generation and serves similarity lookups over the current one.
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jamesfarrell.me/video-twin/internal/embedding"
	"jamesfarrell.me/video-twin/internal/vectorstore"
)

const (
	// DefaultBatchSize balances embedding throughput against provider
	// rate limits.
	DefaultBatchSize = 20

	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 4

	// DefaultBatchInterval is the cool-down between successful batches,
	// keeping steady-state throughput under provider limits even when no
	// rate-limit signal was observed.
	DefaultBatchInterval = time.Second

	// maxBatchAttempts bounds rate-limit retries per batch.
	maxBatchAttempts = 5

	// backoffBase is the first retry delay; it doubles per attempt.
	backoffBase = 2 * time.Second
)

// ErrIndexNotReady is returned by Retrieve before any successful rebuild.
var ErrIndexNotReady = errors.New("vector index not initialized")

// Config tunes a Manager. Zero values select the defaults above.
type Config struct {
	BatchSize     int
	TopK          int
	BatchInterval time.Duration
}

// Manager embeds chunks into the vector store and serves retrieval. A single
// rebuild is expected at a time; retrievals may run concurrently with a
// rebuild and see the previous generation until the new one is promoted.
type Manager struct {
	embedder  embedding.Embedder
	store     vectorstore.Store
	batchSize int
	topK      int
	limiter   *rate.Limiter

	// sleep is the backoff wait, injectable so tests do not sleep for real.
	sleep func(ctx context.Context, d time.Duration) error

	mu    sync.RWMutex
	ready bool
}

// NewManager creates an index manager over the given embedder and store.
func NewManager(embedder embedding.Embedder, store vectorstore.Store, cfg Config) *Manager {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.BatchInterval <= 0 {
		cfg.BatchInterval = DefaultBatchInterval
	}
	return &Manager{
		embedder:  embedder,
		store:     store,
		batchSize: cfg.BatchSize,
		topK:      cfg.TopK,
		limiter:   rate.NewLimiter(rate.Every(cfg.BatchInterval), 1),
		sleep:     sleepContext,
	}
}

// Rebuild embeds the chunks in batches and atomically replaces the active
// index. A batch rejected by the rate limiter is retried with exponential
// backoff; a batch failing for any other reason is skipped, so the new index
// may hold fewer chunks than were submitted. If no batch succeeds the
// previous index stays authoritative and an error is returned.
func (m *Manager) Rebuild(ctx context.Context, chunks []string) error {
	if len(chunks) == 0 {
		return errors.New("no chunks to index")
	}

	totalBatches := (len(chunks) + m.batchSize - 1) / m.batchSize
	slog.Info("rebuilding index",
		"chunks", len(chunks),
		"batches", totalBatches,
		"model", m.embedder.ModelName())

	var indexed int
	initialized := false
	for i := 0; i < len(chunks); i += m.batchSize {
		if err := m.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rebuild canceled: %w", err)
		}

		end := i + m.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]
		batchNum := i/m.batchSize + 1

		vectors, err := m.embedBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("rebuild canceled: %w", ctx.Err())
			}
			slog.Warn("skipping failed batch",
				"batch", batchNum, "total", totalBatches, "error", err)
			continue
		}

		// The staging generation is created lazily once the vector
		// dimension is known from the first successful batch.
		if !initialized {
			if err := m.store.Init(ctx, len(vectors[0])); err != nil {
				return fmt.Errorf("initializing index storage: %w", err)
			}
			initialized = true
		}
		if err := m.store.Upsert(ctx, batch, vectors); err != nil {
			return fmt.Errorf("storing batch %d: %w", batchNum, err)
		}
		indexed += len(batch)
		slog.Info("indexed batch", "batch", batchNum, "total", totalBatches)
	}

	if indexed == 0 {
		return errors.New("all embedding batches failed, keeping previous index")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Promote(ctx); err != nil {
		return fmt.Errorf("promoting new index: %w", err)
	}
	m.ready = true

	slog.Info("index rebuilt", "chunks", indexed, "submitted", len(chunks))
	return nil
}

// embedBatch embeds one batch, retrying on rate-limit rejections with
// exponential backoff (2s, 4s, 8s, 16s) before giving up. Other errors fail
// the batch immediately.
func (m *Manager) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	for attempt := 0; ; attempt++ {
		vectors, err := m.embedder.Embed(ctx, batch)
		if err == nil {
			return vectors, nil
		}
		if !errors.Is(err, embedding.ErrRateLimited) || attempt == maxBatchAttempts-1 {
			return nil, err
		}

		wait := backoffBase << attempt
		slog.Warn("rate limited, backing off", "wait", wait, "attempt", attempt+1)
		if err := m.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// Retrieve embeds the question and returns the most similar chunks, ordered
// by similarity descending. Fails with ErrIndexNotReady before the first
// successful Rebuild.
func (m *Manager) Retrieve(ctx context.Context, question string) ([]vectorstore.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ready {
		return nil, ErrIndexNotReady
	}

	vectors, err := m.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}
	return m.store.Search(ctx, vectors[0], m.topK)
}

// Ready reports whether a successful rebuild has completed.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Reset discards the active index; Retrieve fails with ErrIndexNotReady
// until the next successful Rebuild.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.ready = false
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
