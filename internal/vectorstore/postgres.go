package vectorstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// The two generation tables alternate between active and staging roles.
const (
	chunkTableA = "video_chunks_a"
	chunkTableB = "video_chunks_b"
)

// PostgresStore keeps chunk embeddings in pgvector-enabled Postgres tables.
// Two tables ping-pong between the active and staging roles; Init rebuilds
// the staging table while searches keep hitting the active one, and Promote
// flips the roles. Rows never survive a new ingest.
type PostgresStore struct {
	db *sql.DB

	mu      sync.RWMutex
	active  string // "" until the first Promote
	staging string
}

// NewPostgresStore connects to Postgres and verifies the connection.
func NewPostgresStore(url string) (*PostgresStore, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &PostgresStore{db: db}, nil
}

// Init drops and recreates the staging table for the given vector dimension.
func (s *PostgresStore) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension")
	}

	s.mu.Lock()
	if s.active == chunkTableA {
		s.staging = chunkTableB
	} else {
		s.staging = chunkTableA
	}
	staging := s.staging
	s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("enabling pgvector extension: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, staging)); err != nil {
		return fmt.Errorf("dropping staging table: %w", err)
	}

	create := fmt.Sprintf(`
		CREATE TABLE %s (
			id SERIAL PRIMARY KEY,
			chunk_text TEXT NOT NULL,
			embedding vector(%d) NOT NULL
		)
	`, staging, dimension)
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating staging table: %w", err)
	}
	return nil
}

// Upsert inserts chunks into the staging table in order; serial ids preserve
// insertion order for tie-breaking.
func (s *PostgresStore) Upsert(ctx context.Context, texts []string, vectors [][]float32) error {
	if len(texts) != len(vectors) {
		return fmt.Errorf("texts and vectors length mismatch")
	}
	s.mu.RLock()
	staging := s.staging
	s.mu.RUnlock()
	if staging == "" {
		return fmt.Errorf("store not initialized")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (chunk_text, embedding) VALUES ($1, $2)`, staging))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range texts {
		if _, err := stmt.ExecContext(ctx, texts[i], pgvector.NewVector(vectors[i])); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Promote flips the staging table into the active role.
func (s *PostgresStore) Promote(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staging == "" {
		return fmt.Errorf("nothing staged to promote")
	}
	s.active = s.staging
	s.staging = ""
	return nil
}

// Search runs a cosine-distance nearest-neighbor query over the active
// table, ties broken by insertion order.
func (s *PostgresStore) Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	s.mu.RLock()
	active := s.active
	s.mu.RUnlock()
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	if active == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT chunk_text, 1 - (embedding <=> $1) AS similarity
		FROM %s
		ORDER BY embedding <=> $1, id
		LIMIT $2
	`, active)

	rows, err := s.db.QueryContext(ctx, query, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Text, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count reports the number of chunks in the active table.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	active := s.active
	s.mu.RUnlock()
	if active == "" {
		return 0, nil
	}

	var n int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, active)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Clear drops both generation tables.
func (s *PostgresStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.active = ""
	s.staging = ""
	s.mu.Unlock()

	for _, table := range []string{chunkTableA, chunkTableB} {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("dropping %s: %w", table, err)
		}
	}
	return nil
}

// Close releases the underlying database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
