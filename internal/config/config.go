// Package config loads service configuration from an optional yaml file,
// applying defaults for anything unset. Secrets come from the environment,
// never from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig controls transcript splitting.
type ChunkerConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Overlap   int `yaml:"overlap"`
}

// IndexConfig controls batch embedding and retrieval.
type IndexConfig struct {
	BatchSize         int `yaml:"batch_size"`
	TopK              int `yaml:"top_k"`
	BatchIntervalSecs int `yaml:"batch_interval_secs"`
}

// VectorStoreConfig selects the index backend.
type VectorStoreConfig struct {
	// Type is "memory" (default, ephemeral) or "postgres" (pgvector).
	Type string `yaml:"type"`
}

// ModelsConfig names the provider models.
type ModelsConfig struct {
	Embedding string `yaml:"embedding"`
	Chat      string `yaml:"chat"`
}

// Config is the root service configuration.
type Config struct {
	Addr        string            `yaml:"addr"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Index       IndexConfig       `yaml:"index"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Models      ModelsConfig      `yaml:"models"`
}

// Load reads a config from path. A missing file yields the defaults; an
// empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// BatchInterval returns the inter-batch cool-down as a duration.
func (c *Config) BatchInterval() time.Duration {
	return time.Duration(c.Index.BatchIntervalSecs) * time.Second
}

// OpenAIKey reads the provider API key from the environment.
func OpenAIKey() (string, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return "", errors.New("OPENAI_API_KEY environment variable must be set")
	}
	return key, nil
}

// DatabaseURL reads the Postgres connection string from the environment.
// Required only for the postgres vector store backend.
func DatabaseURL() (string, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", errors.New("DATABASE_URL environment variable must be set for the postgres vector store")
	}
	return url, nil
}

func defaultConfig() *Config {
	return &Config{
		Addr: ":8080",
		Chunker: ChunkerConfig{
			ChunkSize: 1000,
			Overlap:   200,
		},
		Index: IndexConfig{
			BatchSize:         20,
			TopK:              4,
			BatchIntervalSecs: 1,
		},
		VectorStore: VectorStoreConfig{Type: "memory"},
	}
}

func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.Chunker.ChunkSize <= 0 {
		cfg.Chunker.ChunkSize = def.Chunker.ChunkSize
	}
	if cfg.Chunker.Overlap < 0 {
		cfg.Chunker.Overlap = def.Chunker.Overlap
	}
	if cfg.Index.BatchSize <= 0 {
		cfg.Index.BatchSize = def.Index.BatchSize
	}
	if cfg.Index.TopK <= 0 {
		cfg.Index.TopK = def.Index.TopK
	}
	if cfg.Index.BatchIntervalSecs <= 0 {
		cfg.Index.BatchIntervalSecs = def.Index.BatchIntervalSecs
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = def.VectorStore.Type
	}
}
