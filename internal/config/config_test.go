package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: "does-not-exist.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Addr != ":8080" {
				t.Errorf("Addr = %q, want :8080", cfg.Addr)
			}
			if cfg.Chunker.ChunkSize != 1000 || cfg.Chunker.Overlap != 200 {
				t.Errorf("chunker defaults = %+v, want 1000/200", cfg.Chunker)
			}
			if cfg.Index.BatchSize != 20 || cfg.Index.TopK != 4 {
				t.Errorf("index defaults = %+v, want batch 20 top_k 4", cfg.Index)
			}
			if cfg.BatchInterval() != time.Second {
				t.Errorf("BatchInterval() = %v, want 1s", cfg.BatchInterval())
			}
			if cfg.VectorStore.Type != "memory" {
				t.Errorf("vector store type = %q, want memory", cfg.VectorStore.Type)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
addr: ":9090"
chunker:
  chunk_size: 500
vector_store:
  type: postgres
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.Chunker.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.Chunker.ChunkSize)
	}
	// Unset fields still pick up defaults.
	if cfg.Chunker.Overlap != 200 {
		t.Errorf("Overlap = %d, want default 200", cfg.Chunker.Overlap)
	}
	if cfg.VectorStore.Type != "postgres" {
		t.Errorf("vector store type = %q, want postgres", cfg.VectorStore.Type)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load() with malformed yaml should fail")
	}
}

func TestOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := OpenAIKey(); err == nil {
		t.Errorf("OpenAIKey() with empty env should fail")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	key, err := OpenAIKey()
	if err != nil || key != "sk-test" {
		t.Errorf("OpenAIKey() = %q, %v", key, err)
	}
}
