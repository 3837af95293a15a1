// Video Twin service: turns one YouTube video into a queryable knowledge
// base and answers questions in the speaker's voice.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"jamesfarrell.me/video-twin/internal/api"
	"jamesfarrell.me/video-twin/internal/chunker"
	"jamesfarrell.me/video-twin/internal/config"
	"jamesfarrell.me/video-twin/internal/embedding"
	"jamesfarrell.me/video-twin/internal/index"
	"jamesfarrell.me/video-twin/internal/rag"
	"jamesfarrell.me/video-twin/internal/service"
	"jamesfarrell.me/video-twin/internal/vectorstore"
	"jamesfarrell.me/video-twin/internal/youtube"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	apiKey, err := config.OpenAIKey()
	if err != nil {
		slog.Error("missing credentials", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to initialize vector store", "error", err)
		os.Exit(1)
	}

	embedder := embedding.NewOpenAIEmbedder(apiKey, cfg.Models.Embedding)
	idx := index.NewManager(embedder, store, index.Config{
		BatchSize:     cfg.Index.BatchSize,
		TopK:          cfg.Index.TopK,
		BatchInterval: cfg.BatchInterval(),
	})
	answerer := rag.NewAnswerer(idx, rag.NewOpenAIGenerator(apiKey, cfg.Models.Chat))

	pipeline := service.NewPipeline(
		youtube.NewClient(),
		chunker.NewSplitter(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap),
		idx,
		answerer,
	)

	slog.Info("starting video-twin service",
		"addr", cfg.Addr,
		"vector_store", cfg.VectorStore.Type,
		"embedding_model", embedder.ModelName(),
	)
	if err := http.ListenAndServe(cfg.Addr, api.NewRouter(pipeline)); err != nil {
		slog.Error("HTTP server error", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg *config.Config) (vectorstore.Store, error) {
	switch cfg.VectorStore.Type {
	case "postgres":
		url, err := config.DatabaseURL()
		if err != nil {
			return nil, err
		}
		return vectorstore.NewPostgresStore(url)
	default:
		return vectorstore.NewMemoryStore(), nil
	}
}
