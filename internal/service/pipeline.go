// Package service wires transcript acquisition, chunking, indexing and
// answer generation into the single ingest/ask pipeline the API exposes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"jamesfarrell.me/video-twin/internal/chunker"
	"jamesfarrell.me/video-twin/internal/index"
	"jamesfarrell.me/video-twin/internal/rag"
	"jamesfarrell.me/video-twin/internal/youtube"
)

// TranscriptFetcher acquires the transcript for a video reference.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, url string) (youtube.Transcript, error)
}

// IngestResult reports a completed ingestion.
type IngestResult struct {
	VideoID string
	Chunks  int
}

// Pipeline owns all pipeline state: one transcript source, one splitter, one
// index manager and one answerer. There is exactly one instance per process;
// each ingest replaces the previous video entirely.
type Pipeline struct {
	transcripts TranscriptFetcher
	splitter    *chunker.Splitter
	index       *index.Manager
	answerer    *rag.Answerer
}

// NewPipeline assembles the pipeline from its components.
func NewPipeline(transcripts TranscriptFetcher, splitter *chunker.Splitter, idx *index.Manager, answerer *rag.Answerer) *Pipeline {
	return &Pipeline{
		transcripts: transcripts,
		splitter:    splitter,
		index:       idx,
		answerer:    answerer,
	}
}

// Ingest fetches the video's transcript, chunks it and rebuilds the index.
// The previous video's index stays authoritative until the rebuild fully
// succeeds.
func (p *Pipeline) Ingest(ctx context.Context, url string) (IngestResult, error) {
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return IngestResult{}, err
	}

	transcript, err := p.transcripts.FetchTranscript(ctx, url)
	if err != nil {
		return IngestResult{}, err
	}

	chunks := p.splitter.Split(transcript.Text)
	if len(chunks) == 0 {
		return IngestResult{}, fmt.Errorf("transcript for video %s is empty", videoID)
	}
	slog.Info("transcript chunked", "video_id", videoID, "chunks", len(chunks))

	if err := p.index.Rebuild(ctx, chunks); err != nil {
		return IngestResult{}, fmt.Errorf("indexing transcript: %w", err)
	}
	return IngestResult{VideoID: videoID, Chunks: len(chunks)}, nil
}

// Ask answers a question about the currently ingested video. Failures
// resolve to textual answers; see rag.Answerer.
func (p *Pipeline) Ask(ctx context.Context, question string) string {
	return p.answerer.Answer(ctx, question)
}

// Ready reports whether a video has been ingested successfully.
func (p *Pipeline) Ready() bool {
	return p.index.Ready()
}

// Reset clears the index, returning the pipeline to its initial empty state.
func (p *Pipeline) Reset(ctx context.Context) error {
	return p.index.Reset(ctx)
}
