// Package rag answers questions by retrieving transcript chunks and
// conditioning a generation model on them under a strict grounding contract.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jamesfarrell.me/video-twin/internal/index"
	"jamesfarrell.me/video-twin/internal/vectorstore"
)

// NotReadyAnswer is returned when no video has been ingested yet.
const NotReadyAnswer = "No video ingested. Please ingest a video first."

// Generator produces text from an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns the chunks most relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]vectorstore.SearchResult, error)
}

// Answerer runs the retrieval-augmented answer flow.
type Answerer struct {
	retriever Retriever
	generator Generator
}

// NewAnswerer creates an answerer over a retriever and generation model.
func NewAnswerer(retriever Retriever, generator Generator) *Answerer {
	return &Answerer{retriever: retriever, generator: generator}
}

// Answer returns a response for the question. It never fails: every error
// resolves to a textual message so the question-answering surface does not
// hard-fail.
func (a *Answerer) Answer(ctx context.Context, question string) string {
	results, err := a.retriever.Retrieve(ctx, question)
	if err != nil {
		if errors.Is(err, index.ErrIndexNotReady) {
			return NotReadyAnswer
		}
		return fmt.Sprintf("Error generating answer: %v", err)
	}

	answer, err := a.generator.Generate(ctx, BuildPrompt(results, question))
	if err != nil {
		return fmt.Sprintf("Error generating answer: %v", err)
	}
	return answer
}

// BuildPrompt assembles the grounded generation prompt: the fixed
// instruction, the retrieved chunks in rank order separated by blank lines,
// and the verbatim question.
func BuildPrompt(results []vectorstore.SearchResult, question string) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return fmt.Sprintf(promptTemplate, strings.Join(texts, "\n\n"), question)
}
