package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"jamesfarrell.me/video-twin/internal/service"
	"jamesfarrell.me/video-twin/internal/youtube"
)

// notReadyDetail is the distinct message for questions asked before any
// successful ingest.
const notReadyDetail = "No video ingested. Please ingest a video first."

// Pipeline is the ingest/ask surface the handlers drive.
type Pipeline interface {
	Ingest(ctx context.Context, url string) (service.IngestResult, error)
	Ask(ctx context.Context, question string) string
	Ready() bool
}

type handlers struct {
	pipeline Pipeline
}

// ingestVideo extracts, chunks and indexes a video's transcript. Ingestion
// blocks this request for as long as embedding takes; concurrent chat
// requests keep seeing the previous video until the rebuild completes.
func (h *handlers) ingestVideo(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	slog.Info("ingest requested", "url", req.URL)
	res, err := h.pipeline.Ingest(r.Context(), req.URL)
	if err != nil {
		slog.Error("ingest failed", "url", req.URL, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, youtube.ErrInvalidURL) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	slog.Info("ingest completed", "video_id", res.VideoID, "chunks", res.Chunks)
	writeJSON(w, http.StatusOK, IngestResponse{
		Message: "Video ingested successfully",
		VideoID: res.VideoID,
	})
}

// chat answers a question about the ingested video. The not-ready condition
// is reported distinctly; everything else resolves to a normal answer.
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if !h.pipeline.Ready() {
		writeError(w, http.StatusBadRequest, notReadyDetail)
		return
	}

	answer := h.pipeline.Ask(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, ChatResponse{Answer: answer})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
