package api

// IngestRequest asks the service to ingest one YouTube video.
type IngestRequest struct {
	URL string `json:"url"`
}

// IngestResponse reports a completed ingestion.
type IngestResponse struct {
	Message string `json:"message"`
	VideoID string `json:"video_id"`
}

// ChatRequest carries one user question about the ingested video.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse carries the generated answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse carries a user-facing failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
