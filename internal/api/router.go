// Package api exposes the ingest/chat HTTP surface of the pipeline.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"jamesfarrell.me/video-twin/internal/api/middleware"
)

// NewRouter builds the HTTP routes over the pipeline.
func NewRouter(pipeline Pipeline) http.Handler {
	h := &handlers{pipeline: pipeline}

	r := mux.NewRouter()
	r.Use(middleware.CORS)

	// Public routes
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	// Protected routes
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/ingest", h.ingestVideo).Methods(http.MethodPost)
	protected.HandleFunc("/chat", h.chat).Methods(http.MethodPost)

	return r
}
