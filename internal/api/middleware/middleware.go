// Package middleware provides the HTTP middleware for the API surface.
package middleware

import (
	"net/http"
	"os"
)

// Auth requires the X-API-Key header to match SERVICE_API_KEY. When the
// variable is unset the API is open, matching local development use.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		required := os.Getenv("SERVICE_API_KEY")
		if required != "" && r.Header.Get("X-API-Key") != required {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS allows cross-origin requests from a separately served frontend.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
