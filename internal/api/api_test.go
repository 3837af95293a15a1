package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"jamesfarrell.me/video-twin/internal/service"
	"jamesfarrell.me/video-twin/internal/youtube"
)

type fakePipeline struct {
	ingestRes service.IngestResult
	ingestErr error
	answer    string
	ready     bool
}

func (f *fakePipeline) Ingest(context.Context, string) (service.IngestResult, error) {
	return f.ingestRes, f.ingestErr
}

func (f *fakePipeline) Ask(context.Context, string) string { return f.answer }

func (f *fakePipeline) Ready() bool { return f.ready }

func doRequest(t *testing.T, p Pipeline, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewRouter(p).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, &fakePipeline{}, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("health status = %q, want healthy", body["status"])
	}
}

func TestIngest(t *testing.T) {
	tests := []struct {
		name       string
		pipeline   *fakePipeline
		body       string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "success",
			pipeline:   &fakePipeline{ingestRes: service.IngestResult{VideoID: "dQw4w9WgXcQ"}},
			body:       `{"url":"https://youtu.be/dQw4w9WgXcQ"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid reference",
			pipeline:   &fakePipeline{ingestErr: youtube.ErrInvalidURL},
			body:       `{"url":"nope"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: youtube.ErrInvalidURL.Error(),
		},
		{
			name:       "no captions",
			pipeline:   &fakePipeline{ingestErr: youtube.ErrNoCaptions},
			body:       `{"url":"https://youtu.be/dQw4w9WgXcQ"}`,
			wantStatus: http.StatusInternalServerError,
			wantDetail: youtube.ErrNoCaptions.Error(),
		},
		{
			name:       "malformed body",
			pipeline:   &fakePipeline{},
			body:       `{"url":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, tt.pipeline, http.MethodPost, "/ingest", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("POST /ingest status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var resp IngestResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if resp.VideoID != "dQw4w9WgXcQ" {
					t.Errorf("video_id = %q, want dQw4w9WgXcQ", resp.VideoID)
				}
				return
			}
			if tt.wantDetail != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid error body: %v", err)
				}
				if resp.Detail != tt.wantDetail {
					t.Errorf("detail = %q, want %q", resp.Detail, tt.wantDetail)
				}
			}
		})
	}
}

func TestChatNotReady(t *testing.T) {
	rec := doRequest(t, &fakePipeline{ready: false}, http.MethodPost, "/chat", `{"question":"hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST /chat status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Detail != notReadyDetail {
		t.Errorf("detail = %q, want the distinct not-ready message", resp.Detail)
	}
}

func TestChatReady(t *testing.T) {
	p := &fakePipeline{ready: true, answer: "I mentioned that the sky is blue."}
	rec := doRequest(t, p, http.MethodPost, "/chat", `{"question":"What color is the sky?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /chat status = %d, want 200", rec.Code)
	}

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Answer != p.answer {
		t.Errorf("answer = %q, want %q", resp.Answer, p.answer)
	}
}

func TestAuthRequiredWhenKeyConfigured(t *testing.T) {
	t.Setenv("SERVICE_API_KEY", "secret")

	rec := doRequest(t, &fakePipeline{ready: true, answer: "ok"}, http.MethodPost, "/chat", `{"question":"hi"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("POST /chat without key status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"hi"}`))
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	NewRouter(&fakePipeline{ready: true, answer: "ok"}).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /chat with key status = %d, want 200", rec.Code)
	}

	// Health stays public.
	rec = doRequest(t, &fakePipeline{}, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health with auth configured status = %d, want 200", rec.Code)
	}
}

func TestAuthOpenWithoutKey(t *testing.T) {
	if os.Getenv("SERVICE_API_KEY") != "" {
		t.Skip("SERVICE_API_KEY set in environment")
	}
	rec := doRequest(t, &fakePipeline{ready: true, answer: "ok"}, http.MethodPost, "/chat", `{"question":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("POST /chat without configured key status = %d, want 200", rec.Code)
	}
}
