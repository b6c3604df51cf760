package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"web-toolkit/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// fakeFetcher substitutes the external transcript capability in tests.
type fakeFetcher struct {
	segments []Segment
	metadata Metadata
	err      error
	calls    int
}

func (f *fakeFetcher) Fetch(ctx context.Context, videoID string) ([]Segment, Metadata, error) {
	f.calls++
	if f.err != nil {
		return nil, Metadata{}, f.err
	}
	return f.segments, f.metadata, nil
}

func newTestHandler(t *testing.T, fetcher Fetcher, limiter *RateLimiter) *Handler {
	t.Helper()
	if limiter == nil {
		limiter = NewRateLimiter(10, time.Hour)
	}
	log := logger.Discard()
	return NewHandler(limiter, fetcher, log, NewAuditLog(log), nil)
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/transcript", h.GetTranscript)
	r.Get("/api/transcript/{videoID}", h.GetTranscript)
	return r
}

func doGet(r *chi.Mux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "192.0.2.4:51234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetTranscript_success(t *testing.T) {
	fetcher := &fakeFetcher{
		segments: []Segment{
			{Text: "one", Offset: 0, Duration: 1000},
			{Text: "two", Offset: 1000, Duration: 1500},
			{Text: "three", Offset: 2500, Duration: 1500},
		},
		metadata: Metadata{Title: "A video", Description: "desc", Thumbnail: "https://example.com/t.jpg"},
	}
	r := newTestRouter(newTestHandler(t, fetcher, nil))

	rec := doGet(r, "/api/transcript/dQw4w9WgXcQ")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp TranscriptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if len(resp.Transcript) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(resp.Transcript))
	}
	wantOffsets := []int{0, 1000, 2500}
	wantDurations := []int{1000, 1500, 1500}
	for i, seg := range resp.Transcript {
		if seg.Offset != wantOffsets[i] || seg.Duration != wantDurations[i] {
			t.Errorf("segment %d: offset=%d duration=%d, want offset=%d duration=%d",
				i, seg.Offset, seg.Duration, wantOffsets[i], wantDurations[i])
		}
	}
	if resp.Metadata.Title != "A video" {
		t.Errorf("unexpected metadata title %q", resp.Metadata.Title)
	}

	if rec.Header().Get("X-RateLimit-Limit") != "10" {
		t.Errorf("expected limit header 10, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("expected remaining header 9, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if rec.Header().Get("X-RateLimit-Reset") != "3600" {
		t.Errorf("expected reset header 3600, got %q", rec.Header().Get("X-RateLimit-Reset"))
	}
}

func TestHandler_GetTranscript_no_transcript(t *testing.T) {
	fetcher := &fakeFetcher{err: ErrNoTranscript}
	r := newTestRouter(newTestHandler(t, fetcher, nil))

	rec := doGet(r, "/api/transcript/dQw4w9WgXcQ")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success false")
	}
	if resp.Error != "No transcript available for this video" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("expected rate limit headers on 404, got remaining %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestHandler_GetTranscript_upstream_error(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("status code: 403")}
	r := newTestRouter(newTestHandler(t, fetcher, nil))

	rec := doGet(r, "/api/transcript/dQw4w9WgXcQ")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "status code: 403" {
		t.Errorf("expected upstream message passed through, got %q", resp.Error)
	}
}

func TestHandler_GetTranscript_invalid_id(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := newTestRouter(newTestHandler(t, fetcher, nil))

	rec := doGet(r, "/api/transcript/bad!chars$$")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if fetcher.calls != 0 {
		t.Error("fetch should not run for an invalid id")
	}
	if rec.Header().Get("X-RateLimit-Limit") != "" {
		t.Error("rate limit headers should not be set before the check runs")
	}
}

func TestHandler_GetTranscript_missing_id(t *testing.T) {
	r := newTestRouter(newTestHandler(t, &fakeFetcher{}, nil))

	rec := doGet(r, "/api/transcript")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Video ID is required" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestHandler_GetTranscript_invalid_ids_do_not_consume_quota(t *testing.T) {
	fetcher := &fakeFetcher{segments: []Segment{{Text: "x"}}}
	r := newTestRouter(newTestHandler(t, fetcher, nil))

	for i := 0; i < 5; i++ {
		rec := doGet(r, "/api/transcript/short")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("invalid request %d: expected 400, got %d", i, rec.Code)
		}
	}

	rec := doGet(r, "/api/transcript/dQw4w9WgXcQ")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Errorf("expected remaining 9 after invalid requests, got %q", got)
	}
}

func TestHandler_GetTranscript_rate_limited(t *testing.T) {
	fetcher := &fakeFetcher{segments: []Segment{{Text: "x"}}}
	limiter := NewRateLimiter(1, time.Hour)
	r := newTestRouter(newTestHandler(t, fetcher, limiter))

	if rec := doGet(r, "/api/transcript/dQw4w9WgXcQ"); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec := doGet(r, "/api/transcript/dQw4w9WgXcQ")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success false")
	}
	if resp.RetryAfter != 60 {
		t.Errorf("expected retryAfter 60 minutes, got %d", resp.RetryAfter)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected remaining 0, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if fetcher.calls != 1 {
		t.Errorf("rejected request should not fetch, calls=%d", fetcher.calls)
	}
}
