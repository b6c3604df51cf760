package transcript

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"web-toolkit/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the transcript endpoint and orchestrates the admission
// pipeline: client identity -> video-ID validation -> rate limit ->
// external fetch -> response shaping, with one audit record per request.
type Handler struct {
	limiter *RateLimiter
	fetcher Fetcher
	log     *slog.Logger
	audit   *AuditLog
	metrics *metrics.Metrics

	// now is swappable for tests.
	now func() time.Time
}

// NewHandler returns a Handler. Metrics may be nil to disable metric
// recording (e.g. in tests).
func NewHandler(limiter *RateLimiter, fetcher Fetcher, log *slog.Logger, audit *AuditLog, m *metrics.Metrics) *Handler {
	return &Handler{
		limiter: limiter,
		fetcher: fetcher,
		log:     log,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

// GetTranscript handles GET /api/transcript/{videoID}.
//
// Validation runs before the rate-limit check so malformed input never
// consumes quota. Rate-limit headers are set on every response once the
// check has run, success or failure. The limiter lock is released before
// the fetch; a slow upstream never blocks other clients' admission.
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	clientID := ClientID(r)
	videoID := chi.URLParam(r, "videoID")

	switch ValidateVideoID(videoID) {
	case ValidationMissing:
		h.fail(w, clientID, videoID, http.StatusBadRequest, "Video ID is required", 0)
		return
	case ValidationInvalid:
		h.fail(w, clientID, videoID, http.StatusBadRequest, "Invalid video ID", 0)
		return
	}

	res := h.limiter.Check(clientID, h.now())
	writeRateLimitHeaders(w, h.limiter.Max(), res)
	if !res.Allowed {
		if h.metrics != nil {
			h.metrics.IncRateLimitRejected()
		}
		retryAfter := int(math.Ceil(res.ResetIn.Minutes()))
		h.fail(w, clientID, videoID, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.", retryAfter)
		return
	}

	segments, md, err := h.fetcher.Fetch(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, ErrNoTranscript) {
			h.fail(w, clientID, videoID, http.StatusNotFound, ErrNoTranscript.Error(), 0)
			return
		}
		// Upstream failures surface their message verbatim, never a raw panic.
		h.fail(w, clientID, videoID, http.StatusBadRequest, err.Error(), 0)
		return
	}

	h.writeJSON(w, http.StatusOK, TranscriptResponse{
		Success:    true,
		Transcript: segments,
		Metadata:   md,
	})
	h.audit.Record(clientID, videoID, http.StatusOK, "ok")
	if h.metrics != nil {
		h.metrics.IncTranscriptsServed()
	}
	h.log.Debug("transcript served",
		slog.String("video_id", videoID),
		slog.Int("segments", len(segments)))
}

// fail writes a JSON error envelope and emits the request's audit record.
func (h *Handler) fail(w http.ResponseWriter, clientID, videoID string, status int, message string, retryAfter int) {
	h.writeJSON(w, status, ErrorResponse{
		Success:    false,
		Error:      message,
		RetryAfter: retryAfter,
	})
	h.audit.Record(clientID, videoID, status, message)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response failed", slog.String("error", err.Error()))
	}
}

// writeRateLimitHeaders surfaces the admission decision on the response.
// Reset is whole seconds until the window reopens, rounded up so an
// almost-elapsed window never reports zero.
func writeRateLimitHeaders(w http.ResponseWriter, limit int, res LimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(math.Ceil(res.ResetIn.Seconds()))))
}
