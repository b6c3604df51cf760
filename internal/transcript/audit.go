package transcript

import "log/slog"

// AuditLog emits one append-only structured record per handled transcript
// request. It never fails; a broken log sink cannot affect the response.
type AuditLog struct {
	log *slog.Logger
}

// NewAuditLog returns an AuditLog writing through log. A nil log disables
// emission (useful in tests).
func NewAuditLog(log *slog.Logger) *AuditLog {
	return &AuditLog{log: log}
}

// Record emits a single audit line for one request outcome.
func (a *AuditLog) Record(clientID, videoID string, status int, message string) {
	if a == nil || a.log == nil {
		return
	}
	a.log.Info("transcript_request",
		slog.String("endpoint", "/api/transcript"),
		slog.String("client_id", clientID),
		slog.String("video_id", videoID),
		slog.Int("status", status),
		slog.String("message", message),
	)
}
