package transcript

// Segment is a single transcript cue.
// Offset and Duration are milliseconds from the start of the video.
type Segment struct {
	Text     string `json:"text"`
	Duration int    `json:"duration"`
	Offset   int    `json:"offset"`
}

// Metadata carries the video details shown alongside the transcript.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// TranscriptResponse is the success envelope for GET /api/transcript/{videoID}.
type TranscriptResponse struct {
	Success    bool      `json:"success"`
	Transcript []Segment `json:"transcript"`
	Metadata   Metadata  `json:"metadata"`
}

// ErrorResponse is the failure envelope. RetryAfter (minutes, rounded up)
// is only set on rate-limit rejections.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}
