package transcript

import (
	"context"
	"errors"
	"fmt"

	youtube "github.com/kkdai/youtube/v2"
)

// ErrNoTranscript reports that the source has no transcript content for a
// video. The gateway maps it to 404; every other fetch error maps to 400.
var ErrNoTranscript = errors.New("No transcript available for this video")

// Fetcher is the external capability that retrieves transcript content and
// video metadata. The production implementation talks to YouTube; tests
// substitute a fake. No retries or timeouts are imposed at this layer.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]Segment, Metadata, error)
}

// defaultTitle is used when the source reports no usable title.
const defaultTitle = "Untitled video"

// YouTubeFetcher adapts github.com/kkdai/youtube/v2 to the Fetcher
// contract, normalizing its metadata shapes so callers only see plain
// strings.
type YouTubeFetcher struct {
	client youtube.Client
	lang   string
}

// NewYouTubeFetcher returns a fetcher requesting transcripts in lang
// (e.g. "en"). An empty lang defaults to "en".
func NewYouTubeFetcher(lang string) *YouTubeFetcher {
	if lang == "" {
		lang = "en"
	}
	return &YouTubeFetcher{lang: lang}
}

// Fetch implements Fetcher.
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoID string) ([]Segment, Metadata, error) {
	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, Metadata{}, err
	}

	raw, err := f.client.GetTranscriptCtx(ctx, video, f.lang)
	if err != nil {
		if errors.Is(err, youtube.ErrTranscriptDisabled) {
			return nil, Metadata{}, ErrNoTranscript
		}
		return nil, Metadata{}, err
	}
	if len(raw) == 0 {
		return nil, Metadata{}, ErrNoTranscript
	}

	segments := make([]Segment, 0, len(raw))
	for _, s := range raw {
		segments = append(segments, Segment{
			Text:     s.Text,
			Duration: s.Duration,
			Offset:   s.StartMs,
		})
	}

	return segments, videoMetadata(video), nil
}

// videoMetadata extracts display metadata with graceful fallbacks: a
// placeholder title and a deterministic thumbnail URL derived from the
// video ID when the source omits one.
func videoMetadata(video *youtube.Video) Metadata {
	md := Metadata{
		Title:       video.Title,
		Description: video.Description,
	}
	if md.Title == "" {
		md.Title = defaultTitle
	}

	// Thumbnails are listed smallest first; take the largest available.
	for _, t := range video.Thumbnails {
		if t.URL != "" {
			md.Thumbnail = t.URL
		}
	}
	if md.Thumbnail == "" {
		md.Thumbnail = FallbackThumbnailURL(video.ID)
	}
	return md
}

// FallbackThumbnailURL builds the deterministic default thumbnail for a
// video when the source reports none.
func FallbackThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}
