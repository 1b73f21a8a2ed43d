package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/samber/lo"
)

// videoSource is the part of the YouTube client the fetcher uses.
type videoSource interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

// YouTubeFetcher reads a video's transcript in the configured language.
type YouTubeFetcher struct {
	client   videoSource
	language string
}

func NewYouTubeFetcher(language string) *YouTubeFetcher {
	client := &youtube.Client{HTTPClient: &http.Client{Timeout: 30 * time.Second}}
	return newYouTubeFetcher(client, language)
}

func newYouTubeFetcher(client videoSource, language string) *YouTubeFetcher {
	if language == "" {
		language = "en"
	}
	return &YouTubeFetcher{client: client, language: language}
}

func (f *YouTubeFetcher) FetchTranscript(ctx context.Context, videoID string) ([]Segment, error) {
	log.Printf("[INFO] Fetching transcript for video %s", videoID)

	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		log.Printf("[ERROR] Failed to load video %s: %v", videoID, err)
		return nil, mapYouTubeError(videoID, err)
	}

	captions, err := f.client.GetTranscriptCtx(ctx, video, f.language)
	if err != nil {
		log.Printf("[ERROR] Failed to load %s transcript for video %s: %v", f.language, videoID, err)
		return nil, mapYouTubeError(videoID, err)
	}

	segments := toSegments(captions)
	if len(segments) == 0 {
		return nil, fmt.Errorf("video %s has an empty transcript: %w", videoID, ErrNotFound)
	}

	log.Printf("[INFO] Retrieved %d transcript segments for video %s", len(segments), videoID)
	return segments, nil
}

// mapYouTubeError turns the client's "nothing to read" errors into ErrNotFound.
func mapYouTubeError(videoID string, err error) error {
	switch {
	case errors.Is(err, youtube.ErrTranscriptDisabled),
		errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength):
		return fmt.Errorf("video %s: %v: %w", videoID, err, ErrNotFound)
	default:
		return fmt.Errorf("transcript request for video %s failed: %w", videoID, err)
	}
}

func toSegments(captions youtube.VideoTranscript) []Segment {
	return lo.FilterMap(captions, func(c youtube.TranscriptSegment, _ int) (Segment, bool) {
		text := strings.Join(strings.Fields(c.Text), " ")
		return Segment{
			Text:     text,
			Start:    float64(c.StartMs) / 1000,
			Duration: float64(c.Duration) / 1000,
		}, text != ""
	})
}
