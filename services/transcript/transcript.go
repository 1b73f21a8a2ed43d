// Package transcript retrieves lesson transcripts for a video.
package transcript

import (
	"context"
	"errors"
	"strings"

	"lessontutor/models"

	"github.com/samber/lo"
)

var ErrNotFound = errors.New("transcript not found")

type Segment = models.TranscriptSegment

type Fetcher interface {
	FetchTranscript(ctx context.Context, videoID string) ([]Segment, error)
}

// Join concatenates segment texts with single spaces, preserving order.
func Join(segments []Segment) string {
	return strings.Join(lo.Map(segments, func(s Segment, _ int) string {
		return s.Text
	}), " ")
}
