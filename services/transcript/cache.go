package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var ErrCacheMiss = errors.New("transcript not cached")

// Cache stores fetched transcripts by video ID.
type Cache interface {
	GetTranscript(ctx context.Context, videoID string) ([]Segment, error)
	SaveTranscript(ctx context.Context, videoID string, segments []Segment) error
}

// CachingFetcher serves transcripts from a Cache and falls back to another
// Fetcher on a miss. Cache failures degrade to a plain fetch.
type CachingFetcher struct {
	cache Cache
	next  Fetcher
}

func NewCachingFetcher(cache Cache, next Fetcher) *CachingFetcher {
	return &CachingFetcher{cache: cache, next: next}
}

func (f *CachingFetcher) FetchTranscript(ctx context.Context, videoID string) ([]Segment, error) {
	segments, err := f.cache.GetTranscript(ctx, videoID)
	switch {
	case err == nil:
		log.Printf("[INFO] Serving cached transcript for video %s (%d segments)", videoID, len(segments))
		return segments, nil
	case errors.Is(err, ErrCacheMiss):
	default:
		log.Printf("[WARN] Transcript cache lookup failed for video %s: %v", videoID, err)
	}

	segments, err = f.next.FetchTranscript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	if err := f.cache.SaveTranscript(ctx, videoID, segments); err != nil {
		log.Printf("[WARN] Failed to cache transcript for video %s: %v", videoID, err)
	}

	return segments, nil
}
