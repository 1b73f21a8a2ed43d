package transcript

import (
	"context"
	"errors"
	"testing"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoSource struct {
	videoErr      error
	transcript    youtube.VideoTranscript
	transcriptErr error
	languages     []string
}

func (s *fakeVideoSource) GetVideoContext(ctx context.Context, id string) (*youtube.Video, error) {
	if s.videoErr != nil {
		return nil, s.videoErr
	}
	return &youtube.Video{ID: id}, nil
}

func (s *fakeVideoSource) GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error) {
	s.languages = append(s.languages, lang)
	return s.transcript, s.transcriptErr
}

func TestYouTubeFetcher(t *testing.T) {
	source := &fakeVideoSource{transcript: youtube.VideoTranscript{
		{Text: "Plants use light", StartMs: 500, Duration: 2100},
		{Text: "to make   sugar\nand oxygen", StartMs: 2600, Duration: 1900},
		{Text: "  ", StartMs: 4500, Duration: 1000},
		{Text: "from water.", StartMs: 5500, Duration: 2000},
	}}
	fetcher := newYouTubeFetcher(source, "de")

	segments, err := fetcher.FetchTranscript(context.Background(), "abc123defgh")
	require.NoError(t, err)
	require.Len(t, segments, 3)
	assert.Equal(t, "to make sugar and oxygen", segments[1].Text)
	assert.InDelta(t, 2.6, segments[1].Start, 0.001)
	assert.InDelta(t, 1.9, segments[1].Duration, 0.001)
	assert.Equal(t, "Plants use light to make sugar and oxygen from water.", Join(segments))
	assert.Equal(t, []string{"de"}, source.languages)
}

func TestYouTubeFetcherDefaultsToEnglish(t *testing.T) {
	source := &fakeVideoSource{transcript: youtube.VideoTranscript{{Text: "hi"}}}

	_, err := newYouTubeFetcher(source, "").FetchTranscript(context.Background(), "abc123defgh")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, source.languages)
}

func TestYouTubeFetcherErrors(t *testing.T) {
	networkDown := errors.New("connection reset")

	tests := []struct {
		name         string
		source       *fakeVideoSource
		wantNotFound bool
		wantErr      error
	}{
		{name: "transcript disabled", source: &fakeVideoSource{transcriptErr: youtube.ErrTranscriptDisabled}, wantNotFound: true},
		{name: "private video", source: &fakeVideoSource{videoErr: youtube.ErrVideoPrivate}, wantNotFound: true},
		{name: "invalid id", source: &fakeVideoSource{videoErr: youtube.ErrInvalidCharactersInVideoID}, wantNotFound: true},
		{name: "short id", source: &fakeVideoSource{videoErr: youtube.ErrVideoIDMinLength}, wantNotFound: true},
		{name: "empty transcript", source: &fakeVideoSource{transcript: youtube.VideoTranscript{{Text: " "}}}, wantNotFound: true},
		{name: "network failure", source: &fakeVideoSource{videoErr: networkDown}, wantErr: networkDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newYouTubeFetcher(tt.source, "en").FetchTranscript(context.Background(), "abc123defgh")
			require.Error(t, err)
			assert.Equal(t, tt.wantNotFound, errors.Is(err, ErrNotFound), "got %v", err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
