package tutor

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"lessontutor/models"
	"lessontutor/services/capability"
	"lessontutor/services/lessonindex"
	"lessontutor/services/transcript"
)

type youTubeURL struct {
	URL string `json:"url"`
}

// ParseVideoID returns the video identifier of a watch URL (the v query
// parameter) or a youtu.be short link.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if u, err := url.Parse(raw); err == nil {
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		if strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), "youtu.be") {
			if id := strings.Trim(u.Path, "/"); id != "" {
				return id, nil
			}
		}
	}

	// Text that is not a well-formed URL may still carry "v=<id>".
	if _, after, found := strings.Cut(raw, "v="); found {
		id, _, _ := strings.Cut(after, "&")
		id, _, _ = strings.Cut(id, "#")
		if id = strings.TrimSpace(id); id != "" {
			return id, nil
		}
	}

	return "", &MalformedInputError{Input: raw}
}

func (s *Service) transcribe(ctx context.Context, state *models.ConversationState) (models.Update, error) {
	message := state.LastUserMessage()
	log.Printf("[INFO] Extracting video link from learner message")

	var parsed youTubeURL
	err := s.llm.GenerateStructured(ctx,
		[]models.Message{models.SystemMessage(parseURLSystemPrompt), models.UserMessage(message)},
		youTubeURLSchema, &parsed,
		capability.WithStrict(true),
		capability.WithTemperature(0),
	)
	if err != nil {
		return models.Update{}, fmt.Errorf("failed to extract video URL: %w", err)
	}

	videoID, err := ParseVideoID(parsed.URL)
	if err != nil {
		return models.Update{}, err
	}

	log.Printf("[INFO] Fetching transcript for video %s", videoID)
	segments, err := s.fetcher.FetchTranscript(ctx, videoID)
	if err != nil {
		return models.Update{}, fmt.Errorf("failed to fetch transcript for video %s: %w", videoID, err)
	}

	text := transcript.Join(segments)
	if strings.TrimSpace(text) == "" {
		return models.Update{}, fmt.Errorf("video %s has an empty transcript: %w", videoID, transcript.ErrNotFound)
	}
	log.Printf("[INFO] Loaded transcript for video %s (%d segments)", videoID, len(segments))

	if s.index != nil {
		lessonID := lessonindex.LessonID(text)
		if err := s.index.Index(ctx, lessonID, text); err != nil {
			log.Printf("[WARN] Failed to index lesson %s: %v", lessonID, err)
		}
	}

	return models.Update{Transcript: &text}, nil
}
