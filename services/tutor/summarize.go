package tutor

import (
	"context"
	"fmt"
	"log"

	"lessontutor/models"
)

func (s *Service) summarize(ctx context.Context, state *models.ConversationState) (models.Update, error) {
	log.Printf("[INFO] Summarizing transcript into a lesson")

	transcriptText := ""
	if state.Transcript != nil {
		transcriptText = *state.Transcript
	}

	explanation, err := s.llm.Generate(ctx, []models.Message{
		models.SystemMessage(fmt.Sprintf(summarizeSystemPrompt, transcriptText)),
	})
	if err != nil {
		return models.Update{}, fmt.Errorf("failed to summarize transcript: %w", err)
	}

	log.Printf("[INFO] Lesson explanation ready (%d chars)", len(explanation))
	return models.Update{LessonExplanation: &explanation}, nil
}
