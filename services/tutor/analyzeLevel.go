package tutor

import (
	"context"
	"fmt"
	"log"

	"lessontutor/models"
)

func (s *Service) analyzeLevel(ctx context.Context, state *models.ConversationState) (models.Update, error) {
	prompt := fmt.Sprintf(analyzeLevelSystemPrompt,
		lessonOrPlaceholder(state),
		studentLevelAssessmentSchema.Text,
		assessmentOrPlaceholder(state),
	)
	messages := append([]models.Message{models.SystemMessage(prompt)}, state.Messages...)

	question, err := s.llm.Generate(ctx, messages)
	if err != nil {
		return models.Update{}, fmt.Errorf("failed to generate assessment question: %w", err)
	}

	log.Printf("[INFO] Asking assessment question: %s", question)
	return models.Update{Messages: []models.Message{models.AssistantMessage(question)}}, nil
}
