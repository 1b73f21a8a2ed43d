package tutor

import (
	"context"
	"fmt"
	"log"

	"lessontutor/models"
	"lessontutor/services/capability"
)

// extractResponse records the learner's latest answer. The stored assessment
// is merged field by field; an empty field in the reply never erases data.
func (s *Service) extractResponse(ctx context.Context, state *models.ConversationState) (models.Update, error) {
	prompt := fmt.Sprintf(extractResponseSystemPrompt,
		studentLevelAssessmentSchema.Text,
		assessmentOrPlaceholder(state),
	)
	messages := append([]models.Message{models.SystemMessage(prompt)}, state.Messages...)

	var extracted models.StudentLevelAssessment
	err := s.llm.GenerateStructured(ctx, messages, studentLevelAssessmentSchema, &extracted,
		capability.WithTemperature(0),
	)
	if err != nil {
		return models.Update{}, fmt.Errorf("failed to extract student response: %w", err)
	}

	merged := state.Assessment.Clone()
	if merged == nil {
		merged = models.NewStudentLevelAssessment()
	}
	merged.Merge(&extracted)

	log.Printf("[INFO] Assessment updated: %d of 7 skills answered, overall level %q",
		merged.Assessment.AnsweredSkills(), merged.OverallLevel)
	return models.Update{Assessment: merged}, nil
}
