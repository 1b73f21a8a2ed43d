package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"lessontutor/models"
	"lessontutor/services/capability"
)

// Signal is one boolean decision of the intent classifier with its reason.
type Signal struct {
	Reason    string `json:"reason"`
	BoolValue bool   `json:"bool_value"`
}

// ResponseAssessment is the classifier's reading of the learner's latest message.
type ResponseAssessment struct {
	ShouldCreateQuiz             Signal `json:"should_create_quiz"`
	ShouldAnalyzeStudentLevel    Signal `json:"should_analyze_student_level"`
	ShouldExtractStudentResponse Signal `json:"should_extract_student_response"`
}

// selectStage applies the fixed priority extract > create quiz > analyze.
// When guard is set a quiz is never chosen before an assessment exists.
func selectStage(ra ResponseAssessment, hasAssessment, guard bool) string {
	switch {
	case ra.ShouldExtractStudentResponse.BoolValue:
		return StageExtractResponse
	case ra.ShouldCreateQuiz.BoolValue:
		if guard && !hasAssessment {
			log.Printf("[WARN] Quiz requested before any assessment exists, assessing level instead")
			return StageAnalyzeLevel
		}
		return StageCreateQuiz
	default:
		return StageAnalyzeLevel
	}
}

func (s *Service) route(ctx context.Context, state *models.ConversationState) (models.Update, error) {
	if !state.HasTranscript() {
		log.Printf("[INFO] No transcript yet, routing to %s", StageTranscribe)
		observeRoute(StageTranscribe)
		return routeTo(StageTranscribe), nil
	}

	prompt := fmt.Sprintf(routerSystemPrompt,
		lessonOrPlaceholder(state),
		studentLevelAssessmentSchema.Text,
		assessmentOrPlaceholder(state),
	)
	messages := append([]models.Message{models.SystemMessage(prompt)}, state.Messages...)

	var ra ResponseAssessment
	err := s.llm.GenerateStructured(ctx, messages, responseAssessmentSchema, &ra,
		capability.WithStrict(true),
		capability.WithTemperature(0),
	)
	if err != nil {
		return models.Update{}, fmt.Errorf("failed to classify message: %w", err)
	}

	if raw, err := json.MarshalIndent(ra, "", "  "); err == nil {
		log.Printf("[INFO] Router assessment:\n%s", raw)
	}

	next := selectStage(ra, state.Assessment != nil, s.quizGuard)
	observeRoute(next)
	log.Printf("[INFO] Routing to %s", next)
	return routeTo(next), nil
}

func routeByState(state *models.ConversationState) string {
	return state.Route
}

func routeTo(stage string) models.Update {
	return models.Update{Route: &stage}
}

func lessonOrPlaceholder(state *models.ConversationState) string {
	if state.LessonExplanation == nil || *state.LessonExplanation == "" {
		return noLessonPlaceholder
	}
	return *state.LessonExplanation
}

func assessmentOrPlaceholder(state *models.ConversationState) string {
	if state.Assessment == nil {
		return noAssessmentPlaceholder
	}
	raw, err := json.MarshalIndent(state.Assessment, "", "  ")
	if err != nil {
		return noAssessmentPlaceholder
	}
	return string(raw)
}
