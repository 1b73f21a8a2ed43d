package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"lessontutor/models"
	"lessontutor/services/lessonindex"
)

const quizExcerptLimit = 5

func (s *Service) createQuiz(ctx context.Context, state *models.ConversationState) (models.Update, error) {
	log.Printf("[INFO] Creating quiz")

	prompt := fmt.Sprintf(createQuizSystemPrompt,
		lessonOrPlaceholder(state),
		assessmentOrPlaceholder(state),
		s.quizExcerpts(ctx, state),
		quizSchema.Text,
	)
	messages := append([]models.Message{models.SystemMessage(prompt)}, state.Messages...)

	var quiz models.Quiz
	if err := s.llm.GenerateStructured(ctx, messages, quizSchema, &quiz); err != nil {
		return models.Update{}, fmt.Errorf("failed to create quiz: %w", err)
	}

	if raw, err := json.MarshalIndent(quiz, "", "  "); err == nil {
		log.Printf("[INFO] Generated quiz:\n%s", raw)
	}
	return models.Update{Quiz: &quiz}, nil
}

// quizExcerpts looks up transcript passages for the learner's weak areas.
// Lookup failures are logged and yield no excerpts.
func (s *Service) quizExcerpts(ctx context.Context, state *models.ConversationState) string {
	if s.index == nil || !state.HasTranscript() || state.Assessment == nil ||
		len(state.Assessment.AreasForImprovement) == 0 {
		return ""
	}

	lessonID := lessonindex.LessonID(*state.Transcript)
	excerpts, err := s.index.Query(ctx, lessonID, state.Assessment.AreasForImprovement, quizExcerptLimit)
	if err != nil {
		log.Printf("[WARN] Failed to query lesson index for %s: %v", lessonID, err)
		return ""
	}
	if len(excerpts) == 0 {
		return ""
	}

	log.Printf("[INFO] Using %d transcript excerpts for quiz", len(excerpts))
	return fmt.Sprintf(quizExcerptsHeader, "- "+strings.Join(excerpts, "\n- "))
}
