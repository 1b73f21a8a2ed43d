package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func answers(correct ...bool) []QuizAnswer {
	out := make([]QuizAnswer, len(correct))
	for i, c := range correct {
		out[i] = QuizAnswer{Text: "answer", IsCorrect: c, Explanation: "because"}
	}
	return out
}

func TestValidateQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []QuizAnswer
		wantErr bool
	}{
		{name: "four answers one correct", answers: answers(true, false, false, false)},
		{name: "three answers", answers: answers(true, false, false), wantErr: true},
		{name: "five answers", answers: answers(true, false, false, false, false), wantErr: true},
		{name: "no correct answer", answers: answers(false, false, false, false), wantErr: true},
		{name: "two correct answers", answers: answers(true, true, false, false), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := Quiz{
				Title: "Photosynthesis",
				Questions: []QuizQuestion{{
					Question:    "Where does photosynthesis happen?",
					Answers:     tt.answers,
					Difficulty:  "easy",
					Topic:       "cells",
					SkillTested: "recall",
				}},
			}

			err := Validate(quiz)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuizRequiresQuestions(t *testing.T) {
	assert.Error(t, Validate(Quiz{Title: "Empty"}))
}

func TestQuizCloneIsDeep(t *testing.T) {
	quiz := &Quiz{
		Title:        "Photosynthesis",
		Questions:    []QuizQuestion{{Question: "q", Answers: answers(true, false, false, false)}},
		TargetSkills: []string{"recall"},
	}

	c := quiz.Clone()
	c.Questions[0].Answers[0].IsCorrect = false
	c.TargetSkills[0] = "analysis"

	assert.True(t, quiz.Questions[0].Answers[0].IsCorrect)
	assert.Equal(t, "recall", quiz.TargetSkills[0])
}
