package models

import (
	"github.com/samber/lo"
)

type QuizAnswer struct {
	Text        string `json:"text" validate:"required"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation,omitempty"`
}

type QuizQuestion struct {
	Question    string       `json:"question" validate:"required"`
	Answers     []QuizAnswer `json:"answers" validate:"len=4,onecorrect,dive"`
	Difficulty  string       `json:"difficulty"`
	Topic       string       `json:"topic"`
	SkillTested string       `json:"skill_tested"`
}

// CorrectAnswers counts the answers flagged as correct.
func (q QuizQuestion) CorrectAnswers() int {
	return lo.CountBy(q.Answers, func(a QuizAnswer) bool {
		return a.IsCorrect
	})
}

type Quiz struct {
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description"`
	Instructions    string         `json:"instructions"`
	Questions       []QuizQuestion `json:"questions" validate:"min=1,dive"`
	DifficultyLevel string         `json:"difficulty_level"`
	TargetSkills    []string       `json:"target_skills"`
}

func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	c := *q
	c.Questions = lo.Map(q.Questions, func(question QuizQuestion, _ int) QuizQuestion {
		question.Answers = append([]QuizAnswer(nil), question.Answers...)
		return question
	})
	c.TargetSkills = append([]string(nil), q.TargetSkills...)
	return &c
}
