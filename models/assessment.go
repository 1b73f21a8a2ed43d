package models

import (
	"github.com/samber/lo"
)

// QuestionResponse records one assessment question, the learner's answer and
// the tutor's analysis of it.
type QuestionResponse struct {
	Question string `json:"question"`
	Response string `json:"response"`
	Analysis string `json:"analysis"`
}

func (q QuestionResponse) IsEmpty() bool {
	return q.Question == "" && q.Response == "" && q.Analysis == ""
}

func (q *QuestionResponse) merge(in QuestionResponse) {
	if in.Question != "" {
		q.Question = in.Question
	}
	if in.Response != "" {
		q.Response = in.Response
	}
	if in.Analysis != "" {
		q.Analysis = in.Analysis
	}
}

// StudentAssessment holds one QuestionResponse per cognitive skill.
type StudentAssessment struct {
	KnowledgeRecall QuestionResponse `json:"knowledge_recall"`
	Comprehension   QuestionResponse `json:"comprehension"`
	Application     QuestionResponse `json:"application"`
	Analysis        QuestionResponse `json:"analysis"`
	Synthesis       QuestionResponse `json:"synthesis"`
	Evaluation      QuestionResponse `json:"evaluation"`
	Metacognitive   QuestionResponse `json:"metacognitive"`
}

func (a *StudentAssessment) skills() []*QuestionResponse {
	return []*QuestionResponse{
		&a.KnowledgeRecall,
		&a.Comprehension,
		&a.Application,
		&a.Analysis,
		&a.Synthesis,
		&a.Evaluation,
		&a.Metacognitive,
	}
}

// AnsweredSkills returns how many skills have a recorded learner response.
func (a *StudentAssessment) AnsweredSkills() int {
	return lo.CountBy(a.skills(), func(q *QuestionResponse) bool {
		return q.Response != ""
	})
}

type StudentLevelAssessment struct {
	Assessment          StudentAssessment `json:"assessment"`
	OverallLevel        string            `json:"overall_level"`
	Strengths           []string          `json:"strengths"`
	AreasForImprovement []string          `json:"areas_for_improvement"`
}

// NewStudentLevelAssessment returns the empty skeleton the first extracted
// response is merged into.
func NewStudentLevelAssessment() *StudentLevelAssessment {
	return &StudentLevelAssessment{
		Strengths:           []string{},
		AreasForImprovement: []string{},
	}
}

// Merge copies every non-empty field of in over a. Empty strings and empty
// lists never overwrite stored values.
func (a *StudentLevelAssessment) Merge(in *StudentLevelAssessment) {
	if in == nil {
		return
	}

	incoming := in.Assessment.skills()
	for i, skill := range a.Assessment.skills() {
		skill.merge(*incoming[i])
	}

	if in.OverallLevel != "" {
		a.OverallLevel = in.OverallLevel
	}
	if len(in.Strengths) > 0 {
		a.Strengths = append([]string(nil), in.Strengths...)
	}
	if len(in.AreasForImprovement) > 0 {
		a.AreasForImprovement = append([]string(nil), in.AreasForImprovement...)
	}
}

func (a *StudentLevelAssessment) Clone() *StudentLevelAssessment {
	if a == nil {
		return nil
	}
	c := *a
	c.Strengths = append([]string(nil), a.Strengths...)
	c.AreasForImprovement = append([]string(nil), a.AreasForImprovement...)
	return &c
}
