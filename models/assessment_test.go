package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentLevelAssessmentMerge(t *testing.T) {
	t.Run("empty fields keep stored values", func(t *testing.T) {
		stored := NewStudentLevelAssessment()
		stored.OverallLevel = "intermediate"
		stored.AreasForImprovement = []string{"terminology"}

		stored.Merge(&StudentLevelAssessment{
			OverallLevel: "",
			Strengths:    []string{"clarity"},
		})

		assert.Equal(t, "intermediate", stored.OverallLevel)
		assert.Equal(t, []string{"clarity"}, stored.Strengths)
		assert.Equal(t, []string{"terminology"}, stored.AreasForImprovement)
	})

	t.Run("skills merge per field", func(t *testing.T) {
		stored := NewStudentLevelAssessment()
		stored.Assessment.KnowledgeRecall = QuestionResponse{
			Question: "What do plants need for photosynthesis?",
			Response: "Light, water and CO2",
		}

		stored.Merge(&StudentLevelAssessment{
			Assessment: StudentAssessment{
				KnowledgeRecall: QuestionResponse{Analysis: "Complete answer"},
				Comprehension: QuestionResponse{
					Question: "Why are leaves green?",
					Response: "Chlorophyll reflects green light",
				},
			},
		})

		assert.Equal(t, "What do plants need for photosynthesis?", stored.Assessment.KnowledgeRecall.Question)
		assert.Equal(t, "Light, water and CO2", stored.Assessment.KnowledgeRecall.Response)
		assert.Equal(t, "Complete answer", stored.Assessment.KnowledgeRecall.Analysis)
		assert.Equal(t, "Why are leaves green?", stored.Assessment.Comprehension.Question)
		assert.True(t, stored.Assessment.Application.IsEmpty())
		assert.Equal(t, 2, stored.Assessment.AnsweredSkills())
	})

	t.Run("nil incoming is a no-op", func(t *testing.T) {
		stored := NewStudentLevelAssessment()
		stored.OverallLevel = "beginner"
		stored.Merge(nil)
		assert.Equal(t, "beginner", stored.OverallLevel)
	})

	t.Run("merged lists are not aliased", func(t *testing.T) {
		incoming := &StudentLevelAssessment{Strengths: []string{"recall"}}
		stored := NewStudentLevelAssessment()
		stored.Merge(incoming)
		incoming.Strengths[0] = "changed"
		require.Len(t, stored.Strengths, 1)
		assert.Equal(t, "recall", stored.Strengths[0])
	})
}
