package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStage(t *testing.T) {
	yes := Signal{Reason: "test", BoolValue: true}
	no := Signal{Reason: "test"}

	tests := []struct {
		name          string
		ra            ResponseAssessment
		hasAssessment bool
		guard         bool
		want          string
	}{
		{
			name:          "extract wins over everything",
			ra:            ResponseAssessment{ShouldExtractStudentResponse: yes, ShouldCreateQuiz: yes, ShouldAnalyzeStudentLevel: yes},
			hasAssessment: true,
			guard:         true,
			want:          StageExtractResponse,
		},
		{
			name:          "quiz wins over analyze",
			ra:            ResponseAssessment{ShouldCreateQuiz: yes, ShouldAnalyzeStudentLevel: yes},
			hasAssessment: true,
			guard:         true,
			want:          StageCreateQuiz,
		},
		{
			name: "analyze",
			ra:   ResponseAssessment{ShouldAnalyzeStudentLevel: yes},
			want: StageAnalyzeLevel,
		},
		{
			name: "no signal defaults to analyze",
			ra:   ResponseAssessment{ShouldCreateQuiz: no, ShouldAnalyzeStudentLevel: no, ShouldExtractStudentResponse: no},
			want: StageAnalyzeLevel,
		},
		{
			name:  "guard demotes quiz without assessment",
			ra:    ResponseAssessment{ShouldCreateQuiz: yes},
			guard: true,
			want:  StageAnalyzeLevel,
		},
		{
			name: "quiz without assessment when guard is off",
			ra:   ResponseAssessment{ShouldCreateQuiz: yes},
			want: StageCreateQuiz,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectStage(tt.ra, tt.hasAssessment, tt.guard))
		})
	}
}
