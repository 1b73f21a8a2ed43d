package tutor

import (
	"lessontutor/services/capability"
)

// Schema descriptors are written by hand and versioned. Bump the version when
// a property changes so prompts and logs show which contract was used.
const schemaVersion = "v1"

func stringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

func stringListProperty(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "string"},
	}
}

func questionResponseProperty(description string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": description,
		"properties": map[string]any{
			"question": stringProperty("The question posed to the student"),
			"response": stringProperty("The student's response to the question"),
			"analysis": stringProperty("Analysis of the student's response"),
		},
		"required": []string{"question", "response", "analysis"},
	}
}

func signalProperty(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reason": stringProperty("Why this decision was made"),
			"bool_value": map[string]any{
				"type":        "boolean",
				"description": description,
			},
		},
		"required": []string{"reason", "bool_value"},
	}
}

var studentAssessmentProperty = map[string]any{
	"type":        "object",
	"description": "One question and response per cognitive skill",
	"properties": map[string]any{
		"knowledge_recall": questionResponseProperty("Tests basic recall of facts from the lecture"),
		"comprehension":    questionResponseProperty("Tests understanding of concepts from the lecture"),
		"application":      questionResponseProperty("Tests ability to apply concepts to new situations"),
		"analysis":         questionResponseProperty("Tests ability to break down and examine relationships between concepts"),
		"synthesis":        questionResponseProperty("Tests ability to combine ideas to form new concepts"),
		"evaluation":       questionResponseProperty("Tests ability to make judgments about the value of ideas or materials"),
		"metacognitive":    questionResponseProperty("Questions about the student's own learning process and understanding"),
	},
}

var studentLevelAssessmentSchema = capability.NewSchema(
	"student_level_assessment",
	schemaVersion,
	"The student's level of understanding, built from their answers to assessment questions",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"assessment":            studentAssessmentProperty,
			"overall_level":         stringProperty("Overall assessment of the student's level based on their responses"),
			"strengths":             stringListProperty("Areas where the student showed strong understanding"),
			"areas_for_improvement": stringListProperty("Areas where the student might benefit from additional study"),
		},
		"required": []string{"assessment", "overall_level", "strengths", "areas_for_improvement"},
	},
)

var responseAssessmentSchema = capability.NewSchema(
	"response_assessment",
	schemaVersion,
	"Classify the user's latest message: an answer to an assessment question, a request for a quiz, or a reason to keep assessing the student's level",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"should_create_quiz": signalProperty(
				"Whether to create a quiz based on the transcript and student's level. If the student level is not determined, this will always be false."),
			"should_analyze_student_level": signalProperty(
				"Whether to analyze the student's level based on the responses from the student. If the student has provided responses to the questions you asked to analyze their level, this will be false."),
			"should_extract_student_response": signalProperty(
				"If the student has provided a response to the question for analyzing their level, this will be true."),
		},
		"required": []string{"should_create_quiz", "should_analyze_student_level", "should_extract_student_response"},
	},
)

var youTubeURLSchema = capability.NewSchema(
	"youtube_url",
	schemaVersion,
	"Parse the YouTube URL from the user's input",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": stringProperty("The YouTube URL to parse"),
		},
		"required": []string{"url"},
	},
)

var quizAnswerProperty = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text":        stringProperty("The answer text"),
		"is_correct":  map[string]any{"type": "boolean", "description": "Whether this is the correct answer"},
		"explanation": stringProperty("Explanation for why this answer is correct or incorrect"),
	},
	"required": []string{"text", "is_correct", "explanation"},
}

var quizQuestionProperty = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": stringProperty("The question text"),
		"answers": map[string]any{
			"type":        "array",
			"description": "Exactly 4 possible answers, exactly one of them correct",
			"items":       quizAnswerProperty,
			"minItems":    4,
			"maxItems":    4,
		},
		"difficulty": map[string]any{
			"type":        "string",
			"description": "Difficulty level of the question",
			"enum":        []string{"easy", "moderate", "challenging"},
		},
		"topic":        stringProperty("The main topic this question covers"),
		"skill_tested": stringProperty("The type of skill being tested (recall, comprehension, application, etc.)"),
	},
	"required": []string{"question", "answers", "difficulty", "topic", "skill_tested"},
}

var quizSchema = capability.NewSchema(
	"quiz",
	schemaVersion,
	"A multiple-choice quiz tailored to the student's assessed level",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":        stringProperty("Title of the quiz"),
			"description":  stringProperty("Brief description of the quiz content"),
			"instructions": stringProperty("Instructions for taking the quiz"),
			"questions": map[string]any{
				"type":        "array",
				"description": "List of quiz questions",
				"items":       quizQuestionProperty,
				"minItems":    1,
			},
			"difficulty_level": stringProperty("Overall difficulty level of the quiz"),
			"target_skills":    stringListProperty("List of skills being tested in this quiz"),
		},
		"required": []string{"title", "description", "instructions", "questions", "difficulty_level", "target_skills"},
	},
)
