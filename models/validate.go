package models

import (
	"github.com/go-playground/validator/v10"
)

// modelValidate checks generated artifacts against their struct tags.
// Initialized in init() with the custom quiz validators.
var modelValidate *validator.Validate

func init() {
	modelValidate = validator.New()

	_ = modelValidate.RegisterValidation("onecorrect", validateOneCorrect)
}

// validateOneCorrect requires exactly one answer in the slice to be correct.
func validateOneCorrect(fl validator.FieldLevel) bool {
	answers, ok := fl.Field().Interface().([]QuizAnswer)
	if !ok {
		return false
	}
	return QuizQuestion{Answers: answers}.CorrectAnswers() == 1
}

// Validate runs struct-tag validation on v.
func Validate(v any) error {
	return modelValidate.Struct(v)
}
