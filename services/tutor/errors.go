package tutor

import (
	"fmt"
)

// MalformedInputError means the learner's message did not contain a usable
// video link. The learner can fix it by sending a valid URL.
type MalformedInputError struct {
	Input string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("no video identifier found in %q", e.Input)
}
