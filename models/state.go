package models

// ConversationState is the single aggregate a tutoring session mutates.
// Messages are append-only; the scalar fields are replaced by stage updates.
type ConversationState struct {
	Messages          []Message               `json:"messages"`
	Route             string                  `json:"route,omitempty"`
	Transcript        *string                 `json:"transcript,omitempty"`
	LessonExplanation *string                 `json:"lesson_explanation,omitempty"`
	Assessment        *StudentLevelAssessment `json:"assessment,omitempty"`
	Quiz              *Quiz                   `json:"quiz,omitempty"`
	Version           int                     `json:"version"`
}

func NewConversationState() *ConversationState {
	return &ConversationState{Messages: []Message{}}
}

// Update is the partial state a stage produces. Nil fields are left alone.
type Update struct {
	Route             *string
	Messages          []Message
	Transcript        *string
	LessonExplanation *string
	Assessment        *StudentLevelAssessment
	Quiz              *Quiz
}

// Apply merges u into s. Messages are appended in order.
func (s *ConversationState) Apply(u Update) {
	if u.Route != nil {
		s.Route = *u.Route
	}
	if len(u.Messages) > 0 {
		s.Messages = append(s.Messages, u.Messages...)
	}
	if u.Transcript != nil {
		s.Transcript = u.Transcript
	}
	if u.LessonExplanation != nil {
		s.LessonExplanation = u.LessonExplanation
	}
	if u.Assessment != nil {
		s.Assessment = u.Assessment
	}
	if u.Quiz != nil {
		s.Quiz = u.Quiz
	}
}

// Clone returns a deep copy so a turn can be discarded without touching s.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return NewConversationState()
	}
	c := &ConversationState{
		Messages:   append([]Message{}, s.Messages...),
		Route:      s.Route,
		Assessment: s.Assessment.Clone(),
		Quiz:       s.Quiz.Clone(),
		Version:    s.Version,
	}
	if s.Transcript != nil {
		t := *s.Transcript
		c.Transcript = &t
	}
	if s.LessonExplanation != nil {
		l := *s.LessonExplanation
		c.LessonExplanation = &l
	}
	return c
}

func (s *ConversationState) HasTranscript() bool {
	return s.Transcript != nil && *s.Transcript != ""
}

// LastUserMessage returns the content of the most recent user message, or "".
func (s *ConversationState) LastUserMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}
