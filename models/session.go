package models

type CreateSessionResponse struct {
	SessionID string             `json:"session_id"`
	State     *ConversationState `json:"state"`
}

type SessionMessageRequest struct {
	Message string `json:"message" validate:"required,max=20000"`
}

type SessionResponse struct {
	SessionID string             `json:"session_id"`
	State     *ConversationState `json:"state"`
}
