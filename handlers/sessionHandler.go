package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lessontutor/db"
	"lessontutor/models"
	"lessontutor/services/capability"
	"lessontutor/services/transcript"
	"lessontutor/services/tutor"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SessionHandler struct {
	service *tutor.Service
	store   db.CheckpointRepository
}

func NewSessionHandler(service *tutor.Service, store db.CheckpointRepository) *SessionHandler {
	return &SessionHandler{service: service, store: store}
}

func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", h.GetSession).Methods("GET")
	router.HandleFunc("/sessions/{id}/messages", h.SendMessage).Methods("POST")
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	state := models.NewConversationState()

	if err := h.store.CreateSession(r.Context(), sessionID, state); err != nil {
		log.Printf("[ERROR] Failed to create session: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	log.Printf("[INFO] Created session %s", sessionID)
	h.writeJSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: sessionID,
		State:     state,
	})
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := h.store.LoadCheckpoint(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.SessionResponse{SessionID: sessionID, State: state})
}

func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	log.Printf("[INFO] Received message for session %s", sessionID)

	var req models.SessionMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode message request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := models.Validate(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "A message of at most 20000 characters is required")
		return
	}

	state, err := h.service.RunTurn(r.Context(), h.store, sessionID, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}

	log.Printf("[INFO] Session %s advanced to version %d", sessionID, state.Version)
	h.writeJSONResponse(w, http.StatusOK, models.SessionResponse{SessionID: sessionID, State: state})
}

// statusForError maps turn failures to HTTP status codes.
func statusForError(err error) int {
	var malformed *tutor.MalformedInputError
	var capErr *capability.Error

	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrSessionNotFound), errors.Is(err, transcript.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrStaleCheckpoint):
		return http.StatusConflict
	case errors.As(err, &capErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	switch status {
	case http.StatusInternalServerError:
		log.Printf("[ERROR] Session request failed: %v", err)
		h.writeErrorResponse(w, status, "Internal server error")
	case http.StatusBadGateway:
		log.Printf("[ERROR] Upstream model call failed: %v", err)
		h.writeErrorResponse(w, status, "Upstream model call failed")
	default:
		h.writeErrorResponse(w, status, err.Error())
	}
}

func (h *SessionHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *SessionHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
