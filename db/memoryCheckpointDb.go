package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lessontutor/models"
)

// MemoryCheckpointRepository keeps checkpoints in process. States are stored
// as JSON so callers never share memory with the store.
type MemoryCheckpointRepository struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemoryCheckpointRepository() *MemoryCheckpointRepository {
	return &MemoryCheckpointRepository{sessions: map[string][]byte{}}
}

func (r *MemoryCheckpointRepository) CreateSession(ctx context.Context, sessionID string, state *models.ConversationState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; ok {
		return fmt.Errorf("session %s already exists", sessionID)
	}
	r.sessions[sessionID] = stateJSON
	return nil
}

func (r *MemoryCheckpointRepository) LoadCheckpoint(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	r.mu.Lock()
	stateJSON, ok := r.sessions[sessionID]
	r.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	state := models.NewConversationState()
	if err := json.Unmarshal(stateJSON, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return state, nil
}

func (r *MemoryCheckpointRepository) SaveCheckpoint(ctx context.Context, sessionID string, state *models.ConversationState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	var stored struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(current, &stored); err != nil {
		return fmt.Errorf("failed to read stored version: %w", err)
	}
	if state.Version != stored.Version+1 {
		return fmt.Errorf("session %s version %d: %w", sessionID, state.Version, ErrStaleCheckpoint)
	}

	r.sessions[sessionID] = stateJSON
	return nil
}
