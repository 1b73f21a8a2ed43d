package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"lessontutor/models"

	_ "github.com/lib/pq"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStaleCheckpoint = errors.New("checkpoint is stale")
)

// CheckpointRepository persists the last committed state of each session.
// Save must reject a state whose Version is not exactly one past the stored
// version, so replaying a turn cannot overwrite a newer checkpoint.
type CheckpointRepository interface {
	CreateSession(ctx context.Context, sessionID string, state *models.ConversationState) error
	LoadCheckpoint(ctx context.Context, sessionID string) (*models.ConversationState, error)
	SaveCheckpoint(ctx context.Context, sessionID string, state *models.ConversationState) error
}

type PostgresCheckpointRepository struct {
	db *sql.DB
}

func NewPostgresCheckpointRepository(databaseURL string) (*PostgresCheckpointRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresCheckpointRepository{db: db}, nil
}

func (r *PostgresCheckpointRepository) CreateSession(ctx context.Context, sessionID string, state *models.ConversationState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	query := `
		INSERT INTO tutor.checkpoints (session_id, version, state) 
		VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, sessionID, state.Version, stateJSON); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *PostgresCheckpointRepository) LoadCheckpoint(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	query := `
		SELECT state 
		FROM tutor.checkpoints 
		WHERE session_id = $1`

	var stateJSON []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&stateJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	state := models.NewConversationState()
	if err := json.Unmarshal(stateJSON, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}

	return state, nil
}

func (r *PostgresCheckpointRepository) SaveCheckpoint(ctx context.Context, sessionID string, state *models.ConversationState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	query := `
		UPDATE tutor.checkpoints 
		SET state = $1, version = $2, updated_at = NOW() 
		WHERE session_id = $3 AND version = $4`

	result, err := r.db.ExecContext(ctx, query, stateJSON, state.Version, sessionID, state.Version-1)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, err := r.LoadCheckpoint(ctx, sessionID); errors.Is(err, ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("session %s version %d: %w", sessionID, state.Version, ErrStaleCheckpoint)
	}

	return nil
}

func (r *PostgresCheckpointRepository) Close() error {
	return r.db.Close()
}
