package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"lessontutor/models"
	"lessontutor/services/transcript"

	_ "github.com/lib/pq"
)

type PostgresTranscriptRepository struct {
	db *sql.DB
}

func NewPostgresTranscriptRepository(databaseURL string) (*PostgresTranscriptRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresTranscriptRepository{db: db}, nil
}

func (r *PostgresTranscriptRepository) GetTranscript(ctx context.Context, videoID string) ([]models.TranscriptSegment, error) {
	query := `
		SELECT video_id, segments, created_at 
		FROM tutor.transcripts 
		WHERE video_id = $1`

	cached := &models.CachedTranscript{}
	var segmentsJSON []byte
	err := r.db.QueryRowContext(ctx, query, videoID).Scan(&cached.VideoID, &segmentsJSON, &cached.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transcript.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	if err := json.Unmarshal(segmentsJSON, &cached.Segments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal segments: %w", err)
	}

	return cached.Segments, nil
}

func (r *PostgresTranscriptRepository) SaveTranscript(ctx context.Context, videoID string, segments []models.TranscriptSegment) error {
	segmentsJSON, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("failed to marshal segments: %w", err)
	}

	query := `
		INSERT INTO tutor.transcripts (video_id, segments) 
		VALUES ($1, $2) 
		ON CONFLICT (video_id) DO UPDATE SET segments = EXCLUDED.segments`

	if _, err := r.db.ExecContext(ctx, query, videoID, segmentsJSON); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	return nil
}

func (r *PostgresTranscriptRepository) Close() error {
	return r.db.Close()
}
