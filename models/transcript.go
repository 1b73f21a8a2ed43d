package models

import "time"

// TranscriptSegment is one caption line in source order.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type CachedTranscript struct {
	VideoID   string              `json:"video_id" db:"video_id"`
	Segments  []TranscriptSegment `json:"segments" db:"segments"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
}
