// Package lessonindex stores transcript excerpts so quizzes can target the
// parts of a lesson a learner struggled with.
package lessonindex

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const defaultChunkWords = 120

type Retriever interface {
	Index(ctx context.Context, lessonID, transcript string) error
	Query(ctx context.Context, lessonID string, topics []string, limit int) ([]string, error)
}

// LessonID derives a stable key for a transcript.
func LessonID(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return hex.EncodeToString(sum[:8])
}

// Chunk splits a transcript into consecutive excerpts of at most size words.
func Chunk(transcript string, size int) []string {
	if size <= 0 {
		size = defaultChunkWords
	}

	words := strings.Fields(transcript)
	var chunks []string
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
