package lessonindex

import (
	"context"
	"log"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// DefaultMaxLessons bounds how many lessons a KeywordRetriever holds.
const DefaultMaxLessons = 256

// KeywordRetriever keeps chunks in memory and ranks them by fuzzy term
// matches. It needs no external services. The least recently used lesson is
// evicted once maxLessons are held.
type KeywordRetriever struct {
	chunkWords int
	lessons    *lru.Cache[string, []string]
}

func NewKeywordRetriever() *KeywordRetriever {
	return NewKeywordRetrieverWithLimit(DefaultMaxLessons)
}

func NewKeywordRetrieverWithLimit(maxLessons int) *KeywordRetriever {
	if maxLessons <= 0 {
		maxLessons = DefaultMaxLessons
	}
	// lru.New only fails for a non-positive size.
	lessons, _ := lru.NewWithEvict[string, []string](maxLessons, func(lessonID string, _ []string) {
		log.Printf("[INFO] Evicted lesson %s from keyword index", lessonID)
	})
	return &KeywordRetriever{
		chunkWords: defaultChunkWords,
		lessons:    lessons,
	}
}

func (r *KeywordRetriever) Index(ctx context.Context, lessonID, transcript string) error {
	chunks := Chunk(transcript, r.chunkWords)

	r.lessons.Add(lessonID, chunks)

	log.Printf("[INFO] Indexed %d chunks for lesson %s", len(chunks), lessonID)
	return nil
}

func (r *KeywordRetriever) Query(ctx context.Context, lessonID string, topics []string, limit int) ([]string, error) {
	chunks, _ := r.lessons.Get(lessonID)

	if len(chunks) == 0 || len(topics) == 0 {
		return []string{}, nil
	}

	type scored struct {
		index int
		score int
	}

	var matches []scored
	for i, chunk := range chunks {
		if score := chunkScore(chunk, topics); score > 0 {
			matches = append(matches, scored{index: i, score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	log.Printf("[INFO] Found %d excerpts for lesson %s matching %v", len(matches), lessonID, topics)
	return lo.Map(matches, func(m scored, _ int) string {
		return chunks[m.index]
	}), nil
}

// chunkScore counts the topic words that fuzzily match a word of the chunk.
func chunkScore(chunk string, topics []string) int {
	words := lo.FilterMap(strings.Fields(strings.ToLower(chunk)), func(word string, _ int) (string, bool) {
		clean := strings.Trim(word, ".,!?;:()[]{}\"'")
		return clean, clean != ""
	})

	score := 0
	for _, topic := range topics {
		for _, term := range strings.Fields(strings.ToLower(topic)) {
			if len(term) <= 2 {
				continue
			}
			if fuzzy.MatchFold(term, chunk) || len(fuzzy.Find(term, words)) > 0 {
				score++
			}
		}
	}
	return score
}
