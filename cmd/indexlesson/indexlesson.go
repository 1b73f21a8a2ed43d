package main

import (
	"context"
	"log"
	"os"
	"strings"

	"lessontutor/config"
	"lessontutor/db"
	"lessontutor/services/lessonindex"
	"lessontutor/services/transcript"
	"lessontutor/services/tutor"
)

// indexlesson fetches the transcripts of the given videos and indexes them in
// Pinecone ahead of time, so the first quiz for a lesson does not wait on it.
//
//	indexlesson https://www.youtube.com/watch?v=<id> [more URLs or IDs...]
func main() {
	log.Printf("[INFO] Starting lesson indexing process")

	if len(os.Args) < 2 {
		log.Fatal("[ERROR] usage: indexlesson <video URL or ID>...")
	}

	cfg := config.Load()

	if cfg.PineconeAPIKey == "" {
		log.Fatal("[ERROR] PINECONE_API_KEY environment variable is required")
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("[ERROR] OPENAI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	var fetcher transcript.Fetcher = transcript.NewYouTubeFetcher(cfg.TranscriptLanguage)
	if cfg.DatabaseURL != "" {
		transcriptRepo, err := db.NewPostgresTranscriptRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[ERROR] Failed to initialize transcript database: %v", err)
		}
		defer transcriptRepo.Close()
		fetcher = transcript.NewCachingFetcher(transcriptRepo, fetcher)
	}

	retriever, err := lessonindex.NewPineconeRetriever(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize Pinecone retriever: %v", err)
	}

	if err := retriever.EnsureIndex(ctx); err != nil {
		log.Fatalf("[ERROR] Failed to ensure Pinecone index: %v", err)
	}

	videos := os.Args[1:]
	failed := 0
	for i, arg := range videos {
		log.Printf("[INFO] Processing video %d/%d (%s)", i+1, len(videos), arg)

		if err := indexVideo(ctx, fetcher, retriever, arg); err != nil {
			log.Printf("[ERROR] Failed to index %s: %v", arg, err)
			failed++
			continue
		}
	}

	if failed > 0 {
		log.Fatalf("[ERROR] %d of %d videos could not be indexed", failed, len(videos))
	}
	log.Printf("[INFO] Lesson indexing process completed successfully")
}

func indexVideo(ctx context.Context, fetcher transcript.Fetcher, retriever lessonindex.Retriever, arg string) error {
	videoID := arg
	if strings.Contains(arg, "/") || strings.Contains(arg, "=") {
		parsed, err := tutor.ParseVideoID(arg)
		if err != nil {
			return err
		}
		videoID = parsed
	}

	segments, err := fetcher.FetchTranscript(ctx, videoID)
	if err != nil {
		return err
	}

	text := transcript.Join(segments)
	lessonID := lessonindex.LessonID(text)
	log.Printf("[INFO] Indexing video %s as lesson %s (%d segments)", videoID, lessonID, len(segments))

	return retriever.Index(ctx, lessonID, text)
}
