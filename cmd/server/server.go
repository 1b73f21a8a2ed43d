package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"lessontutor/config"
	"lessontutor/db"
	"lessontutor/handlers"
	"lessontutor/services/capability"
	"lessontutor/services/lessonindex"
	"lessontutor/services/transcript"
	"lessontutor/services/tutor"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	llm, err := newCapabilityClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s client: %v", cfg.LLMProvider, err)
	}

	var fetcher transcript.Fetcher = transcript.NewYouTubeFetcher(cfg.TranscriptLanguage)
	var store db.CheckpointRepository

	if cfg.DatabaseURL != "" {
		checkpointRepo, err := db.NewPostgresCheckpointRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize checkpoint database: %v", err)
		}
		defer checkpointRepo.Close()
		store = checkpointRepo

		transcriptRepo, err := db.NewPostgresTranscriptRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize transcript database: %v", err)
		}
		defer transcriptRepo.Close()
		fetcher = transcript.NewCachingFetcher(transcriptRepo, fetcher)
	} else {
		log.Printf("[WARN] DB_URL not set, sessions are kept in memory")
		store = db.NewMemoryCheckpointRepository()
	}

	service, err := tutor.NewService(llm, fetcher,
		tutor.WithLessonIndex(newLessonIndex(cfg)),
		tutor.WithQuizGuard(cfg.QuizGuard),
	)
	if err != nil {
		log.Fatalf("Failed to initialize tutor service: %v", err)
	}
	sessionHandler := handlers.NewSessionHandler(service, store)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	sessionHandler.RegisterRoutes(router)
	handlers.RegisterOperationalRoutes(router)

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func newCapabilityClient(cfg *config.Config) (capability.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		client, err := capability.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}
		return capability.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func newLessonIndex(cfg *config.Config) lessonindex.Retriever {
	if cfg.PineconeAPIKey != "" && cfg.OpenAIAPIKey != "" {
		retriever, err := lessonindex.NewPineconeRetriever(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
		if err == nil {
			err = retriever.EnsureIndex(context.Background())
		}
		if err == nil {
			log.Printf("[INFO] Using Pinecone index %s for lesson excerpts", cfg.PineconeIndexName)
			return retriever
		}
		log.Printf("[WARN] Pinecone unavailable, using keyword index: %v", err)
	}
	return lessonindex.NewKeywordRetriever()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
