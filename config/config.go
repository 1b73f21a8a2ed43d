package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	LLMProvider        string
	OpenAIAPIKey       string
	OpenAIModel        string
	AnthropicAPIKey    string
	AnthropicModel     string
	PineconeAPIKey     string
	PineconeIndexName  string
	TranscriptLanguage string
	QuizGuard          bool
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Load reads configuration from the environment. Values in a local .env file
// are used when present; variables already set take precedence.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] Failed to read .env file: %v", err)
	}

	return &Config{
		Port:               getEnv("PORT", "8000"),
		DatabaseURL:        os.Getenv("DB_URL"),
		LLMProvider:        getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     os.Getenv("ANTHROPIC_MODEL"),
		PineconeAPIKey:     os.Getenv("PINECONE_API_KEY"),
		PineconeIndexName:  getEnv("PINECONE_INDEX_NAME", "tutor-lessons-index"),
		TranscriptLanguage: getEnv("TRANSCRIPT_LANGUAGE", "en"),
		QuizGuard:          getBoolEnv("QUIZ_GUARD", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[WARN] Invalid boolean %q for %s, using %v", value, key, fallback)
		return fallback
	}
	return parsed
}
