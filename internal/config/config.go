package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Ingest    IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	RagLogFilePath     string
	CorsAllowedOrigins string
	GreetingsPath      string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	OllamaBaseURL     string
	EmbeddingModel    string
	LLMModel          string
	LLMTimeoutSeconds int
}

// RetrievalConfig carries the tuned retrieval constants. The 0.7 threshold
// and top-8 cap depend on the embedding model's score distribution, so they
// stay configurable rather than hard-coded.
type RetrievalConfig struct {
	Threshold    float64
	TopK         int
	HistoryLimit int
}

type IngestConfig struct {
	DocumentsDir string
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RagLogFilePath:     getEnv("RAG_LOG_FILE_PATH", "logs/llm_rag.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			GreetingsPath:      getEnv("GREETINGS_PATH", "data/greetings.json"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMModel:          getEnv("LLM_MODEL", "llama3.2"),
			LLMTimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),
		},
		Retrieval: RetrievalConfig{
			Threshold:    getEnvAsFloat("RETRIEVAL_THRESHOLD", 0.7),
			TopK:         getEnvAsInt("RETRIEVAL_TOP_K", 8),
			HistoryLimit: getEnvAsInt("CHAT_HISTORY_LIMIT", 5),
		},
		Ingest: IngestConfig{
			DocumentsDir: getEnv("DOCUMENTS_DIR", "./data"),
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 510),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 110),
			BatchSize:    getEnvAsInt("INDEX_BATCH_SIZE", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
