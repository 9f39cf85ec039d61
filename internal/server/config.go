package server

import (
	"os"
	"strconv"

	"ai-tutorial/internal/db"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	// OpenAI-compatible backend (Ollama, LM Studio, or the real thing).
	LLMBaseURL     string
	LLMAPIKey      string
	ChatModel      string
	EmbeddingModel string

	// Vector store: "simple" (file-backed, default) or "chroma".
	VectorStoreType  string
	VectorStorePath  string
	ChromaCollection string

	// Resource directories bundled with the app.
	ResourcesDir string
}

func loadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMAPIKey:        getEnv("LLM_API_KEY", "ollama"),
		ChatModel:        getEnv("CHAT_MODEL", "mistral"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		VectorStoreType:  getEnv("VECTOR_STORE_TYPE", "simple"),
		VectorStorePath:  getEnv("VECTOR_STORE_PATH", "data/vectorstore.json"),
		ChromaCollection: getEnv("CHROMA_COLLECTION", "documents"),
		ResourcesDir:     getEnv("RESOURCES_DIR", "resources"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getRedisConfig reads Redis configuration from environment variables
func getRedisConfig() db.RedisConfig {
	config := db.DefaultRedisConfig()

	if host := os.Getenv("REDIS_HOST"); host != "" {
		config.Host = host
	}

	if portStr := os.Getenv("REDIS_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}

	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Password = password
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if dbNum, err := strconv.Atoi(dbStr); err == nil {
			config.DB = dbNum
		}
	}

	if poolSizeStr := os.Getenv("REDIS_POOL_SIZE"); poolSizeStr != "" {
		if poolSize, err := strconv.Atoi(poolSizeStr); err == nil {
			config.PoolSize = poolSize
		}
	}

	return config
}

// getChromaConfig reads ChromaDB configuration from environment variables
func getChromaConfig() db.ChromaConfig {
	config := db.DefaultChromaConfig()

	if host := os.Getenv("CHROMA_HOST"); host != "" {
		config.Host = host
	}

	if portStr := os.Getenv("CHROMA_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}

	if tenant := os.Getenv("CHROMA_TENANT"); tenant != "" {
		config.Tenant = tenant
	}

	if database := os.Getenv("CHROMA_DATABASE"); database != "" {
		config.Database = database
	}

	return config
}
