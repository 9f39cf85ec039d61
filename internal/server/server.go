// Package server assembles the application: configuration, backing stores,
// services, handlers, and the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	openai "github.com/sashabaranov/go-openai"
	httpSwagger "github.com/swaggo/http-swagger"

	"ai-tutorial/internal/db"
	"ai-tutorial/internal/embedding"
	"ai-tutorial/internal/handlers"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/repositories"
	"ai-tutorial/internal/routes"
	"ai-tutorial/internal/security"
	"ai-tutorial/internal/services"
	"ai-tutorial/internal/splitter"
)

const (
	chunkSize    = 800
	chunkOverlap = 400

	faqDocument     = "consultancy-faq.txt"
	contextDocument = "olympic-sports.txt"
)

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Server owns the HTTP server and the pieces that need a shutdown hook.
type Server struct {
	httpServer *http.Server
	store      repositories.VectorRepository
	storePath  string
	logger     *log.Logger
}

// New builds the fully wired server from environment configuration.
func New() (*Server, error) {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)
	cfg := loadConfig()

	// OpenAI-compatible client shared by chat and embeddings.
	apiConfig := openai.DefaultConfig(cfg.LLMAPIKey)
	apiConfig.BaseURL = cfg.LLMBaseURL
	api := openai.NewClientWithConfig(apiConfig)

	chat := llm.NewClient(api, cfg.ChatModel)
	embedder := embedding.NewOpenAIEmbedder(api, cfg.EmbeddingModel)
	logger.Printf("LLM backend: %s (chat: %s, embeddings: %s)", cfg.LLMBaseURL, cfg.ChatModel, cfg.EmbeddingModel)

	tokenizer, err := splitter.NewTiktokenTokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	textSplitter := splitter.NewTokenTextSplitter(tokenizer, chunkSize, chunkOverlap)

	store := initializeVectorStore(cfg, embedder, logger)
	ingestionService := services.NewIngestionService(store, textSplitter, logger)

	if err := bootstrapIndex(cfg, store, ingestionService, logger); err != nil {
		return nil, err
	}

	memory := initializeMemory(logger)

	sanitizer := security.NewSanitizer(logger)
	filter := security.NewContentFilter(logger)

	templatesDir := filepath.Join(cfg.ResourcesDir, "prompts")
	docsDir := filepath.Join(cfg.ResourcesDir, "docs")

	chatService := services.NewChatService(chat, sanitizer, filter, memory, logger)
	promptService := services.NewPromptService(chat, templatesDir, filepath.Join(docsDir, contextDocument), logger)
	outputService := services.NewOutputService(chat, logger)
	ragService := services.NewRagService(chat, store, templatesDir, logger)

	h := &routes.Handlers{
		Home:     handlers.HomeHandler,
		Health:   handlers.HealthCheckHandler,
		Chat:     handlers.NewChatHandler(chatService, logger),
		Prompts:  handlers.NewPromptHandler(promptService, logger),
		Output:   handlers.NewOutputHandler(outputService, logger),
		Rag:      handlers.NewRagHandler(ragService, logger),
		Document: handlers.NewDocumentHandler(ingestionService, logger),
	}

	router := mux.NewRouter()
	routes.RegisterRoutes(router, h)

	// Add Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+cfg.Port+"/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: corsMiddleware(router),
		},
		store:     store,
		storePath: cfg.VectorStorePath,
		logger:    logger,
	}, nil
}

// Run starts the server and blocks until an interrupt, then shuts down
// gracefully and persists the vector store.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Printf("Received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Printf("Graceful shutdown failed: %v", err)
	}

	if persistent, ok := s.store.(repositories.PersistentVectorRepository); ok {
		if err := persistent.Save(s.storePath); err != nil {
			s.logger.Printf("❌ Failed to save vector store: %v", err)
		} else {
			s.logger.Printf("✅ Vector store saved to %s", s.storePath)
		}
	}
	return nil
}

// initializeVectorStore picks the similarity index backend. ChromaDB is used
// when configured and reachable; otherwise the file-backed store is used.
func initializeVectorStore(cfg Config, embedder embedding.Embedder, logger *log.Logger) repositories.VectorRepository {
	if cfg.VectorStoreType == "chroma" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		chromaConfig := getChromaConfig()
		logger.Printf("Connecting to ChromaDB: %s:%d", chromaConfig.Host, chromaConfig.Port)

		chromaClient := db.NewChromaClient(chromaConfig)
		if err := chromaClient.Heartbeat(ctx); err != nil {
			logger.Printf("❌ ChromaDB connection failed: %v", err)
			logger.Println("   Hint: Ensure ChromaDB is running (docker run -d -p 8000:8000 chromadb/chroma)")
			logger.Println("   Falling back to the file-backed vector store")
		} else {
			logger.Println("✅ ChromaDB connected successfully")
			return repositories.NewChromaVectorRepository(chromaClient, embedder, cfg.ChromaCollection, logger)
		}
	}

	return repositories.NewSimpleVectorRepository(embedder, logger)
}

// bootstrapIndex loads a previously saved index, or builds one from the
// bundled FAQ document and saves it for the next start.
func bootstrapIndex(cfg Config, store repositories.VectorRepository, ingestion *services.IngestionService, logger *log.Logger) error {
	persistent, ok := store.(repositories.PersistentVectorRepository)
	if !ok {
		return nil
	}

	if _, err := os.Stat(cfg.VectorStorePath); err == nil {
		if err := persistent.Load(cfg.VectorStorePath); err != nil {
			return fmt.Errorf("failed to load vector store from %s: %w", cfg.VectorStorePath, err)
		}
		logger.Printf("✅ Vector store loaded from %s", cfg.VectorStorePath)
		return nil
	}

	faqPath := filepath.Join(cfg.ResourcesDir, "docs", faqDocument)
	logger.Printf("No saved vector store found, building index from %s", faqPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := ingestion.IngestLocalFile(ctx, faqPath)
	if err != nil {
		logger.Printf("❌ Failed to build index from %s: %v", faqPath, err)
		logger.Println("   Hint: Ensure the embedding backend is reachable; RAG endpoints will return no context until documents are ingested")
		return nil
	}

	if err := persistent.Save(cfg.VectorStorePath); err != nil {
		return fmt.Errorf("failed to save vector store to %s: %w", cfg.VectorStorePath, err)
	}
	logger.Printf("✅ Indexed %d chunks and saved vector store to %s", result.ChunkCount, cfg.VectorStorePath)
	return nil
}

// initializeMemory connects to Redis for conversation history. The server
// runs without memory when Redis is unreachable.
func initializeMemory(logger *log.Logger) repositories.MemoryRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisConfig := getRedisConfig()
	logger.Printf("Connecting to Redis: %s:%d (DB: %d)", redisConfig.Host, redisConfig.Port, redisConfig.DB)

	redisClient := db.NewRedisClient(redisConfig)
	if err := db.PingRedis(ctx, redisClient); err != nil {
		logger.Printf("❌ Redis connection failed: %v", err)
		logger.Println("   Conversation memory will be disabled")
		logger.Println("   Hint: Ensure Redis is running (docker run -d -p 6379:6379 redis:7-alpine)")
		return nil
	}

	logger.Println("✅ Redis connected successfully")
	return repositories.NewRedisMemoryRepository(redisClient)
}
