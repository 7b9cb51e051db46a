package bootstrap

import (
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"syllabus-bot-be/internal/config"
	"syllabus-bot-be/internal/controller"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/internal/repository/implementation"
	"syllabus-bot-be/internal/service"
	"syllabus-bot-be/pkg/embedding"
	"syllabus-bot-be/pkg/llm/ollama"
	"syllabus-bot-be/pkg/rag/greeting"
	"syllabus-bot-be/pkg/rag/index"
	"syllabus-bot-be/pkg/rag/resolver"
	"syllabus-bot-be/pkg/rag/retriever"
	"syllabus-bot-be/pkg/rag/splitter"
	"syllabus-bot-be/pkg/rag/stream"
)

type Container struct {
	// Controllers
	ChatbotController *controller.ChatbotController
	IngestController  *controller.IngestController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for cmd/ingest
	IngestService service.IIngestService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := logger.NewIsolatedLogger(cfg.App.RagLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embedding.NewCachedProvider(
		embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel),
	)
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	log.Printf("[INFO] Using Ollama at %s (embed: %s, llm: %s)",
		cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel, cfg.Ai.LLMModel)

	// 4. Vector Index
	chunkRepo := implementation.NewChunkRepository(db)
	storeOpener := func() (index.Store, error) {
		return implementation.NewChunkRepository(db), nil
	}
	vectorIndex := index.New(chunkRepo, storeOpener, embeddingProvider, ragLogger, cfg.Ingest.BatchSize)

	// 5. RAG Pipeline Components
	chunkRetriever := retriever.New(vectorIndex, retriever.Config{
		Threshold: cfg.Retrieval.Threshold,
		TopK:      cfg.Retrieval.TopK,
	}, ragLogger)

	subjectResolver := resolver.New()

	greetings, err := greeting.Load(cfg.App.GreetingsPath)
	if err != nil {
		log.Printf("[WARN] Greetings file not loaded (%v), greeting detection disabled", err)
	}

	chatRepo := implementation.NewChatRepository(db)
	exchangePublisher := service.NewExchangePublisher(pubSub)

	streamer := stream.NewStreamer(
		chunkRetriever,
		llmProvider,
		subjectResolver,
		greetings,
		exchangePublisher,
		ragLogger,
		time.Duration(cfg.Ai.LLMTimeoutSeconds)*time.Second,
	)

	// 6. Services
	chatbotService := service.NewChatbotService(
		streamer,
		chatRepo,
		vectorIndex,
		cfg.Retrieval.HistoryLimit,
		sysLogger,
	)

	chunkSplitter := splitter.New(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	ingestService := service.NewIngestService(vectorIndex, chunkSplitter, sysLogger)

	consumerService := service.NewConsumerService(pubSub, chatRepo, sysLogger)

	// 7. Controllers
	return &Container{
		ChatbotController: controller.NewChatbotController(chatbotService, sysLogger),
		IngestController:  controller.NewIngestController(ingestService),

		ConsumerService: consumerService,
		IngestService:   ingestService,
	}
}
