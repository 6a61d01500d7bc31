package bootstrap

import (
	"log"
	"time"

	"docchat-be/internal/config"
	"docchat-be/internal/controller"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/memory"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/internal/service"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/llm/factory"
	pkgNats "docchat-be/pkg/nats"
	"docchat-be/pkg/rag/compose"
	"docchat-be/pkg/rag/history"
	"docchat-be/pkg/rag/retrieval"
	"docchat-be/pkg/tools"
	"docchat-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	ToolController     controller.IToolController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared function handlers, exposed so callers can register more.
	FunctionRegistry *tools.FunctionRegistry
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	indexerLogger := logger.NewIsolatedLogger(cfg.App.IndexerLogFilePath)
	ragTrace := log.New(&lumberjack.Logger{
		Filename:   cfg.App.RagTraceLogFilePath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	turnLocks := memory.NewTurnLockRepository()
	functionRegistry := tools.NewFunctionRegistry()

	actionTimeout := time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	searchClient := websearch.NewDuckDuckGoClient(actionTimeout)

	// 5. RAG Components
	retrievalEngine := retrieval.NewEngine(
		retrieval.NewProviderEmbedder(embeddingProvider),
		llmProvider,
	)
	historyLoader := history.NewLoader(uowFactory)
	toolRouter := tools.NewRouter(llmProvider)
	toolExecutor := tools.NewExecutor(functionRegistry, actionTimeout)
	composer := compose.NewComposer(llmProvider)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Topics.IndexDocument, pubSub)
	indexerService := service.NewIndexerService(uowFactory, embeddingProvider, indexerLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.IndexDocument,
		indexerService,
		indexerLogger,
	)

	sessionService := service.NewSessionService(uowFactory)
	documentService := service.NewDocumentService(
		uowFactory,
		indexerService,
		publisherService,
		natsPub,
		sysLogger,
	)
	toolService := service.NewToolService(uowFactory)
	chatService := service.NewChatService(
		uowFactory,
		turnLocks,
		retrievalEngine,
		historyLoader,
		toolRouter,
		toolExecutor,
		searchClient,
		composer,
		natsPub,
		sysLogger,
		ragTrace,
		cfg.Search.Enabled,
		cfg.Search.MaxResults,
		actionTimeout,
	)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		SessionController:  controller.NewSessionController(sessionService, documentService, toolService),
		DocumentController: controller.NewDocumentController(documentService),
		ToolController:     controller.NewToolController(toolService),
		ConsumerService:    consumerService,
		FunctionRegistry:   functionRegistry,
	}
}
