package bootstrap

import (
	"context"
	"log"

	"nexmind-be/internal/config"
	"nexmind-be/internal/controller"
	"nexmind-be/internal/handler"
	"nexmind-be/internal/pkg/logger"
	"nexmind-be/internal/repository/unitofwork"
	"nexmind-be/internal/service"
	"nexmind-be/internal/websocket"
	"nexmind-be/pkg/embedding"
	"nexmind-be/pkg/llm/factory"
	"nexmind-be/pkg/nlp"

	pktNats "nexmind-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController       controller.INoteController
	GraphController      controller.IGraphController
	SuggestionController controller.ISuggestionController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	AutomationService service.IAutomationService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	// Hash embedding needs no external service; Ollama is opt-in.
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewHashProvider()
		log.Printf("[INFO] Using Embedding Provider: HASH (local fallback)")
	}

	// NLP pipeline: remote LLM classifier with local keyword fallback.
	localClassifier := nlp.NewLocalClassifier()
	var remoteClassifier nlp.Classifier
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Printf("[WARN] LLM Provider unavailable, classification runs local-only: %v", err)
	} else {
		remoteClassifier = nlp.NewRemoteClassifier(llmProvider)
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}
	pipeline := nlp.NewPipeline(remoteClassifier, localClassifier, sysLogger)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/suggestions.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedTopicName,
		uowFactory,
		embeddingProvider,
	)

	noteService := service.NewNoteService(
		uowFactory,
		publisherService,
		pipeline,
		natsPub,
	)
	graphService := service.NewGraphService(uowFactory, sysLogger)
	automationService := service.NewAutomationService(
		uowFactory,
		wsHub,
		sysLogger,
		cfg.Automation.Interval,
	)
	suggestionService := service.NewSuggestionService(uowFactory, automationService)

	// Stream Handler
	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		StreamHandler:        streamHandler,
		WebSocketHub:         wsHub,
		NoteController:       controller.NewNoteController(noteService),
		GraphController:      controller.NewGraphController(graphService),
		SuggestionController: controller.NewSuggestionController(suggestionService),

		ConsumerService:   consumerService,
		AutomationService: automationService,
	}
}
