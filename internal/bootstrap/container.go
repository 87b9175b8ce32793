package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-boardroom-be/internal/config"
	"ai-boardroom-be/internal/controller"
	"ai-boardroom-be/internal/handler"
	"ai-boardroom-be/internal/pkg/logger"
	"ai-boardroom-be/internal/repository/implementation"
	"ai-boardroom-be/internal/repository/memory"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/internal/service"
	"ai-boardroom-be/internal/websocket"
	"ai-boardroom-be/pkg/embedding"
	"ai-boardroom-be/pkg/llm/factory"
	"ai-boardroom-be/pkg/meeting"
	"ai-boardroom-be/pkg/twin"

	pktNats "ai-boardroom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TwinController    controller.ITwinController
	MeetingController controller.IMeetingController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & live meeting feed
	MeetingEventsHandler *handler.MeetingEventsHandler
	WebSocketHub         *websocket.Hub

	// Main application logger (main defers Sync on shutdown)
	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sysLogger.Info("Bootstrap", "Initializing container", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	// Dedicated rotating file logger for the reasoning engine.
	twinLogger := log.New(&lumberjack.Logger{
		Filename:   "logs/twin.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
	}, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Reasoning engine wiring
	partitionStore := implementation.NewPartitionStore(db)
	retriever := twin.NewRetriever(partitionStore, embeddingProvider, twinLogger)
	pipeline := twin.NewPipeline(llmProvider, twinLogger)
	workflow := twin.NewWorkflow(retriever, pipeline, twinLogger)

	conversations := memory.NewConversationRepository()

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// Meeting run persistence: Redis when available, in-process otherwise.
	var runStore meeting.RunStore
	if redisUp {
		runStore = meeting.NewRedisRunStore(rdb, time.Duration(cfg.Meeting.RunTTLHours)*time.Hour)
	} else {
		runStore = meeting.NewMemoryRunStore()
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/meeting_events.log")
	var hubRedis *redis.Client
	if redisUp {
		hubRedis = rdb
	}
	wsHub := websocket.NewHub(hubRedis, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
	)

	twinService := service.NewTwinService(
		uowFactory,
		workflow,
		conversations,
		publisherService,
		twinLogger,
	)

	recommender := meeting.NewLLMRecommender(llmProvider)
	meetingService := service.NewMeetingService(
		uowFactory,
		recommender,
		runStore,
		cfg.Meeting.DefaultTurns,
		natsPub,
		twinLogger,
	)

	// Live meeting feed worker
	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		go notifService.Start()
	}

	meetingEventsHandler := handler.NewMeetingEventsHandler(wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		TwinController:       controller.NewTwinController(twinService),
		MeetingController:    controller.NewMeetingController(meetingService),
		MeetingEventsHandler: meetingEventsHandler,
		WebSocketHub:         wsHub,
		SysLogger:            sysLogger,

		ConsumerService: consumerService,
	}
}
