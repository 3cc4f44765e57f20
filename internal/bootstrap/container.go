package bootstrap

import (
	"context"
	"log"

	"notesync-be/internal/config"
	"notesync-be/internal/controller"
	"notesync-be/internal/handler"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/repository/unitofwork"
	"notesync-be/internal/service"
	"notesync-be/internal/websocket"
	"notesync-be/pkg/classify"
	"notesync-be/pkg/llm/factory"
	"notesync-be/pkg/transcribe/whisper"
	"notesync-be/pkg/workspace/notion"

	pkgNats "notesync-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController controller.INoteController

	// Background services (exposed for main.go to run)
	SyncWorkerService service.ISyncWorkerService

	// WebSockets & realtime feed
	SyncFeedHandler *handler.SyncFeedHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Pipeline providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	noteClassifier := classify.NewNoteClassifier(llmProvider)
	transcriber := whisper.NewWhisperProvider(cfg.Keys.OpenAI, cfg.Ai.WhisperBaseURL, cfg.Ai.WhisperModel)
	workspacePublisher := notion.NewClient(cfg.Keys.Notion, cfg.Keys.NotionPageId)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
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
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/sync_feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.SyncNoteTopic, pubSub)

	ingestionService := service.NewIngestionService(
		uowFactory,
		transcriber,
		noteClassifier,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Ai.TranscribeTimeout,
		cfg.Ai.ClassifyTimeout,
	)
	noteService := service.NewNoteService(uowFactory, sysLogger)

	syncWorkerService := service.NewSyncWorkerService(
		cfg.Keys.SyncNoteTopic,
		pubSub,
		uowFactory,
		workspacePublisher,
		natsPub,
		sysLogger,
		cfg.Sync.MaxAttempts,
		cfg.Sync.BaseDelay,
	)

	// Realtime feed worker
	syncFeedService := service.NewSyncFeedService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go func() {
			if err := syncFeedService.Start(); err != nil {
				log.Printf("[WARN] Sync feed worker failed to start: %v", err)
			}
		}()
	}

	syncFeedHandler := handler.NewSyncFeedHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		NoteController:    controller.NewNoteController(ingestionService, noteService),
		SyncWorkerService: syncWorkerService,
		SyncFeedHandler:   syncFeedHandler,
		WebSocketHub:      wsHub,
	}
}
