package bootstrap

import (
	"context"
	"log"
	"time"

	"workflow-hub-be/internal/config"
	"workflow-hub-be/internal/constant"
	"workflow-hub-be/internal/controller"
	"workflow-hub-be/internal/mcp"
	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/internal/pkg/mailer"
	"workflow-hub-be/internal/repository/memory"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/internal/service"
	"workflow-hub-be/pkg/events"
	"workflow-hub-be/pkg/llm"
	"workflow-hub-be/pkg/llm/factory"
	"workflow-hub-be/pkg/llm/openai"
	"workflow-hub-be/pkg/secretbox"
	"workflow-hub-be/pkg/trial"

	pktNats "workflow-hub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const Version = "1.0.0"

type Container struct {
	// Controllers
	HealthController   controller.IHealthController
	WorkflowController controller.IWorkflowController
	ImportController   controller.IImportController
	ChatController     controller.IChatController
	WaitlistController controller.IWaitlistController

	// Shared with the websocket and MCP transports
	ChatService service.IChatService
	MCPServer   *mcp.Server

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	NatsSubscriber  *pktNats.Subscriber

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)

	var emailService mailer.IEmailService
	if cfg.SMTP.Enabled() {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
		)
	} else {
		log.Println("[INFO] SMTP not configured, waitlist confirmations disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(pubSub, cfg.Catalog.EventsTopic)
	publishers := []events.Publisher{publisherService}

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		publishers = append(publishers, natsPub)
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.NatsSubscriber = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis backs the trial gate; without it each instance tracks visitors itself.
	var gate trial.Gate
	if cfg.Chat.TrialWindow > 0 {
		gate = newTrialGate(cfg, c)
	}

	// API keys left by visitors are sealed at rest.
	var keys *secretbox.Box
	if cfg.App.ApiKeySecret != "" {
		keys, err = secretbox.New(cfg.App.ApiKeySecret)
		if err != nil {
			log.Fatalf("[FATAL] Invalid API_KEY_SECRET: %v", err)
		}
	} else {
		log.Println("[WARN] API_KEY_SECRET not set, visitor API keys cannot be stored")
	}

	// 3. Catalog
	var catalogCache *memory.CatalogCache
	if cfg.Catalog.CacheTTL > 0 {
		catalogCache = memory.NewCatalogCache(cfg.Catalog.CacheTTL)
	}
	catalogService := service.NewCatalogService(uowFactory, catalogCache)

	consumerService := service.NewConsumerService(pubSub, cfg.Catalog.EventsTopic, catalogService, sysLogger)

	// 4. LLM Provider based on Config
	providers, err := factory.New(llmConfig(cfg, service.NewAssistantStore(uowFactory)))
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", providers.Label())

	// 5. Services
	importService := service.NewImportService(uowFactory, catalogService, sysLogger, publishers...)
	chatService := service.NewChatService(service.ChatServiceDeps{
		UowFactory: uowFactory,
		Providers:  providers,
		Catalog:    catalogService,
		Gate:       gate,
		Keys:       keys,
		Config:     cfg.Chat,
		LLMOptions: []llm.Option{
			llm.WithTemperature(cfg.Ai.Temperature),
			llm.WithMaxTokens(cfg.Ai.MaxTokens),
		},
		Publishers: publishers,
		Logger:     sysLogger,
		LLMLogger:  llmLogger,
	})
	waitlistService := service.NewWaitlistService(uowFactory, keys, emailService, gate, sysLogger, publishers...)

	// 6. Controllers
	checks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	c.HealthController = controller.NewHealthController(checks)
	c.WorkflowController = controller.NewWorkflowController(catalogService)
	c.ImportController = controller.NewImportController(importService, cfg.App.JwtSecret)
	c.ChatController = controller.NewChatController(chatService)
	c.WaitlistController = controller.NewWaitlistController(waitlistService)

	c.ChatService = chatService
	c.MCPServer = mcp.NewServer(catalogService, Version)
	c.ConsumerService = consumerService
	c.closers = append(c.closers, func() {
		_ = pubSub.Close()
		_ = sysLogger.Sync()
		_ = llmLogger.Sync()
	})

	return c
}

// Close releases broker connections and flushes logs.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newTrialGate(cfg *config.Config, c *Container) trial.Gate {
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Trial gate is per instance", err)
		_ = rdb.Close()
		return trial.NewMemoryGate(cfg.Chat.TrialWindow)
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return trial.NewRedisGate(rdb, cfg.Chat.TrialWindow)
}

func llmConfig(cfg *config.Config, store openai.AssistantStore) factory.Config {
	fc := factory.Config{
		Provider:     cfg.Ai.LLMProvider,
		Model:        cfg.Ai.LLMModel,
		Instructions: constant.AssistantInstructions,
		Assistants:   store,
	}

	switch cfg.Ai.LLMProvider {
	case factory.ProviderGemini:
		fc.APIKey = cfg.Keys.GoogleGemini
		fc.BaseURL = cfg.Ai.GeminiBaseURL
	case factory.ProviderOllama:
		fc.BaseURL = cfg.Ai.OllamaBaseURL
	default:
		fc.APIKey = cfg.Keys.OpenAI
		fc.BaseURL = cfg.Ai.OpenAIBaseURL
	}
	return fc
}
