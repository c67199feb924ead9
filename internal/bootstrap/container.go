package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/config"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/controller"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/handler"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/mailer"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/implementation"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/memory"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/websocket"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/embedding"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/flowise"
	pktNats "github.com/Gotppsn/TP-chatbot-sub000/pkg/nats"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	UserController       controller.IUserController
	ChatController       controller.IChatController
	PublicChatController controller.IPublicChatController
	ChatbotController    controller.IChatbotController
	DepartmentController controller.IDepartmentController
	SettingsController   controller.ISettingsController
	ArticleController    controller.IArticleController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus for the embedding pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)

	sessionLocks := memory.NewSessionLockRepository()

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

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

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	// The settings service and the gateway client reference each other:
	// the client resolves endpoint/key per call, the service probes new
	// endpoints through the client before saving them.
	settingsService := service.NewSettingsService(uowFactory, cfg, sysLogger)
	flowiseClient := flowise.NewClient(settingsService.Resolve)
	settingsService.SetProbeClient(flowiseClient)

	authService := service.NewAuthService(uowFactory, cfg, emailService, natsPub, sysLogger)
	userService := service.NewUserService(uowFactory)
	permissionService := service.NewPermissionService(uowFactory)
	departmentService := service.NewDepartmentService(uowFactory, natsPub, sysLogger)
	chatbotService := service.NewChatbotService(uowFactory, flowiseClient, natsPub, sysLogger)
	chatService := service.NewChatService(uowFactory, flowiseClient, sessionLocks, natsPub, sysLogger)
	articleService := service.NewArticleService(uowFactory, publisherService, embeddingProvider)

	// 3.5 Notification system
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		AuthController:       controller.NewAuthController(authService),
		UserController:       controller.NewUserController(userService, permissionService),
		ChatController:       controller.NewChatController(chatService),
		PublicChatController: controller.NewPublicChatController(chatService),
		ChatbotController:    controller.NewChatbotController(chatbotService, permissionService),
		DepartmentController: controller.NewDepartmentController(departmentService, permissionService),
		SettingsController:   controller.NewSettingsController(settingsService, permissionService, sysLogger),
		ArticleController:    controller.NewArticleController(articleService, permissionService),

		ConsumerService: consumerService,
	}
}
