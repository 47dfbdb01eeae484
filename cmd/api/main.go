package main

import (
	"context"
	"errors"

	"leo-chat/config"
	"leo-chat/internal/events"
	"leo-chat/internal/handler"
	"leo-chat/internal/redis"
	"leo-chat/internal/repository"
	"leo-chat/internal/server"
	"leo-chat/internal/services"
	"leo-chat/internal/storage"
	"leo-chat/internal/websocket"
	"leo-chat/pkg/database"
	"leo-chat/pkg/logger"

	"go.uber.org/zap"
)

// Notification streams are trimmed to roughly this many entries.
const streamMaxLen = 10000

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(ctx, cfg, l)
	if err != nil {
		l.Logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := repository.InitSchema(db); err != nil {
		l.Logger.Fatal("failed to initialise schema", zap.Error(err))
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redis.WaitReady(ctx, redisClient, cfg.DBRetryInterval, l); err != nil {
		l.Logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	// Live updates go through Redis so every instance's hub sees them.
	pubsub := redis.NewPubSub(redisClient)
	hub := websocket.NewHub()
	go hub.Run(ctx)
	bridge := websocket.NewRedisBridge(pubsub, hub)
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Errorf("redis bridge stopped: %v", err)
		}
	}()
	broadcaster := events.NewRedisBroadcaster(pubsub)

	queue := events.NewStreamQueuePublisher(redis.NewStreamWriter(redisClient, streamMaxLen))
	notifier := services.NewOfferNotifier(queue, l.Named("offers"), cfg.PublishTimeout)
	notifier.Start()
	defer notifier.Stop()

	messages := repository.NewMessageRepository(db, notifier.Notify)
	chatService := services.NewChatService(
		repository.NewConversationRepository(db),
		messages,
		services.NewReadStateManager(messages, broadcaster, l.Named("read-state")),
	)

	var presigner services.ObjectPresigner
	if cfg.S3Bucket != "" {
		store, err := storage.NewAttachmentStore(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: cfg.S3PresignTTL,
		})
		if err != nil {
			l.Logger.Fatal("failed to configure attachment storage", zap.Error(err))
		}
		presigner = store
	} else {
		l.Warnf("S3_BUCKET not set, attachment uploads are disabled")
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Chat:      handler.NewChatHandler(chatService),
		Upload:    handler.NewUploadHandler(services.NewAttachmentService(presigner)),
		WebSocket: websocket.NewHandler(hub, l.Named("ws")),
	}, server.Options{
		HealthCheck: func(ctx context.Context) error {
			if err := database.HealthCheck(ctx, db); err != nil {
				return err
			}
			return redisClient.Ping(ctx).Err()
		},
		SendLimiter: redis.NewRateLimiter(redisClient, redis.RateLimitConfig{
			Limit:  cfg.SendRateLimit,
			Window: cfg.SendRateWindow,
		}),
	})

	if err := srv.Start(); err != nil {
		l.Errorf("server stopped with error: %v", err)
	}
}
