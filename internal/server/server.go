package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leo-chat/config"
	"leo-chat/internal/handler"
	"leo-chat/internal/middleware"
	"leo-chat/internal/transport/httpdto"
	"leo-chat/internal/websocket"
	"leo-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

const BasePath = "/api/v1/chat"

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Chat      *handler.ChatHandler
	Upload    *handler.UploadHandler
	WebSocket *websocket.Handler
}

// Options carries the optional collaborators of the router.
type Options struct {
	// HealthCheck reports whether the backing stores are reachable.
	HealthCheck func(ctx context.Context) error
	// SendLimiter throttles POST /api/v1/chat when set.
	SendLimiter middleware.SendLimiter
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, opts Options) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.ClientURL))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/chat-health", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "Chat service is healthy and OK."}))
	})

	if handlers.WebSocket != nil {
		s.engine.GET("/ws", handlers.WebSocket.Connect)
	}

	send := []gin.HandlerFunc{handlers.Chat.SendMessage}
	if opts.SendLimiter != nil {
		send = append([]gin.HandlerFunc{middleware.SendRateLimit(opts.SendLimiter, s.logger)}, send...)
	}

	// Static segments are registered beside :ref; gin matches them first.
	chat := s.engine.Group(BasePath, middleware.GatewayAuth(s.config.GatewayJWTToken))
	{
		chat.GET("/conversation/:senderUsername/:receiverUsername", handlers.Chat.GetConversation)
		chat.GET("/conversations/:username", handlers.Chat.ListConversations)
		chat.GET("/:ref/:receiverUsername", handlers.Chat.GetMessages)
		chat.GET("/:ref", handlers.Chat.GetConversationMessages)
		chat.POST("", send...)
		chat.POST("/", send...)
		chat.POST("/conversation", handlers.Chat.StartConversation)
		chat.PUT("/offer", handlers.Chat.UpdateOffer)
		chat.PUT("/mark-as-read", handlers.Chat.MarkRead)
		chat.PUT("/mark-multiple-as-read", handlers.Chat.MarkManyRead)
		if handlers.Upload != nil {
			chat.POST("/files/upload-url", handlers.Upload.CreateUploadURL)
		}
	}
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
