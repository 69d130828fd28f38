package config

import (
	"fmt"
	"time"

	"HealthifyChat/database/postgres"
	chatHandler "HealthifyChat/internal/api/chat/handler"
	chatRepository "HealthifyChat/internal/api/chat/repository"
	chatService "HealthifyChat/internal/api/chat/service"
	"HealthifyChat/internal/middleware"
	"HealthifyChat/pkg/gemini"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/redis"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const apiPrefix = "/api/v1"

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	cfg          AppConfig
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	geminiClient gemini.IGemini
	sessions     *session.Manager
	chat         chatService.IChatService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{cfg: Load()}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithConfig(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

// WithRedisServer stores session contexts in Redis as well as in memory. A
// nil client keeps sessions process-local.
func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithGeminiClient enables the Gemini noun tagger. Without GEMINI_API_KEY the
// extractor keeps the keyword split and startup continues.
func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		if !s.cfg.GeminiTagger {
			return nil
		}
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Gemini client unavailable, using keyword food extraction: %v", err)
			}
			return nil
		}
		s.geminiClient = client
		return nil
	}
}

func WithSessionManager() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the session manager")
		}
		opts := []session.Option{
			session.WithIdleTimeout(s.cfg.SessionIdleTimeout),
			session.WithHistorySize(s.cfg.SessionHistorySize),
		}
		if s.redisServer != nil {
			opts = append(opts, session.WithStore(session.NewRedisStore(s.redisServer, s.cfg.SessionIdleTimeout)))
		}
		s.sessions = session.NewManager(s.log, opts...)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.WithRateLimit(s.cfg.RateLimitPerSecond, s.cfg.RateLimitBurst))
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Chat Domain
	var tagger nlp.NounTagger = nlp.KeywordTagger{}
	if s.geminiClient != nil {
		tagger = gemini.NewNounTagger(s.geminiClient, s.cfg.GeminiTimeout, s.log)
	}

	chatRepo := chatRepository.New(s.db, s.log)
	s.chat = chatService.New(s.log, chatRepo, s.sessions, s.utils,
		chatService.WithExtractor(nlp.NewExtractor(tagger)),
	)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, s.chat)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, chatHandlers)
}

// Chat returns the chat service built by RegisterHandler.
func (s *Server) Chat() chatService.IChatService {
	return s.chat
}

func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group(apiPrefix)

	for _, h := range s.handlers {
		h.Start(router)
	}

	return s.engine.Listen(fmt.Sprintf(":%s", s.cfg.Port))
}

// Shutdown stops the listener, waits for pending transcript writes and closes
// the backing clients.
func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if s.chat != nil {
		s.chat.Drain()
	}
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Warnf("Failed to close redis client: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Warnf("Failed to close database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	endpoints := append([]string{"GET /"}, chatHandler.Endpoints(apiPrefix)...)

	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		active := 0
		if s.sessions != nil {
			active = s.sessions.Len()
		}
		return ctx.JSON(fiber.Map{
			"status":          "online",
			"service":         AppName,
			"version":         AppVersion,
			"endpoints":       endpoints,
			"active_sessions": active,
		})
	})
}
