package chatHandler

import (
	chatService "HealthifyChat/internal/api/chat/service"
	"HealthifyChat/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const SessionHeader = "X-Session-ID"

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	chat := srv.Group("/chat")

	chat.Post("", h.middleware.NewRateLimiter, h.Chat)
	chat.Get("/history", h.GetHistory)
	chat.Get("/context", h.GetContext)
	chat.Delete("/context", h.ClearContext)

	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.handleWebSocket))
}

// Endpoints lists the routes Start registers under prefix.
func Endpoints(prefix string) []string {
	return []string{
		"POST " + prefix + "/chat",
		"GET " + prefix + "/chat/history",
		"GET " + prefix + "/chat/context",
		"DELETE " + prefix + "/chat/context",
		"GET " + prefix + "/chat/ws",
	}
}
