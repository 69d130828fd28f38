package chatHandler

import (
	"time"

	"HealthifyChat/internal/api/chat"
	contextPkg "HealthifyChat/pkg/context"
	"HealthifyChat/pkg/handlerUtil"
	"HealthifyChat/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// sessionID picks the explicit id first, then the X-Session-ID header.
// An empty result lets the service fall back to the default session.
func sessionID(ctx *fiber.Ctx, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return ctx.Get(SessionHeader)
}

func (h *ChatHandler) Chat(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req chat.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, chat.ErrInvalidRequest, ctx.Path(), "chat")
	}
	if req.Message == nil {
		return errHandler.Handle(ctx, requestID, chat.ErrInvalidRequest, ctx.Path(), "chat")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing chat message")

	res, err := h.chatService.HandleTurn(c, sessionID(ctx, req.SessionID), *req.Message)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "chat")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res.Response())
	}
}

func (h *ChatHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query chat.HistoryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	id := sessionID(ctx, query.SessionID)
	if id == "" {
		id = chat.DefaultSessionID
	}

	histories, err := h.chatService.GetHistory(c, id, query.Limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_chat_history")
	}

	items := make([]chat.HistoryItem, 0, len(histories))
	for _, history := range histories {
		items = append(items, chat.HistoryItem{
			Message:   history.Message,
			Reply:     history.Reply,
			Intent:    history.Intent,
			Timestamp: history.CreatedAt.Format(chat.TimestampLayout),
		})
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.HistoryResponse{
			SessionID: id,
			History:   items,
		})
	}
}

func (h *ChatHandler) GetContext(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query chat.ContextQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	session, err := h.chatService.GetContext(c, sessionID(ctx, query.SessionID))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_chat_context")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.NewContextResponse(session, time.Now()))
	}
}

func (h *ChatHandler) ClearContext(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query chat.ContextQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	id := sessionID(ctx, query.SessionID)
	if id == "" {
		id = chat.DefaultSessionID
	}
	cleared := h.chatService.ClearContext(c, id)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"session_id": id,
			"cleared":    cleared,
		})
	}
}
