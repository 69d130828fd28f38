package chatHandler

import (
	"time"

	"HealthifyChat/internal/api/chat"
	"HealthifyChat/internal/middleware"
	contextPkg "HealthifyChat/pkg/context"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	wsReadTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
	wsTurnTimeout  = 10 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// handleWebSocket treats every text frame as one chat turn. The session id
// of the upgrade request applies to frames that do not carry their own.
func (h *ChatHandler) handleWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	defaultSession := c.Query("session_id")
	if defaultSession == "" {
		defaultSession = c.Headers(SessionHeader)
	}

	fields := logrus.Fields{
		"request_id": requestID,
		"session_id": defaultSession,
	}
	h.log.WithFields(fields).Info("Chat WebSocket client connected")
	defer h.log.WithFields(fields).Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.WithFields(fields).Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			h.log.WithFields(fields).Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(fields).Errorf("Chat WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			h.log.WithFields(fields).Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		if err := h.writeFrame(c, h.replyToFrame(requestID, defaultSession, message)); err != nil {
			h.log.WithFields(fields).Errorf("Error writing JSON response: %v", err)
			break
		}
	}
}

func (h *ChatHandler) replyToFrame(requestID, defaultSession string, frame []byte) interface{} {
	var req chat.ChatRequest
	if err := json.Unmarshal(frame, &req); err != nil || req.Message == nil {
		return chat.ErrorResponse{Error: chat.ErrInvalidRequest.Error()}
	}
	if err := h.validator.Struct(req); err != nil {
		return chat.ErrorResponse{Error: "Validation failed: " + err.Error()}
	}

	id := req.SessionID
	if id == "" {
		id = defaultSession
	}

	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), wsTurnTimeout)
	defer cancel()

	res, err := h.chatService.HandleTurn(ctx, id, *req.Message)
	if err != nil {
		return chat.ErrorResponse{Error: chat.ErrTurnFailed.Error(), Reply: chat.ErrorReply}
	}
	return res.Response()
}

func (h *ChatHandler) writeFrame(c *websocket.Conn, payload interface{}) error {
	if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	if err := c.WriteJSON(payload); err != nil {
		return err
	}
	return c.SetWriteDeadline(time.Time{})
}
