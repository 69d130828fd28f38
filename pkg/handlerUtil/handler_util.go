package handlerUtil

import (
	"errors"

	"HealthifyChat/internal/api/chat"
	"HealthifyChat/internal/middleware"
	"HealthifyChat/pkg/log"
	"HealthifyChat/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	// Chat domain errors
	if errors.Is(err, chat.ErrTurnFailed) {
		h.logger.WithFields(fields).Error("Chat turn failed")
		return c.Status(fiber.StatusInternalServerError).JSON(chat.ErrorResponse{
			Error: chat.ErrTurnFailed.Error(),
			Reply: chat.ErrorReply,
		})
	}

	if errors.Is(err, chat.ErrInvalidRequest) {
		h.logger.WithFields(fields).Warn("Invalid chat request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": chat.ErrInvalidRequest.Error(),
			"code":  "INVALID_REQUEST",
		})
	}

	if errors.Is(err, chat.ErrSessionNotFound) {
		h.logger.WithFields(fields).Warn("Chat session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": chat.ErrSessionNotFound.Error(),
			"code":  "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, chat.ErrHistoryUnavailable) {
		h.logger.WithFields(fields).Error("Chat history store unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": chat.ErrHistoryUnavailable.Error(),
			"code":  "HISTORY_UNAVAILABLE",
		})
	}

	if errors.Is(err, middleware.ErrTooManyRequests) {
		h.logger.WithFields(fields).Warn("Rate limit exceeded")
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": middleware.ErrTooManyRequests.Error(),
			"code":  "TOO_MANY_REQUESTS",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": respErr.Error()})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		h.logger.WithFields(fields).Warn("Request rejected")
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	h.logger.WithFields(fields).Error("Unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
		"code":  "INTERNAL_SERVER_ERROR",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
		"error": utils.StatusMessage(fiber.StatusRequestTimeout),
		"reply": chat.ErrorReply,
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
