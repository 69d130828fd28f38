package chatRepository

import (
	"database/sql"
	"time"

	"HealthifyChat/internal/entity"
	contextPkg "HealthifyChat/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ChatHistoryDB struct {
	ID        sql.NullString `db:"id"`
	SessionID sql.NullString `db:"session_id"`
	Message   sql.NullString `db:"message"`
	Reply     sql.NullString `db:"reply"`
	Intent    sql.NullString `db:"intent"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *historyRepository) CreateChatHistory(c context.Context, history entity.ChatHistory) error {
	requestID := contextPkg.GetRequestID(c)

	createdAt := history.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	argsKV := map[string]interface{}{
		"id":         history.ID,
		"session_id": history.SessionID,
		"message":    history.Message,
		"reply":      history.Reply,
		"intent":     history.Intent,
		"created_at": createdAt,
	}

	query, args, err := sqlx.Named(queryCreateChatHistory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateChatHistory")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": history.SessionID,
			"error":      err.Error(),
		}).Error("Database error when creating chat history")
		return err
	}

	return nil
}

// GetChatHistoryBySession returns up to limit entries, newest first.
func (r *historyRepository) GetChatHistoryBySession(c context.Context, sessionID string, limit int) ([]entity.ChatHistory, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ChatHistoryDB

	argsKV := map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
	}

	query, args, err := sqlx.Named(queryGetChatHistoryBySession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatHistoryBySession named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("GetChatHistoryBySession execution err")
		return nil, err
	}

	histories := make([]entity.ChatHistory, 0, len(rows))
	for _, row := range rows {
		histories = append(histories, r.makeChatHistory(row))
	}

	return histories, nil
}

func (r *historyRepository) makeChatHistory(h ChatHistoryDB) entity.ChatHistory {
	return entity.ChatHistory{
		ID:        h.ID.String,
		SessionID: h.SessionID.String,
		Message:   h.Message.String,
		Reply:     h.Reply.String,
		Intent:    h.Intent.String,
		CreatedAt: h.CreatedAt,
	}
}
