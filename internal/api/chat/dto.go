package chat

import (
	"time"

	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
)

const (
	DefaultSessionID    = "default_session"
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
	RecentHistorySize   = 5
	TimestampLayout     = time.RFC3339
)

// ChatRequest is the body of POST /chat and of every websocket frame. A nil
// Message means the field was missing.
type ChatRequest struct {
	SessionID string  `json:"session_id" validate:"omitempty,max=128"`
	Message   *string `json:"message" validate:"omitempty,max=2000"`
}

type ChatResponse struct {
	Intent    string      `json:"intent"`
	Entities  interface{} `json:"entities"`
	Reply     string      `json:"reply"`
	Timestamp string      `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Reply string `json:"reply"`
}

// TurnResult is what one resolved message produces.
type TurnResult struct {
	SessionID string
	Intent    nlp.Intent
	Entities  nlp.EntityBag
	Reply     string
	Timestamp time.Time
}

func (r TurnResult) Response() ChatResponse {
	var entities interface{} = r.Entities
	if r.Intent == nlp.IntentEmpty {
		entities = struct{}{}
	}
	return ChatResponse{
		Intent:    r.Intent.String(),
		Entities:  entities,
		Reply:     r.Reply,
		Timestamp: r.Timestamp.Format(TimestampLayout),
	}
}

type HistoryQuery struct {
	SessionID string `query:"session_id" validate:"omitempty,max=128"`
	Limit     int    `query:"limit" validate:"omitempty,min=1"`
}

type HistoryItem struct {
	Message   string `json:"message"`
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
	Timestamp string `json:"timestamp"`
}

type HistoryResponse struct {
	SessionID string        `json:"session_id"`
	History   []HistoryItem `json:"history"`
}

type ContextQuery struct {
	SessionID string `query:"session_id" validate:"omitempty,max=128"`
}

type ContextResponse struct {
	SessionID          string                          `json:"session_id"`
	HasContext         bool                            `json:"has_context"`
	LastIntent         string                          `json:"last_intent"`
	LastEntities       nlp.EntityBag                   `json:"last_entities"`
	LastRecommendation *session.RecommendationSnapshot `json:"last_recommendation,omitempty"`
	LastExerciseTopic  string                          `json:"last_exercise_topic,omitempty"`
	LastFood           string                          `json:"last_food,omitempty"`
	HistorySize        int                             `json:"history_size"`
	RecentHistory      []session.HistoryEntry          `json:"recent_history"`
	DurationSeconds    int64                           `json:"session_duration_seconds"`
	CreatedAt          string                          `json:"created_at"`
	LastActivity       string                          `json:"last_activity"`
}

func NewContextResponse(c session.Context, now time.Time) ContextResponse {
	return ContextResponse{
		SessionID:          c.SessionID,
		HasContext:         c.HasContext(),
		LastIntent:         c.LastIntent.String(),
		LastEntities:       c.LastEntities,
		LastRecommendation: c.LastRecommendation,
		LastExerciseTopic:  string(c.LastExerciseTopic),
		LastFood:           c.LastFood,
		HistorySize:        len(c.History),
		RecentHistory:      c.RecentHistory(RecentHistorySize),
		DurationSeconds:    int64(c.Duration(now).Seconds()),
		CreatedAt:          c.CreatedAt.Format(TimestampLayout),
		LastActivity:       c.LastActivity.Format(TimestampLayout),
	}
}
