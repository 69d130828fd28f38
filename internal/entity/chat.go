package entity

import "time"

type ChatHistory struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	Message   string    `db:"message"`
	Reply     string    `db:"reply"`
	Intent    string    `db:"intent"`
	CreatedAt time.Time `db:"created_at"`
}
