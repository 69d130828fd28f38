package chatRepository

import (
	"HealthifyChat/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Foods:     &foodRepository{q: sqlExecutor, log: r.log},
		Histories: &historyRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

// FoodStore is read-only access to the foods table.
type FoodStore interface {
	GetFoodByName(ctx context.Context, name string) (entity.Food, error)
	QueryFoods(ctx context.Context, filter entity.FoodFilter) ([]entity.Food, error)
	GetAllFoodNames(ctx context.Context) ([]string, error)
}

type HistoryStore interface {
	CreateChatHistory(ctx context.Context, history entity.ChatHistory) error
	GetChatHistoryBySession(ctx context.Context, sessionID string, limit int) ([]entity.ChatHistory, error)
}

type Client struct {
	Foods     FoodStore
	Histories HistoryStore

	Commit   func() error
	Rollback func() error
}

type foodRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type historyRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
