package chatService

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"HealthifyChat/internal/api/chat"
	chatRepository "HealthifyChat/internal/api/chat/repository"
	"HealthifyChat/internal/entity"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"
	"HealthifyChat/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var errStoreDown = errors.New("store down")

// fakeFoods filters an in-memory catalog roughly the way the SQL does.
type fakeFoods struct {
	mu       sync.Mutex
	catalog  []entity.Food
	filters  []entity.FoodFilter
	queryErr error
	lookups  []string
	names    []string
	namesErr error
}

func (f *fakeFoods) GetFoodByName(_ context.Context, name string) (entity.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, name)

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return entity.Food{}, chat.ErrFoodNotFound
	}
	for _, food := range f.catalog {
		if strings.Contains(strings.ToLower(food.FoodName), name) {
			return food, nil
		}
	}
	return entity.Food{}, chat.ErrFoodNotFound
}

func (f *fakeFoods) QueryFoods(_ context.Context, filter entity.FoodFilter) ([]entity.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var matched []entity.Food
	for _, food := range f.catalog {
		if matchesFilter(food, filter) {
			matched = append(matched, food)
		}
	}

	offset := filter.Offset
	if filter.Random {
		offset = 0
	}
	if offset >= len(matched) {
		return []entity.Food{}, nil
	}
	matched = matched[offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matchesFilter(food entity.Food, filter entity.FoodFilter) bool {
	name := strings.ToLower(food.FoodName)
	kind := strings.ToLower(food.Type)

	if filter.Cuisine != "" && food.Cuisine != filter.Cuisine {
		return false
	}
	if filter.DietCategory != "" && food.DietCategory != filter.DietCategory {
		return false
	}
	if filter.MaxCalories != nil && food.Calories > *filter.MaxCalories {
		return false
	}
	if filter.MinProtein != nil && food.Protein < *filter.MinProtein {
		return false
	}
	if filter.MealType != "" {
		meal := strings.ToLower(filter.MealType)
		if !strings.Contains(kind, meal) && !strings.Contains(name, meal) &&
			!strings.Contains(strings.ToLower(food.Description), meal) {
			return false
		}
	}
	if len(filter.TypePatterns) > 0 || len(filter.NamePatterns) > 0 {
		if !containsAny(kind, filter.TypePatterns) && !containsAny(name, filter.NamePatterns) {
			return false
		}
	}
	return true
}

func (f *fakeFoods) GetAllFoodNames(context.Context) ([]string, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	return f.names, nil
}

func (f *fakeFoods) queries() []entity.FoodFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.FoodFilter{}, f.filters...)
}

type fakeHistories struct {
	mu        sync.Mutex
	created   []entity.ChatHistory
	stored    []entity.ChatHistory
	lastLimit int
	err       error
}

func (h *fakeHistories) CreateChatHistory(_ context.Context, history entity.ChatHistory) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.created = append(h.created, history)
	return nil
}

func (h *fakeHistories) GetChatHistoryBySession(_ context.Context, sessionID string, limit int) ([]entity.ChatHistory, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastLimit = limit
	if h.err != nil {
		return nil, h.err
	}
	var out []entity.ChatHistory
	for _, item := range h.stored {
		if item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (h *fakeHistories) saved() []entity.ChatHistory {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]entity.ChatHistory{}, h.created...)
}

type fakeRepository struct {
	mu        sync.Mutex
	foods     *fakeFoods
	histories *fakeHistories
	clients   int
}

func (r *fakeRepository) NewClient(bool) (chatRepository.Client, error) {
	r.mu.Lock()
	r.clients++
	r.mu.Unlock()

	return chatRepository.Client{
		Foods:     r.foods,
		Histories: r.histories,
		Commit:    func() error { return nil },
		Rollback:  func() error { return nil },
	}, nil
}

func (r *fakeRepository) clientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients
}

func testCatalog() []entity.Food {
	return []entity.Food{
		{ID: 1, FoodName: "Banana", Calories: 105, Protein: 1.3, Carbs: 27, Fats: 0.4, Type: "Fruit", Cuisine: "Global", DietCategory: "vegan"},
		{ID: 2, FoodName: "Oat Porridge", Calories: 150, Protein: 5, Carbs: 27, Fats: 3, Type: "Breakfast", Cuisine: "Global", DietCategory: "vegan"},
		{ID: 3, FoodName: "Chia Pudding", Calories: 180, Protein: 6, Carbs: 20, Fats: 9, Type: "Breakfast", Cuisine: "Global", DietCategory: "vegan"},
		{ID: 4, FoodName: "Tofu Scramble", Calories: 200, Protein: 16, Carbs: 6, Fats: 12, Type: "Breakfast", Cuisine: "Global", DietCategory: "vegan"},
		{ID: 5, FoodName: "Avocado Toast", Calories: 250, Protein: 6, Carbs: 28, Fats: 14, Type: "Breakfast", Cuisine: "Global", DietCategory: "vegan"},
		{ID: 6, FoodName: "Poha", Calories: 180, Protein: 3.5, Carbs: 35, Fats: 4, Type: "Breakfast", Cuisine: "Indian", DietCategory: "vegan"},
		{ID: 7, FoodName: "Upma", Calories: 190, Protein: 4.5, Carbs: 30, Fats: 6, Type: "Breakfast", Cuisine: "Indian", DietCategory: "vegan"},
		{ID: 8, FoodName: "Fruit Bowl Breakfast", Calories: 120, Protein: 2, Carbs: 30, Fats: 0.5, Type: "Breakfast", Cuisine: "Global", DietCategory: "vegan"},
		{ID: 9, FoodName: "Paneer Tikka", Calories: 250, Protein: 18, Carbs: 8, Fats: 16, Type: "Main Course", Cuisine: "Indian", DietCategory: "vegetarian", Description: "Grilled cottage cheese"},
		{ID: 10, FoodName: "Chicken Curry", Calories: 300, Protein: 25, Carbs: 10, Fats: 18, Type: "Main Course", Cuisine: "Indian", DietCategory: "non-veg"},
		{ID: 11, FoodName: "Rajma Chawal", Calories: 350, Protein: 12, Carbs: 60, Fats: 6, Type: "Main Course", Cuisine: "Indian", DietCategory: "vegetarian"},
		{ID: 12, FoodName: "Almond Milk", Calories: 40, Protein: 1, Carbs: 2, Fats: 3, Type: "Beverage", Cuisine: "Global", DietCategory: "vegan"},
	}
}

type testDeps struct {
	svc       *chatService
	repo      *fakeRepository
	foods     *fakeFoods
	histories *fakeHistories
	sessions  *session.Manager
	selector  *templates.Selector
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestService(t *testing.T, opts ...Option) testDeps {
	t.Helper()

	foods := &fakeFoods{catalog: testCatalog()}
	histories := &fakeHistories{}
	repo := &fakeRepository{foods: foods, histories: histories}
	log := quietLogger()
	sessions := session.NewManager(log)
	selector := templates.New(templates.WithRand(rand.New(rand.NewSource(1))))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	base := []Option{
		WithSelector(selector),
		WithClock(func() time.Time { return now }),
	}
	svc := New(log, repo, sessions, utils.New(), append(base, opts...)...).(*chatService)

	return testDeps{
		svc:       svc,
		repo:      repo,
		foods:     foods,
		histories: histories,
		sessions:  sessions,
		selector:  selector,
	}
}
