package chatService

import (
	"strings"

	chatRepository "HealthifyChat/internal/api/chat/repository"
	"HealthifyChat/internal/entity"
	contextPkg "HealthifyChat/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Stage string

const (
	StageFiltered      Stage = "filtered"
	StageMealHeuristic Stage = "meal_heuristic"
	StageDietOnly      Stage = "diet_only"
	StageMealOnly      Stage = "meal_only"
	StageRandom        Stage = "random"
)

var stageOrder = []Stage{StageFiltered, StageMealHeuristic, StageDietOnly, StageMealOnly, StageRandom}

const (
	PageSize          = 5
	lunchSampleSize   = 20
	fallbackFoodCount = 3
)

var (
	lunchKeywords = []string{
		"curry", "rice", "dal", "sabzi", "roti", "wrap", "sandwich", "bowl", "salad", "meal", "main",
		"thali", "biriyani", "pulao", "khichdi", "paratha", "naan", "rajma", "chana", "masala", "korma",
		"paneer", "vegetable", "mix", "combo", "platter", "special", "dish",
	}

	nonLunchKeywords = []string{
		"butter", "milk", "almond", "cashew", "walnut", "oil", "ghee", "sugar", "honey", "jam",
		"sauce", "spread", "drink", "juice", "shake", "smoothie",
	}

	knownLunchDishes = []string{
		"dal", "rajma", "chana masala", "sambhar", "vegetable curry", "mixed veg", "aloo gobi",
		"aloo matar", "palak paneer", "mushroom masala", "baingan bharta", "biryani", "pulao",
		"khichdi", "fried rice", "jeera rice", "ghee rice", "roti", "naan", "paratha", "chapati",
		"kulcha", "poori", "thali", "combo", "platter", "special", "meal", "bowl",
	}

	// mealPatterns[meal] = {type substrings, name substrings}
	mealPatterns = map[string][2][]string{
		"breakfast": {{"breakfast"}, {"cereal", "toast", "porridge"}},
		"dinner":    {{"main", "dinner"}, {"curry", "steak"}},
		"snack":     {{"snack"}, {"nuts", "fruit"}},
	}
)

type PlanRequest struct {
	Cuisine      string
	DietCategory string
	MaxCalories  *int
	MinProtein   *float64
	MealType     string
	Limit        int
	Offset       int
	OrderBy      entity.FoodOrder
	FromStage    Stage
}

// PlanResult carries the page and the stage that produced it. Failed is set
// when every query the ladder ran returned an error.
type PlanResult struct {
	Foods  []entity.Food
	Stage  Stage
	Failed bool
}

// Planner runs the retrieval ladder. It never fails: store errors are logged
// and count as an empty stage.
type Planner struct {
	log   *logrus.Logger
	foods chatRepository.FoodStore
}

func NewPlanner(log *logrus.Logger, foods chatRepository.FoodStore) *Planner {
	return &Planner{log: log, foods: foods}
}

type planRun struct {
	queries  int
	failures int
}

func (r *planRun) failed() bool {
	return r.queries > 0 && r.failures == r.queries
}

// Plan walks the ladder from req.FromStage (filtered when unset) and returns
// the first stage with rows.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) PlanResult {
	if req.Limit <= 0 {
		req.Limit = PageSize
	}
	if !req.OrderBy.IsValid() {
		req.OrderBy = entity.FoodOrderDefault
	}

	start := 0
	for i, st := range stageOrder {
		if st == req.FromStage {
			start = i
			break
		}
	}

	run := &planRun{}
	for _, st := range stageOrder[start:] {
		foods := p.runStage(ctx, run, st, req)
		if len(foods) > 0 {
			return PlanResult{Foods: foods, Stage: st}
		}
	}

	return PlanResult{Foods: []entity.Food{}, Stage: StageRandom, Failed: run.failed()}
}

func (p *Planner) runStage(ctx context.Context, run *planRun, st Stage, req PlanRequest) []entity.Food {
	switch st {
	case StageFiltered:
		return p.query(ctx, run, st, entity.FoodFilter{
			Cuisine:      req.Cuisine,
			DietCategory: req.DietCategory,
			MaxCalories:  req.MaxCalories,
			MinProtein:   req.MinProtein,
			MealType:     req.MealType,
			OrderBy:      req.OrderBy,
			Limit:        req.Limit,
			Offset:       req.Offset,
		})
	case StageMealHeuristic:
		if req.DietCategory == "" || req.MealType == "" {
			return nil
		}
		return p.mealHeuristic(ctx, run, req)
	case StageDietOnly:
		if req.DietCategory == "" {
			return nil
		}
		return p.query(ctx, run, st, entity.FoodFilter{DietCategory: req.DietCategory, Limit: req.Limit, Offset: req.Offset})
	case StageMealOnly:
		if req.MealType == "" {
			return nil
		}
		return p.query(ctx, run, st, entity.FoodFilter{MealType: req.MealType, Limit: req.Limit, Offset: req.Offset})
	case StageRandom:
		return p.query(ctx, run, st, entity.FoodFilter{Random: true, Limit: req.Limit})
	}
	return nil
}

func (p *Planner) mealHeuristic(ctx context.Context, run *planRun, req PlanRequest) []entity.Food {
	meal := strings.ToLower(req.MealType)

	if meal == "lunch" {
		sample := p.query(ctx, run, StageMealHeuristic, entity.FoodFilter{
			DietCategory: req.DietCategory,
			Random:       true,
			Limit:        lunchSampleSize,
		})
		return pickLunch(sample, req.Limit)
	}

	patterns, ok := mealPatterns[meal]
	if !ok {
		return nil
	}

	filter := entity.FoodFilter{
		DietCategory: req.DietCategory,
		TypePatterns: patterns[0],
		NamePatterns: patterns[1],
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	if foods := p.query(ctx, run, StageMealHeuristic, filter); len(foods) > 0 {
		return foods
	}

	filter.DietCategory = ""
	return p.query(ctx, run, StageMealHeuristic, filter)
}

// pickLunch prefers lunch-like dishes, then anything that is not an obvious
// ingredient or drink, then the raw sample.
func pickLunch(sample []entity.Food, limit int) []entity.Food {
	var lunch, other []entity.Food
	for _, f := range sample {
		name := strings.ToLower(f.FoodName)
		kind := strings.ToLower(f.Type)

		if containsAny(name, nonLunchKeywords) {
			continue
		}
		if containsAny(name, knownLunchDishes) || containsAny(name, lunchKeywords) || containsAny(kind, lunchKeywords) {
			lunch = append(lunch, f)
		} else {
			other = append(other, f)
		}
	}

	switch {
	case len(lunch) > 0:
		return head(lunch, limit)
	case len(other) > 0:
		return head(other, limit)
	default:
		return head(sample, limit)
	}
}

func (p *Planner) query(ctx context.Context, run *planRun, st Stage, filter entity.FoodFilter) []entity.Food {
	run.queries++
	foods, err := p.foods.QueryFoods(ctx, filter)
	if err != nil {
		run.failures++
		p.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"stage":      string(st),
			"error":      err.Error(),
		}).Warn("Food query failed, treating stage as empty")
		return nil
	}
	return foods
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func head(foods []entity.Food, n int) []entity.Food {
	if len(foods) > n {
		return foods[:n]
	}
	return foods
}
