package chatService

import (
	"errors"
	"strings"

	"HealthifyChat/internal/api/chat"
	chatRepository "HealthifyChat/internal/api/chat/repository"
	"HealthifyChat/internal/entity"
	contextPkg "HealthifyChat/pkg/context"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *chatService) foodQuery(ctx context.Context, foods chatRepository.FoodStore, u nlp.Utterance, bag nlp.EntityBag) outcome {
	if len(bag.Foods) == 0 {
		return outcome{reply: s.selector.Choose(templates.AskFoodName)}
	}

	for _, name := range bag.Foods {
		food, ok := s.lookupFood(ctx, foods, name)
		if !ok {
			continue
		}

		var reply string
		if u.HasPhrase("calorie") {
			reply = formatCalorieLine(food) + "\n"
		} else {
			reply = formatNutritionCard(food)
		}
		if len(bag.Numbers) > 0 {
			reply += formatServings(food, bag.Numbers[0])
		}

		searched := name
		return outcome{
			reply: strings.TrimRight(reply, "\n"),
			patch: session.Patch{Food: &searched},
		}
	}

	suggestions, err := foods.QueryFoods(ctx, entity.FoodFilter{Random: true, Limit: fallbackFoodCount})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to load fallback foods")
		suggestions = nil
	}

	return outcome{reply: formatFoodMiss(bag.Foods, suggestions)}
}

// lookupFood finds a food by name, retrying once with a naive singular form.
// Store errors count as a miss.
func (s *chatService) lookupFood(ctx context.Context, foods chatRepository.FoodStore, name string) (entity.Food, bool) {
	for _, candidate := range nameCandidates(name) {
		food, err := foods.GetFoodByName(ctx, candidate)
		if err == nil {
			return food, true
		}
		if !errors.Is(err, chat.ErrFoodNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"food":       candidate,
				"error":      err.Error(),
			}).Warn("Food lookup failed, treating as not found")
		}
	}
	return entity.Food{}, false
}

func nameCandidates(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	candidates := []string{name}

	switch {
	case strings.HasSuffix(name, "ies") && len(name) > 4:
		candidates = append(candidates, strings.TrimSuffix(name, "ies")+"y")
	case strings.HasSuffix(name, "oes") && len(name) > 4:
		candidates = append(candidates, strings.TrimSuffix(name, "es"))
	case strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss") && len(name) > 3:
		candidates = append(candidates, strings.TrimSuffix(name, "s"))
	}
	return candidates
}
