package chatService

import (
	"strings"

	"HealthifyChat/internal/entity"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"

	"golang.org/x/net/context"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	lowCalorieCeiling   = 150
	highProteinMinimumG = 10.0
)

var titleCaser = cases.Title(language.English)

// deriveCriteria builds the filter set of a recommendation request. Entities
// come from the same corrected text, so they already carry what a substring
// check would find.
func deriveCriteria(u nlp.Utterance, bag nlp.EntityBag) session.RecommendationSnapshot {
	var snap session.RecommendationSnapshot

	snap.Cuisine = normalizeCuisine(nlp.First(bag.Cuisines))
	snap.DietCategory = normalizeDiet(nlp.First(bag.DietaryRestrictions))
	snap.MealType = strings.ToLower(nlp.First(bag.MealTypes))

	if len(bag.Numbers) > 0 {
		v := wholeNumber(bag.Numbers[0])
		snap.MaxCalories = &v
	} else if u.HasAnyPhrase("low calorie", "low calories") {
		v := lowCalorieCeiling
		snap.MaxCalories = &v
	}

	highProtein := u.HasAnyPhrase("high protein", "high in protein")
	if highProtein {
		v := highProteinMinimumG
		snap.MinProtein = &v
		snap.OrderBy = string(entity.FoodOrderProtein)
	}
	if highProtein && u.HasAnyPhrase("low calorie", "less in calories") {
		snap.OrderBy = string(entity.FoodOrderProteinLowEnergy)
	}

	return snap
}

func normalizeCuisine(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return ""
	}
	if c == "western" {
		c = "global"
	}
	return titleCaser.String(c)
}

func normalizeDiet(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if d == "non veg" {
		return "non-veg"
	}
	return d
}

func planRequest(snap session.RecommendationSnapshot) PlanRequest {
	return PlanRequest{
		Cuisine:      snap.Cuisine,
		DietCategory: snap.DietCategory,
		MaxCalories:  snap.MaxCalories,
		MinProtein:   snap.MinProtein,
		MealType:     snap.MealType,
		Limit:        PageSize,
		Offset:       snap.Offset,
		OrderBy:      entity.FoodOrder(snap.OrderBy),
		FromStage:    Stage(snap.Stage),
	}
}

func (s *chatService) recommend(ctx context.Context, planner *Planner, u nlp.Utterance, bag nlp.EntityBag) outcome {
	criteria := deriveCriteria(u, bag)
	if !criteria.HasFilter() {
		return outcome{
			reply: recommendationClarification,
			patch: session.Patch{ClearRecommendation: true},
		}
	}

	res := planner.Plan(ctx, planRequest(criteria))
	if len(res.Foods) == 0 {
		category := templates.NoResults
		if res.Failed {
			category = templates.DBError
		}
		return outcome{
			reply: s.selector.Choose(category),
			patch: session.Patch{ClearRecommendation: true},
		}
	}

	criteria.Offset = PageSize
	criteria.Stage = string(res.Stage)

	return outcome{
		reply: formatFoodList(s.selector.Choose(templates.FoodSuggestion)+"\n\n", res.Foods),
		patch: session.Patch{Recommendation: &criteria},
	}
}
