package chatService

import (
	"fmt"

	chatRepository "HealthifyChat/internal/api/chat/repository"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"
	"HealthifyChat/pkg/templates"

	"golang.org/x/net/context"
)

func (s *chatService) followUp(ctx context.Context, planner *Planner, foods chatRepository.FoodStore, c session.Context, u nlp.Utterance) outcome {
	out := outcome{followup: true}

	switch {
	case nlp.IsContinuation(u):
		snap := continuationSnapshot(c)
		if snap == nil {
			out.reply = s.selector.Choose(templates.ClarifyMore)
			return out
		}

		res := planner.Plan(ctx, planRequest(*snap))
		if res.Failed {
			out.reply = s.selector.Choose(templates.DBError)
			return out
		}
		if len(res.Foods) == 0 {
			out.reply = s.selector.Choose(templates.ResultsExhausted)
			return out
		}

		next := snap.Clone()
		next.Offset += PageSize
		next.Stage = string(res.Stage)
		out.patch.Recommendation = next
		out.reply = formatFoodList(s.selector.Choose(templates.MoreOptionsHeader)+"\n\n", res.Foods)

	case nlp.IsAffirmation(u):
		switch c.LastExerciseTopic {
		case session.TopicWeightLoss:
			out.reply = weightLossDetails
		case session.TopicWeightGain:
			out.reply = weightGainDetails
		default:
			out.reply = s.selector.Choose(templates.ClarifyAffirm)
		}

	case c.LastFood != "":
		out.reply = s.lastFoodReply(ctx, foods, c.LastFood, u)

	default:
		out.reply = s.selector.Choose(templates.ClarifyReference)
	}

	return out
}

// continuationSnapshot returns the snapshot to page from. A session whose
// last turn was a recommendation without a stored snapshot gets one rebuilt
// from its entities. Nil means there is nothing to continue.
func continuationSnapshot(c session.Context) *session.RecommendationSnapshot {
	snap := c.LastRecommendation.Clone()
	if snap == nil && c.LastIntent == nlp.IntentFoodRecommendation {
		snap = &session.RecommendationSnapshot{
			Cuisine:      normalizeCuisine(nlp.First(c.LastEntities.Cuisines)),
			DietCategory: normalizeDiet(nlp.First(c.LastEntities.DietaryRestrictions)),
			MealType:     nlp.First(c.LastEntities.MealTypes),
			Offset:       PageSize,
			Stage:        string(StageFiltered),
		}
	}
	if snap == nil || !snap.HasFilter() {
		return nil
	}
	return snap
}

func (s *chatService) lastFoodReply(ctx context.Context, foods chatRepository.FoodStore, name string, u nlp.Utterance) string {
	if !u.HasAnyWord(nlp.LimitingWords...) {
		return fmt.Sprintf("We were just talking about %s. Did you want to ask something specific about it?", name)
	}

	switch {
	case u.HasAnyPhrase("calorie"):
		food, ok := s.lookupFood(ctx, foods, name)
		if !ok {
			return fmt.Sprintf("Sorry, I don't have information for %s.", name)
		}
		return formatCalorieLine(food)
	case u.HasAnyPhrase("protein"):
		food, ok := s.lookupFood(ctx, foods, name)
		if !ok {
			return fmt.Sprintf("Sorry, I don't have information for %s.", name)
		}
		return formatProteinLine(food)
	default:
		return fmt.Sprintf("We were talking about %s. What specifically would you like to know about it?", name)
	}
}
