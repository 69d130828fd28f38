package nlp

import "context"

type Intent string

const (
	IntentGreeting           Intent = "greeting"
	IntentGoodbye            Intent = "goodbye"
	IntentFoodQuery          Intent = "food_query"
	IntentFoodRecommendation Intent = "food_recommendation"
	IntentContextFollowup    Intent = "context_followup"
	IntentDietTip            Intent = "diet_tip"
	IntentHydration          Intent = "hydration"
	IntentBMIBMR             Intent = "bmi_bmr"
	IntentExercise           Intent = "exercise"
	IntentFAQ                Intent = "faq"
	IntentFallback           Intent = "fallback"

	// IntentEmpty is never produced by a classifier. The transport uses it
	// for blank messages that skip classification.
	IntentEmpty Intent = "empty"
)

func (i Intent) String() string {
	return string(i)
}

// EntityBag holds what was pulled out of a single utterance. Every slice is
// duplicate free and keeps first-seen order.
type EntityBag struct {
	Foods               []string  `json:"foods"`
	Numbers             []float64 `json:"numbers"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	MealTypes           []string  `json:"meal_types"`
	Cuisines            []string  `json:"cuisines"`
	Nutrients           []string  `json:"nutrients"`
	Qualifiers          []string  `json:"qualifiers"`
}

func NewEntityBag() EntityBag {
	return EntityBag{
		Foods:               []string{},
		Numbers:             []float64{},
		DietaryRestrictions: []string{},
		MealTypes:           []string{},
		Cuisines:            []string{},
		Nutrients:           []string{},
		Qualifiers:          []string{},
	}
}

func (b EntityBag) Clone() EntityBag {
	return EntityBag{
		Foods:               append([]string{}, b.Foods...),
		Numbers:             append([]float64{}, b.Numbers...),
		DietaryRestrictions: append([]string{}, b.DietaryRestrictions...),
		MealTypes:           append([]string{}, b.MealTypes...),
		Cuisines:            append([]string{}, b.Cuisines...),
		Nutrients:           append([]string{}, b.Nutrients...),
		Qualifiers:          append([]string{}, b.Qualifiers...),
	}
}

// First returns the first element of values, or "" when it is empty.
func First(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

type IClassifier interface {
	Classify(text string) Intent
}

type IExtractor interface {
	Extract(ctx context.Context, text string) EntityBag
}

type ICorrector interface {
	Correct(text string, vocabulary []string) string
}

// NounTagger returns candidate noun phrases from text. Implementations may
// fail; callers fall back to keyword splitting.
type NounTagger interface {
	Tag(ctx context.Context, text string) ([]string, error)
}
