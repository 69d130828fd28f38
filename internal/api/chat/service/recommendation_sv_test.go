package chatService

import (
	"testing"

	"HealthifyChat/internal/entity"
	"HealthifyChat/pkg/nlp"
	"HealthifyChat/pkg/session"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/context"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestDeriveCriteria(t *testing.T) {
	extractor := nlp.NewExtractor(nil)

	tests := []struct {
		name    string
		message string
		want    session.RecommendationSnapshot
	}{
		{
			name:    "diet and meal",
			message: "suggest vegan breakfast",
			want:    session.RecommendationSnapshot{DietCategory: "vegan", MealType: "breakfast"},
		},
		{
			name:    "calorie ceiling from number",
			message: "vegetarian lunch under 300 calories",
			want:    session.RecommendationSnapshot{DietCategory: "vegetarian", MealType: "lunch", MaxCalories: intPtr(300)},
		},
		{
			name:    "oversized ceiling is clamped",
			message: "vegan snack under 99999999999999999999 calories",
			want:    session.RecommendationSnapshot{DietCategory: "vegan", MealType: "snack", MaxCalories: intPtr(maxWholeNumber)},
		},
		{
			name:    "high protein low calorie",
			message: "high protein low calorie indian dinner",
			want: session.RecommendationSnapshot{
				Cuisine:     "Indian",
				MealType:    "dinner",
				MaxCalories: intPtr(lowCalorieCeiling),
				MinProtein:  floatPtr(highProteinMinimumG),
				OrderBy:     string(entity.FoodOrderProteinLowEnergy),
			},
		},
		{
			name:    "high protein only",
			message: "show me high protein options",
			want: session.RecommendationSnapshot{
				MinProtein: floatPtr(highProteinMinimumG),
				OrderBy:    string(entity.FoodOrderProtein),
			},
		},
		{
			name:    "western maps to global",
			message: "recommend western food",
			want:    session.RecommendationSnapshot{Cuisine: "Global"},
		},
		{
			name:    "non veg spelling",
			message: "non veg dinner please",
			want:    session.RecommendationSnapshot{DietCategory: "non-veg", MealType: "dinner"},
		},
		{
			name:    "nothing",
			message: "suggest something",
			want:    session.RecommendationSnapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := nlp.NewUtterance(tt.message)
			got := deriveCriteria(u, extractor.Extract(context.Background(), u.Text))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.HasFilter(), got.HasFilter())
		})
	}
}

func TestContinuationSnapshot(t *testing.T) {
	bag := nlp.NewEntityBag()
	bag.DietaryRestrictions = []string{"vegan"}
	bag.Cuisines = []string{"western"}

	tests := []struct {
		name string
		ctx  session.Context
		want *session.RecommendationSnapshot
	}{
		{
			name: "stored snapshot",
			ctx: session.Context{
				LastIntent:         nlp.IntentExercise,
				LastRecommendation: &session.RecommendationSnapshot{MealType: "snack", Offset: 15},
			},
			want: &session.RecommendationSnapshot{MealType: "snack", Offset: 15},
		},
		{
			name: "rebuilt from entities",
			ctx:  session.Context{LastIntent: nlp.IntentFoodRecommendation, LastEntities: bag},
			want: &session.RecommendationSnapshot{
				Cuisine:      "Global",
				DietCategory: "vegan",
				Offset:       PageSize,
				Stage:        string(StageFiltered),
			},
		},
		{
			name: "other intent",
			ctx:  session.Context{LastIntent: nlp.IntentGreeting, LastEntities: bag},
		},
		{
			name: "recommendation without filters",
			ctx:  session.Context{LastIntent: nlp.IntentFoodRecommendation, LastEntities: nlp.NewEntityBag()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, continuationSnapshot(tt.ctx))
		})
	}
}

func TestNameCandidates(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "Bananas", want: []string{"bananas", "banana"}},
		{in: "berries", want: []string{"berries", "berry"}},
		{in: "tomatoes", want: []string{"tomatoes", "tomato"}},
		{in: "grass", want: []string{"grass"}},
		{in: "rice", want: []string{"rice"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, nameCandidates(tt.in))
		})
	}
}
