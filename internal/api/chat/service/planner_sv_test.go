package chatService

import (
	"testing"

	"HealthifyChat/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

func TestPlannerLadder(t *testing.T) {
	tests := []struct {
		name      string
		req       PlanRequest
		wantStage Stage
		check     func(t *testing.T, foods []entity.Food)
	}{
		{
			name:      "filtered hit",
			req:       PlanRequest{DietCategory: "vegetarian", Cuisine: "Indian"},
			wantStage: StageFiltered,
			check: func(t *testing.T, foods []entity.Food) {
				assert.Len(t, foods, 2)
			},
		},
		{
			name:      "lunch heuristic",
			req:       PlanRequest{DietCategory: "vegan", MealType: "lunch", Cuisine: "Mexican"},
			wantStage: StageMealHeuristic,
			check: func(t *testing.T, foods []entity.Food) {
				for _, f := range foods {
					assert.Equal(t, "vegan", f.DietCategory)
					assert.NotEqual(t, "Almond Milk", f.FoodName)
				}
			},
		},
		{
			name:      "diet only",
			req:       PlanRequest{DietCategory: "vegetarian", MealType: "brunch"},
			wantStage: StageDietOnly,
			check: func(t *testing.T, foods []entity.Food) {
				require.Len(t, foods, 2)
				assert.Equal(t, "Paneer Tikka", foods[0].FoodName)
			},
		},
		{
			name:      "meal only",
			req:       PlanRequest{MealType: "breakfast", Cuisine: "Thai"},
			wantStage: StageMealOnly,
			check: func(t *testing.T, foods []entity.Food) {
				assert.Len(t, foods, PageSize)
			},
		},
		{
			name:      "random",
			req:       PlanRequest{Cuisine: "Thai"},
			wantStage: StageRandom,
			check: func(t *testing.T, foods []entity.Food) {
				assert.Len(t, foods, PageSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foods := &fakeFoods{catalog: testCatalog()}
			p := NewPlanner(quietLogger(), foods)

			res := p.Plan(context.Background(), tt.req)
			assert.Equal(t, tt.wantStage, res.Stage)
			tt.check(t, res.Foods)
		})
	}
}

func TestPlannerSurvivesStoreErrors(t *testing.T) {
	foods := &fakeFoods{catalog: testCatalog(), queryErr: errStoreDown}
	p := NewPlanner(quietLogger(), foods)

	res := p.Plan(context.Background(), PlanRequest{DietCategory: "vegan", MealType: "dinner"})
	assert.Empty(t, res.Foods)
	assert.NotNil(t, res.Foods)
	assert.True(t, res.Failed)
	assert.Len(t, foods.queries(), 6)
}

func TestPlannerEmptyStoreIsNotAFailure(t *testing.T) {
	p := NewPlanner(quietLogger(), &fakeFoods{})

	res := p.Plan(context.Background(), PlanRequest{DietCategory: "vegan"})
	assert.Empty(t, res.Foods)
	assert.False(t, res.Failed)
}

func TestPlannerMealHeuristicDropsDiet(t *testing.T) {
	foods := &fakeFoods{catalog: testCatalog()}
	p := NewPlanner(quietLogger(), foods)

	res := p.Plan(context.Background(), PlanRequest{DietCategory: "keto", MealType: "dinner"})
	require.Equal(t, StageMealHeuristic, res.Stage)
	require.NotEmpty(t, res.Foods)
	assert.Equal(t, "Paneer Tikka", res.Foods[0].FoodName)

	queries := foods.queries()
	last := queries[len(queries)-1]
	assert.Empty(t, last.DietCategory)
	assert.Equal(t, []string{"main", "dinner"}, last.TypePatterns)
}

func TestPlannerStartsFromStage(t *testing.T) {
	tests := []struct {
		name      string
		req       PlanRequest
		wantStage Stage
		wantFirst string
		wantLen   int
	}{
		{
			name:      "stored stage with rows",
			req:       PlanRequest{DietCategory: "vegan", MealType: "breakfast", Offset: 5, FromStage: StageMealHeuristic},
			wantStage: StageMealHeuristic,
			wantFirst: "Upma",
			wantLen:   2,
		},
		{
			name:      "filtered page runs dry and the ladder continues",
			req:       PlanRequest{Cuisine: "Indian", DietCategory: "vegan", MealType: "breakfast", Offset: 5, FromStage: StageFiltered},
			wantStage: StageMealHeuristic,
			wantFirst: "Upma",
			wantLen:   2,
		},
		{
			name:      "every offset stage is past the end",
			req:       PlanRequest{DietCategory: "vegan", MealType: "breakfast", Offset: 50, FromStage: StageFiltered},
			wantStage: StageRandom,
			wantFirst: "Banana",
			wantLen:   PageSize,
		},
		{
			name:      "random ignores offset",
			req:       PlanRequest{FromStage: StageRandom, Offset: 50},
			wantStage: StageRandom,
			wantFirst: "Banana",
			wantLen:   PageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foods := &fakeFoods{catalog: testCatalog()}
			p := NewPlanner(quietLogger(), foods)

			res := p.Plan(context.Background(), tt.req)
			assert.Equal(t, tt.wantStage, res.Stage)
			require.Len(t, res.Foods, tt.wantLen)
			assert.Equal(t, tt.wantFirst, res.Foods[0].FoodName)
			assert.False(t, res.Failed)
		})
	}
}

func TestPlannerRandomQueryHasNoOffset(t *testing.T) {
	foods := &fakeFoods{catalog: testCatalog()}
	p := NewPlanner(quietLogger(), foods)

	p.Plan(context.Background(), PlanRequest{FromStage: StageRandom, Offset: 50})

	queries := foods.queries()
	require.Len(t, queries, 1)
	assert.True(t, queries[0].Random)
	assert.Zero(t, queries[0].Offset)
}

func TestPlannerDropsUnknownOrder(t *testing.T) {
	foods := &fakeFoods{catalog: testCatalog()}
	p := NewPlanner(quietLogger(), foods)

	p.Plan(context.Background(), PlanRequest{DietCategory: "vegan", OrderBy: entity.FoodOrder("calories; DROP TABLE foods")})

	queries := foods.queries()
	require.NotEmpty(t, queries)
	assert.Equal(t, entity.FoodOrderDefault, queries[0].OrderBy)
}

func TestPickLunch(t *testing.T) {
	food := func(name, kind string) entity.Food {
		return entity.Food{FoodName: name, Type: kind}
	}

	tests := []struct {
		name   string
		sample []entity.Food
		limit  int
		want   []string
	}{
		{
			name:   "prefers lunch dishes",
			sample: []entity.Food{food("Almond Butter", "Spread"), food("Veg Pulao", "Rice"), food("Apple", "Fruit")},
			limit:  5,
			want:   []string{"Veg Pulao"},
		},
		{
			name:   "falls back to non ingredients",
			sample: []entity.Food{food("Apple", "Fruit"), food("Almond Milk", "Beverage")},
			limit:  5,
			want:   []string{"Apple"},
		},
		{
			name:   "falls back to the sample",
			sample: []entity.Food{food("Almond Milk", "Beverage"), food("Honey", "Sweetener")},
			limit:  1,
			want:   []string{"Almond Milk"},
		},
		{
			name:   "respects limit",
			sample: []entity.Food{food("Dal Tadka", "Curry"), food("Paneer Wrap", "Wrap"), food("Veg Thali", "Meal")},
			limit:  2,
			want:   []string{"Dal Tadka", "Paneer Wrap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickLunch(tt.sample, tt.limit)
			names := make([]string, 0, len(got))
			for _, f := range got {
				names = append(names, f.FoodName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
