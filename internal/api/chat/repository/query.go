package chatRepository

import (
	"fmt"
	"strings"

	"HealthifyChat/internal/entity"
)

const (
	foodColumns = `
			id,
			food_name,
			calories,
			protein,
			carbs,
			fats,
			type,
			cuisine,
			diet_category,
			description`

	queryGetFoodByName = `
		SELECT` + foodColumns + `
		FROM foods
		WHERE LOWER(food_name) LIKE :pattern
		ORDER BY
			(LOWER(food_name) = :name) DESC,
			LENGTH(food_name) ASC,
			food_name ASC
		LIMIT 1
	`

	querySelectFoods = `
		SELECT` + foodColumns + `
		FROM foods
		WHERE 1=1`

	queryGetAllFoodNames = `
		SELECT DISTINCT LOWER(food_name) AS food_name
		FROM foods
		WHERE food_name IS NOT NULL AND food_name <> ''
		ORDER BY food_name
	`

	queryCreateChatHistory = `
		INSERT INTO chat_history (
			id,
			session_id,
			message,
			reply,
			intent,
			created_at
		) VALUES (
			:id,
			:session_id,
			:message,
			:reply,
			:intent,
			:created_at
		)
	`

	queryGetChatHistoryBySession = `
		SELECT
			id,
			session_id,
			message,
			reply,
			intent,
			created_at
		FROM chat_history
		WHERE session_id = :session_id
		ORDER BY created_at DESC, id DESC
		LIMIT :limit
	`
)

const defaultFoodLimit = 5

var foodOrderClauses = map[entity.FoodOrder]string{
	entity.FoodOrderDefault:          "food_name ASC",
	entity.FoodOrderProtein:          "protein DESC, food_name ASC",
	entity.FoodOrderProteinLowEnergy: "protein DESC, calories ASC, food_name ASC",
}

// buildFoodQuery turns a filter into a named query. Only whitelisted orderings
// reach the SQL text; everything else is bound.
func buildFoodQuery(f entity.FoodFilter) (string, map[string]interface{}) {
	var sb strings.Builder
	args := map[string]interface{}{}

	sb.WriteString(querySelectFoods)

	if f.Cuisine != "" {
		sb.WriteString("\n\t\t\tAND LOWER(cuisine) = :cuisine")
		args["cuisine"] = strings.ToLower(f.Cuisine)
	}
	if f.DietCategory != "" {
		sb.WriteString("\n\t\t\tAND LOWER(diet_category) = :diet_category")
		args["diet_category"] = strings.ToLower(f.DietCategory)
	}
	if f.MaxCalories != nil {
		sb.WriteString("\n\t\t\tAND calories <= :max_calories")
		args["max_calories"] = *f.MaxCalories
	}
	if f.MinProtein != nil {
		sb.WriteString("\n\t\t\tAND protein >= :min_protein")
		args["min_protein"] = *f.MinProtein
	}
	if f.MealType != "" {
		sb.WriteString("\n\t\t\tAND (LOWER(type) LIKE :meal_type OR LOWER(food_name) LIKE :meal_type OR LOWER(COALESCE(description, '')) LIKE :meal_type)")
		args["meal_type"] = likePattern(f.MealType)
	}

	var patterns []string
	for i, p := range f.TypePatterns {
		key := fmt.Sprintf("type_%d", i)
		patterns = append(patterns, "LOWER(type) LIKE :"+key)
		args[key] = likePattern(p)
	}
	for i, p := range f.NamePatterns {
		key := fmt.Sprintf("name_%d", i)
		patterns = append(patterns, "LOWER(food_name) LIKE :"+key)
		args[key] = likePattern(p)
	}
	if len(patterns) > 0 {
		sb.WriteString("\n\t\t\tAND (" + strings.Join(patterns, " OR ") + ")")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultFoodLimit
	}
	args["limit"] = limit

	if f.Random {
		sb.WriteString("\n\t\tORDER BY RANDOM()\n\t\tLIMIT :limit")
		return sb.String(), args
	}

	order, ok := foodOrderClauses[f.OrderBy]
	if !ok {
		order = foodOrderClauses[entity.FoodOrderDefault]
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args["offset"] = offset

	sb.WriteString("\n\t\tORDER BY " + order + "\n\t\tLIMIT :limit OFFSET :offset")
	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
