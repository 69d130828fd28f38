package chatService

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"HealthifyChat/internal/entity"
)

const (
	historyReplyRunes = 80
	maxWholeNumber    = math.MaxInt32
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// wholeNumber truncates v into [0, maxWholeNumber].
func wholeNumber(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= maxWholeNumber:
		return maxWholeNumber
	default:
		return int(v)
	}
}

func formatFoodList(header string, foods []entity.Food) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, f := range foods {
		fmt.Fprintf(&sb, "• **%s**: %d cal, %sg protein (%s, %s)\n",
			f.FoodName, f.Calories, formatNumber(f.Protein), f.Cuisine, f.DietCategory)
	}
	return sb.String()
}

func formatCalorieLine(f entity.Food) string {
	return fmt.Sprintf("• %s: %d kcal", f.FoodName, f.Calories)
}

func formatProteinLine(f entity.Food) string {
	return fmt.Sprintf("• %s: %sg protein", f.FoodName, formatNumber(f.Protein))
}

func formatNutritionCard(f entity.Food) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (%s cuisine, %s)\n\n", f.FoodName, f.Cuisine, f.DietCategory)
	sb.WriteString("📊 **Nutrition Info:**\n")
	fmt.Fprintf(&sb, "• Calories: %d kcal\n", f.Calories)
	fmt.Fprintf(&sb, "• Protein: %sg\n", formatNumber(f.Protein))
	fmt.Fprintf(&sb, "• Carbs: %sg\n", formatNumber(f.Carbs))
	fmt.Fprintf(&sb, "• Fats: %sg\n", formatNumber(f.Fats))
	fmt.Fprintf(&sb, "• Type: %s\n\n", f.Type)
	if f.Description != "" {
		fmt.Fprintf(&sb, "ℹ️ %s\n\n", f.Description)
	}
	return sb.String()
}

func formatServings(f entity.Food, quantity float64) string {
	return fmt.Sprintf("For %s serving(s): approximately **%d calories**",
		formatNumber(quantity), wholeNumber(float64(f.Calories)*quantity))
}

func formatFoodMiss(names []string, suggestions []entity.Food) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I couldn't find information for any of these: %s. ", strings.Join(names, ", "))
	if len(suggestions) == 0 {
		sb.WriteString(foodMissGeneric)
		return sb.String()
	}
	sb.WriteString(foodMissSuggestions)
	for _, f := range suggestions {
		fmt.Fprintf(&sb, "• **%s**: %d calories (%s)\n", f.FoodName, f.Calories, f.Type)
	}
	return sb.String()
}

func formatTranscript(items []entity.ChatHistory) string {
	if len(items) == 0 {
		return historyEmpty
	}

	var sb strings.Builder
	sb.WriteString(historyHeader)
	for _, item := range items {
		fmt.Fprintf(&sb, "👤 **You (%s):** %s\n", item.CreatedAt.Format("2006-01-02 15:04"), item.Message)
		fmt.Fprintf(&sb, "🤖 **Me:** %s\n\n", truncateRunes(item.Reply, historyReplyRunes))
	}
	sb.WriteString(historyFooter)
	return sb.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func formatExercises(picks []exercise) string {
	var sb strings.Builder
	sb.WriteString(exerciseHeader)
	for _, ex := range picks {
		fmt.Fprintf(&sb, "• **%s**: %s cal/30min (%s)\n", ex.Name, ex.Calories, ex.Difficulty)
	}
	sb.WriteString(exerciseFooter)
	return sb.String()
}
