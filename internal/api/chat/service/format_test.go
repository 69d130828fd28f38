package chatService

import (
	"math"
	"strings"
	"testing"
	"time"

	"HealthifyChat/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatFoodList(t *testing.T) {
	got := formatFoodList("Header\n\n", []entity.Food{
		{FoodName: "Poha", Calories: 180, Protein: 3.5, Cuisine: "Indian", DietCategory: "vegan"},
		{FoodName: "Paneer Tikka", Calories: 250, Protein: 18, Cuisine: "Indian", DietCategory: "vegetarian"},
	})

	assert.Equal(t, "Header\n\n"+
		"• **Poha**: 180 cal, 3.5g protein (Indian, vegan)\n"+
		"• **Paneer Tikka**: 250 cal, 18g protein (Indian, vegetarian)\n", got)
}

func TestFormatServings(t *testing.T) {
	banana := entity.Food{FoodName: "Banana", Calories: 105}

	assert.Equal(t, "For 2 serving(s): approximately **210 calories**", formatServings(banana, 2))
	assert.Equal(t, "For 1.5 serving(s): approximately **157 calories**", formatServings(banana, 1.5))
	assert.Equal(t, "For "+formatNumber(1e30)+" serving(s): approximately **2147483647 calories**", formatServings(banana, 1e30))
}

func TestWholeNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{name: "truncates", in: 250.9, want: 250},
		{name: "zero", in: 0, want: 0},
		{name: "negative", in: -4, want: 0},
		{name: "nan", in: math.NaN(), want: 0},
		{name: "huge", in: 1e30, want: maxWholeNumber},
		{name: "infinite", in: math.Inf(1), want: maxWholeNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wholeNumber(tt.in))
		})
	}
}

func TestFormatFoodMiss(t *testing.T) {
	assert.Equal(t,
		"I couldn't find information for any of these: kale, quinoa. "+foodMissGeneric,
		formatFoodMiss([]string{"kale", "quinoa"}, nil))

	got := formatFoodMiss([]string{"kale"}, []entity.Food{{FoodName: "Banana", Calories: 105, Type: "Fruit"}})
	assert.True(t, strings.HasSuffix(got, foodMissSuggestions+"• **Banana**: 105 calories (Fruit)\n"))
}

func TestFormatTranscript(t *testing.T) {
	assert.Equal(t, historyEmpty, formatTranscript(nil))

	long := strings.Repeat("é", historyReplyRunes+5)
	got := formatTranscript([]entity.ChatHistory{{
		Message:   "hello",
		Reply:     long,
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}})

	assert.True(t, strings.HasPrefix(got, historyHeader))
	assert.Contains(t, got, "👤 **You (2024-03-01 09:30):** hello\n")
	assert.Contains(t, got, strings.Repeat("é", historyReplyRunes)+"...\n")
	assert.True(t, strings.HasSuffix(got, historyFooter))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "abc...", truncateRunes("abcdef", 3))
}
