package nlp

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	DietaryRestrictions = []string{
		"vegan", "vegetarian", "gluten-free", "dairy-free", "low-carb",
		"keto", "paleo", "non-veg", "non veg",
	}

	MealTypes = []string{"breakfast", "lunch", "dinner", "snack", "brunch"}

	Cuisines = []string{"indian", "global", "western", "chinese", "mexican", "italian", "thai"}

	Nutrients = []string{
		"calories", "protein", "carbs", "carbohydrates", "fats", "fiber", "sugar", "sodium",
	}

	Qualifiers = []string{"high", "low", "rich in", "free of", "healthy", "unhealthy"}

	// Stoplist holds nutrition jargon, instruction words and small talk that
	// must never come back as a food name.
	Stoplist = []string{
		"calorie", "calories", "nutrition", "protein", "protien", "carbs", "carbohydrate",
		"carbohydrates", "fat", "fats", "gram", "grams", "kcal", "much", "many",
		"information", "info", "food", "foods", "guide", "options", "option", "suggest",
		"recommend", "give", "me", "list", "show", "hello", "hi", "hey", "goodbye",
		"bye", "thanks", "thank", "you", "please", "tell", "what", "about", "some",
		"more", "else", "another", "only", "just", "with", "have", "does", "there",
		"serving", "servings", "want", "need", "like", "would", "could", "should",
		"good", "best", "high", "low", "rich", "free", "healthy", "unhealthy",
		"diet", "meal", "meals", "okay", "sure", "yeah", "anything", "something",
		"under", "below", "above", "less", "than", "over", "from", "that", "this",
	}

	numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

type EntityExtractor struct {
	tagger   NounTagger
	stopWord map[string]bool
}

// NewExtractor builds an extractor around tagger. A nil tagger means the
// keyword split is always used.
func NewExtractor(tagger NounTagger) *EntityExtractor {
	stop := make(map[string]bool, len(Stoplist)+len(MealTypes)+len(Cuisines))
	for _, list := range [][]string{Stoplist, MealTypes, Cuisines, DietaryRestrictions} {
		for _, w := range list {
			stop[w] = true
		}
	}

	return &EntityExtractor{
		tagger:   tagger,
		stopWord: stop,
	}
}

func (e *EntityExtractor) Extract(ctx context.Context, text string) EntityBag {
	lower := strings.ToLower(text)
	bag := NewEntityBag()

	bag.DietaryRestrictions = matchVocabulary(lower, DietaryRestrictions)
	bag.MealTypes = matchVocabulary(lower, MealTypes)
	bag.Cuisines = matchVocabulary(lower, Cuisines)
	bag.Nutrients = matchVocabulary(lower, Nutrients)
	bag.Qualifiers = matchVocabulary(lower, Qualifiers)
	bag.Numbers = extractNumbers(lower)
	bag.Foods = e.extractFoods(ctx, lower)

	return bag
}

func matchVocabulary(text string, vocabulary []string) []string {
	found := []string{}
	for _, kw := range vocabulary {
		if strings.Contains(text, kw) && !contains(found, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func extractNumbers(text string) []float64 {
	numbers := []float64{}
	for _, raw := range numberPattern.FindAllString(text, -1) {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		dup := false
		for _, existing := range numbers {
			if existing == n {
				dup = true
				break
			}
		}
		if !dup {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

func (e *EntityExtractor) extractFoods(ctx context.Context, text string) []string {
	if e.tagger != nil {
		candidates, err := e.tagger.Tag(ctx, text)
		if err == nil {
			return e.filterCandidates(candidates, 3)
		}
	}
	return e.keywordSplit(text)
}

func (e *EntityExtractor) filterCandidates(candidates []string, minLen int) []string {
	foods := []string{}
	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if len([]rune(c)) < minLen || e.stopWord[c] || contains(foods, c) {
			continue
		}
		foods = append(foods, c)
	}
	return foods
}

// keywordSplit keeps whitespace tokens longer than three characters that are
// not on the stoplist.
func (e *EntityExtractor) keywordSplit(text string) []string {
	foods := []string{}
	for _, w := range strings.Fields(text) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(w)) <= 3 || e.stopWord[w] || isNumeric(w) || contains(foods, w) {
			continue
		}
		foods = append(foods, w)
	}
	return foods
}

// KeywordTagger exposes the stoplist split as a NounTagger.
type KeywordTagger struct{}

func (KeywordTagger) Tag(_ context.Context, text string) ([]string, error) {
	return NewExtractor(nil).keywordSplit(strings.ToLower(text)), nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
