package nlp

import (
	"strings"
)

// Utterance is the lower-cased text plus its whole-word tokens.
type Utterance struct {
	Text   string
	Tokens []string
	words  map[string]bool
}

func NewUtterance(text string) Utterance {
	lower := strings.ToLower(strings.TrimSpace(text))
	tokens := tokenize(lower)
	words := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		words[t] = true
	}
	return Utterance{Text: lower, Tokens: tokens, words: words}
}

func (u Utterance) HasWord(word string) bool {
	return u.words[word]
}

func (u Utterance) HasPhrase(phrase string) bool {
	return strings.Contains(u.Text, phrase)
}

// HasWordSequence reports whether the tokens of phrase appear consecutively
// in the utterance, so "protein in" does not match "protein indian".
func (u Utterance) HasWordSequence(phrase string) bool {
	want := tokenize(phrase)
	if len(want) == 0 || len(want) > len(u.Tokens) {
		return false
	}
	for i := 0; i+len(want) <= len(u.Tokens); i++ {
		matched := true
		for j, w := range want {
			if u.Tokens[i+j] != w {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// HasAnyWord reports a whole-token hit for single words and a token sequence
// hit for multi-word keywords.
func (u Utterance) HasAnyWord(keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if u.HasWordSequence(kw) {
				return true
			}
			continue
		}
		if u.HasWord(kw) {
			return true
		}
	}
	return false
}

func (u Utterance) HasAnyPhrase(phrases ...string) bool {
	for _, p := range phrases {
		if u.HasPhrase(p) {
			return true
		}
	}
	return false
}

// Rule matches when a phrase or word hits (if any are given), every AllOf
// group has a substring hit, every token is in Only (if given), and Veto does
// not fire.
type Rule struct {
	Intent  Intent
	Phrases []string
	Words   []string
	AllOf   [][]string
	Only    []string
	Veto    func(u Utterance) bool
}

func (r Rule) Match(u Utterance) bool {
	if len(r.Phrases) == 0 && len(r.Words) == 0 && len(r.AllOf) == 0 {
		return false
	}

	if len(r.Phrases) > 0 || len(r.Words) > 0 {
		if !u.HasAnyPhrase(r.Phrases...) && !u.HasAnyWord(r.Words...) {
			return false
		}
	}

	for _, group := range r.AllOf {
		if !u.HasAnyPhrase(group...) {
			return false
		}
	}

	if len(r.Only) > 0 {
		if len(u.Tokens) == 0 {
			return false
		}
		allowed := make(map[string]bool, len(r.Only))
		for _, w := range r.Only {
			allowed[w] = true
		}
		for _, t := range u.Tokens {
			if !allowed[t] {
				return false
			}
		}
	}

	if r.Veto != nil && r.Veto(u) {
		return false
	}

	return true
}

var (
	FoodQueryPhrases = []string{
		"calories in", "how many calories", "nutrition in", "protein in",
		"carbs in", "fats in", "calories of", "nutrition of", "how much protein",
	}

	RecommendationPhrases = []string{
		"suggest", "recommend", "give me", "list of", "what are some",
		"show me", "options", "high protein", "low calorie",
	}

	ContinuationWords = []string{
		"more", "else", "another", "what else", "any more", "anything else", "other?",
	}

	AffirmationWords = []string{
		"yes", "yeah", "yep", "sure", "ok", "okay", "please",
	}

	LimitingWords = []string{"only", "just"}

	WeightLossPhrases = []string{
		"weight loss", "lose weight", "burn fat", "reduce weight", "slimming", "fat loss",
	}

	WeightGainPhrases = []string{
		"weight gain", "gain weight", "build muscle", "muscle building", "bulk up",
	}

	HistoryPhrases = []string{"discuss", "talk about", "talked about"}

	affirmationFiller = []string{
		"yes", "yeah", "yep", "sure", "ok", "okay", "please", "tell", "me",
		"thanks", "go", "ahead", "alright", "do", "it", "absolutely", "of", "course",
	}

	// limitingFiller is every token a bare "only calories" style follow-up
	// may contain.
	limitingFiller = []string{
		"only", "just", "the", "its", "it", "about", "calories", "calorie",
		"protein", "carbs", "carb", "fats", "fat", "please",
	}

	affirmationRule = Rule{Intent: IntentContextFollowup, Words: AffirmationWords, Phrases: []string{"tell me"}, Only: affirmationFiller}
	limitingRule    = Rule{Intent: IntentContextFollowup, Words: LimitingWords, Only: limitingFiller}
)

// IsContinuation reports whether the utterance asks for more of the previous
// result.
func IsContinuation(u Utterance) bool {
	return u.HasAnyWord(ContinuationWords...) || u.HasPhrase("other?")
}

// IsAffirmation reports a bare yes/sure/tell me reply.
func IsAffirmation(u Utterance) bool {
	return affirmationRule.Match(u)
}

func hasFilterTerm(u Utterance) bool {
	return u.HasAnyPhrase(DietaryRestrictions...) ||
		u.HasAnyPhrase(MealTypes...) ||
		u.HasAnyPhrase(Cuisines...)
}

// DefaultRules is the canonical priority table. The first matching rule wins.
func DefaultRules() []Rule {
	continuationOnly := func(u Utterance) bool {
		return IsContinuation(u) && !hasFilterTerm(u)
	}

	return []Rule{
		{Intent: IntentFoodQuery, Words: FoodQueryPhrases},
		{Intent: IntentFoodRecommendation, Phrases: RecommendationPhrases, Veto: continuationOnly},
		{Intent: IntentFoodRecommendation, AllOf: [][]string{DietaryRestrictions, MealTypes}},
		{Intent: IntentContextFollowup, Words: ContinuationWords, Phrases: []string{"other?"}},
		affirmationRule,
		limitingRule,
		{Intent: IntentGreeting, Words: []string{"hello", "hi", "hey", "namaste"}, Phrases: []string{"good morning", "good afternoon", "good evening"}},
		{Intent: IntentGoodbye, Words: []string{"bye", "goodbye"}, Phrases: []string{"see you", "take care", "good night"}},
		{Intent: IntentDietTip, Phrases: []string{"diet", "healthy", "nutrition advice", "eating healthy"}},
		{Intent: IntentHydration, Phrases: []string{"water", "hydration", "hydrated", "drink"}},
		{Intent: IntentBMIBMR, Words: []string{"bmi", "bmr"}, Phrases: []string{"body mass index", "basal metabolic rate"}},
		{Intent: IntentExercise, Phrases: []string{
			"exercise", "workout", "fitness", "training", "gym", "cardio", "strength",
			"yoga", "running", "walking", "cycling", "swimming",
		}},
		{Intent: IntentExercise, Phrases: WeightLossPhrases},
		{Intent: IntentExercise, Phrases: WeightGainPhrases},
		{Intent: IntentFAQ, Words: []string{"how", "what", "why", "when", "which", "who"}, Phrases: append([]string{"question", "help"}, HistoryPhrases...)},
		{Intent: IntentFoodRecommendation, Phrases: MealTypes},
	}
}

type ruleClassifier struct {
	rules []Rule
}

func NewRuleClassifier(rules []Rule) IClassifier {
	return &ruleClassifier{rules: rules}
}

func NewClassifier() IClassifier {
	return NewRuleClassifier(DefaultRules())
}

func (c *ruleClassifier) Classify(text string) Intent {
	u := NewUtterance(text)
	for _, rule := range c.rules {
		if rule.Match(u) {
			return rule.Intent
		}
	}
	return IntentFallback
}

// ReservedWords lists the single-word keywords the classifier and extractor
// depend on. The spelling corrector leaves them alone.
func ReservedWords() []string {
	seen := map[string]bool{}
	var out []string
	add := func(list ...string) {
		for _, kw := range list {
			for _, w := range tokenize(kw) {
				if !seen[w] {
					seen[w] = true
					out = append(out, w)
				}
			}
		}
	}

	for _, r := range DefaultRules() {
		add(r.Phrases...)
		add(r.Words...)
		for _, g := range r.AllOf {
			add(g...)
		}
	}
	add(affirmationFiller...)
	add(limitingFiller...)
	add(DietaryRestrictions...)
	add(MealTypes...)
	add(Cuisines...)
	add(Nutrients...)
	add(Qualifiers...)
	add(Stoplist...)
	return out
}
