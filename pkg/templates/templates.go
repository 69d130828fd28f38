package templates

import (
	"math/rand"
	"sync"
	"time"
)

type Category string

const (
	Greeting          Category = "greeting"
	Goodbye           Category = "goodbye"
	Fallback          Category = "fallback"
	AskFoodName       Category = "ask_food_name"
	FoodSuggestion    Category = "food_suggestion"
	Hydration         Category = "hydration"
	BMIBMR            Category = "bmi_bmr"
	DietTip           Category = "diet_tip"
	NoResults         Category = "no_results"
	DBError           Category = "db_error"
	ClarifyMore       Category = "clarify_more"
	ClarifyAffirm     Category = "clarify_affirmation"
	ClarifyReference  Category = "clarify_reference"
	ResultsExhausted  Category = "results_exhausted"
	MoreOptionsHeader Category = "more_options"
)

// Unknown is returned for a category with no variants.
const Unknown = "I'm here to help with nutrition and fitness! How can I assist you?"

type ISelector interface {
	Choose(category Category) string
	Variants(category Category) []string
	Intn(n int) int
}

type Option func(*Selector)

// WithRand swaps the randomness source.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		s.rnd = r
	}
}

// WithTemplates replaces the variants of one category.
func WithTemplates(category Category, variants ...string) Option {
	return func(s *Selector) {
		s.templates[category] = append([]string{}, variants...)
	}
}

type Selector struct {
	mu        sync.Mutex
	rnd       *rand.Rand
	templates map[Category][]string
}

func New(opts ...Option) *Selector {
	s := &Selector{
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		templates: defaultTemplates(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) Choose(category Category) string {
	variants, ok := s.templates[category]
	if !ok || len(variants) == 0 {
		return Unknown
	}

	s.mu.Lock()
	i := s.rnd.Intn(len(variants))
	s.mu.Unlock()

	return variants[i]
}

func (s *Selector) Variants(category Category) []string {
	return append([]string{}, s.templates[category]...)
}

// Intn exposes the selector's randomness for callers that sample lists.
func (s *Selector) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func defaultTemplates() map[Category][]string {
	return map[Category][]string{
		Greeting: {
			"Hello! 👋 I'm your HealthifyMe fitness assistant. How can I help you today?",
			"Hi there! 😊 Ready to talk about nutrition and fitness?",
			"Hey! Welcome to HealthifyMe! Ask me about calories, foods, diet tips, or exercises.",
			"Namaste! 🙏 I'm here to help with your fitness journey. What would you like to know?",
			"Hello! I can help you with calorie info, food recommendations, diet plans, and more!",
		},
		Goodbye: {
			"Goodbye! Stay healthy and keep up the good work! 💪",
			"Take care! Remember to stay hydrated and eat well! 👋",
			"See you later! Keep crushing those fitness goals! 🎯",
			"Bye! Don't forget to drink water and stay active! 💧",
		},
		Fallback: {
			"I'm not quite sure what you're asking. Could you rephrase that? 🤔",
			"Hmm, I didn't understand that. Try asking about specific foods, calories, diet tips, or exercises.",
			"Sorry, I didn't catch that. Try questions like:\n• 'How many calories in banana?'\n• 'Suggest vegan foods'\n• 'What is BMI?'",
			"I'm here to help with nutrition and fitness! Ask me about foods, calories, diet plans, or workouts.",
		},
		AskFoodName: {
			"Which food would you like to know about? 🍎",
			"Sure! What food are you curious about?",
			"Tell me the food name and I'll find the nutrition info for you!",
			"What food should I look up?",
		},
		FoodSuggestion: {
			"Here are some great options for you:",
			"I found these foods that match your criteria:",
			"Check out these nutritious options:",
			"Based on your request, here are some foods:",
		},
		MoreOptionsHeader: {
			"Sure, here are some more options:",
			"Here are a few more for you:",
		},
		Hydration: {
			"💧 Stay hydrated! Aim for at least 8-10 glasses (2-3 liters) of water daily.",
			"Water is essential! Drink 2-3 liters per day, more if you exercise or it's hot outside.",
			"💦 Hydration tip: Drink a glass of water when you wake up, before meals, and during workouts.",
			"Your body needs water! General rule: 30-35ml per kg of body weight daily. Drink more during exercise!",
		},
		BMIBMR: {
			"📊 **BMI (Body Mass Index)** = Weight(kg) / Height(m)²\n• 18.5-24.9: Normal\n• 25-29.9: Overweight\n• 30+: Obese\n\n**BMR (Basal Metabolic Rate)** = Calories your body burns at rest.",
			"🧮 **BMI Calculator:**\nBMI = Your weight in kg ÷ (Your height in meters)²\n\nExample: 70kg, 1.75m → BMI = 22.9 (Normal)\n\nMultiply your BMR by an activity factor (1.2 sedentary up to 1.725 very active) for daily needs.",
			"📈 Want to calculate your BMI? Use: Weight(kg) / Height(m)²\n\nFor BMR, use the Mifflin-St Jeor equation and multiply by your activity level.",
		},
		DietTip: {
			"🥗 **Diet Tip:** Focus on whole foods - vegetables, fruits, lean proteins, and whole grains. Avoid processed foods and excess sugar.",
			"💡 **Healthy Eating:** Eat protein with every meal to stay full longer and maintain muscle mass.",
			"🍽️ **Portion Control:** Use smaller plates, eat slowly, and stop when 80% full.",
			"🥑 **Balanced Diet:** Include all macros - carbs for energy, protein for muscle, healthy fats for hormones and satiety.",
			"🕐 **Meal Timing:** Don't skip breakfast. Eat every 3-4 hours to maintain energy and avoid overeating later.",
		},
		NoResults: {
			"I couldn't find any foods matching those criteria. Try adjusting your filters!",
			"No matches found. Try broadening your search or ask about specific foods.",
			"Hmm, nothing came up. Try asking about specific foods like 'paneer', 'chicken', or 'oats'.",
		},
		DBError: {
			"Sorry, I'm having trouble reaching my food database right now. Please try again in a moment.",
			"I can't access my food database at the moment. Please try again shortly.",
		},
		ClarifyMore: {
			"I'm not sure what you'd like more of. Could you be more specific?",
		},
		ClarifyAffirm: {
			"I'd be happy to help! Could you please be more specific about what you'd like to know?",
		},
		ClarifyReference: {
			"I'm not sure what you're referring to. Could you please be more specific?",
		},
		ResultsExhausted: {
			"That's all I could find for those criteria. Would you like to try something else?",
		},
	}
}
