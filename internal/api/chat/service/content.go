package chatService

const (
	emptyMessageReply = "Please type something so I can help you! 😊"

	recommendationClarification = "I'd be happy to help with food recommendations! To give you the best suggestions, could you tell me:\n\n" +
		"• Any dietary preferences (vegan, vegetarian, non-veg)?\n" +
		"• What type of meal (breakfast, lunch, dinner, snack)?\n" +
		"• Any cuisine preferences (Indian, Global, etc.)?\n" +
		"• Any specific nutritional goals (low calorie, high protein)?\n\n" +
		"For example: 'Suggest vegan breakfast options' or 'High protein Indian dinner'"

	foodMissSuggestions = "Here are some similar options:\n\n"
	foodMissGeneric     = "Try asking about common foods like banana, chicken, rice, or paneer!"

	capabilityList = "I can help with questions about:\n\n" +
		"• Nutrition information for different foods\n" +
		"• Food recommendations based on dietary preferences\n" +
		"• Diet and nutrition tips\n" +
		"• Exercise recommendations\n" +
		"• Hydration advice\n" +
		"• BMI and BMR information\n\n" +
		"What would you like to know more about?"

	historyHeader = "Here's what we've talked about recently:\n\n"
	historyFooter = "What would you like to know more about?"
	historyEmpty  = "I don't think we've talked about anything yet. How can I help you?"

	weightLossPlan = "🔥 **Weight Loss Workout Plan:**\n\n" +
		"For effective weight loss, focus on a combination of:\n\n" +
		"• **Cardio (3-5 days/week):** 30-45 minutes of running, cycling, swimming, or brisk walking\n" +
		"• **Strength Training (2-3 days/week):** Full body workouts with compound exercises\n" +
		"• **HIIT (1-2 days/week):** High-intensity interval training for maximum calorie burn\n\n" +
		"Remember to combine exercise with a balanced diet for best results!\n\n" +
		"Would you like specific exercises for any of these categories?"

	weightGainPlan = "💪 **Weight Gain & Muscle Building Plan:**\n\n" +
		"For healthy weight gain and muscle building:\n\n" +
		"• **Strength Training (4-5 days/week):** Focus on compound exercises like squats, deadlifts, bench press\n" +
		"• **Progressive Overload:** Gradually increase weight or reps each week\n" +
		"• **Limited Cardio:** 2-3 light sessions per week (20 minutes)\n" +
		"• **Caloric Surplus:** Eat 300-500 calories above your maintenance level\n" +
		"• **Protein Intake:** Aim for 1.6-2.2g protein per kg of body weight\n\n" +
		"Would you like specific exercises for muscle building?"

	weightLossDetails = "🔥 **Specific Weight Loss Exercises:**\n\n" +
		"**Cardio Exercises:**\n" +
		"• Running: 300-400 calories/hour\n" +
		"• Cycling: 250-350 calories/hour\n" +
		"• Swimming: 350-450 calories/hour\n\n" +
		"**Strength Training:**\n" +
		"• Squats: 5-8 calories/minute\n" +
		"• Push-ups: 7-9 calories/minute\n" +
		"• Lunges: 6-8 calories/minute\n\n" +
		"**HIIT Workouts:**\n" +
		"• Burpees: 10-15 calories/minute\n" +
		"• Jumping Jacks: 8-12 calories/minute\n" +
		"• Mountain Climbers: 9-12 calories/minute\n\n" +
		"Would you like a detailed workout plan for any of these?"

	weightGainDetails = "💪 **Specific Muscle Building Exercises:**\n\n" +
		"**Compound Movements:**\n" +
		"• Squats: Targets quads, glutes, hamstrings\n" +
		"• Deadlifts: Works entire posterior chain\n" +
		"• Bench Press: Targets chest, shoulders, triceps\n" +
		"• Overhead Press: Focus on shoulders and triceps\n\n" +
		"**Isolation Exercises:**\n" +
		"• Bicep Curls: For arm growth\n" +
		"• Tricep Extensions: For arm definition\n" +
		"• Lateral Raises: For shoulder width\n\n" +
		"**Sample Weekly Split:**\n" +
		"• Monday: Chest & Triceps\n" +
		"• Tuesday: Back & Biceps\n" +
		"• Wednesday: Rest\n" +
		"• Thursday: Legs\n" +
		"• Friday: Shoulders & Abs\n" +
		"• Weekend: Rest or light cardio\n\n" +
		"Would you like more details on any of these exercises?"

	exerciseHeader = "🏋️ **Exercise Recommendations:**\n\n"
	exerciseFooter = "\nWould you like more details about any of these exercises?"
	exercisePicks  = 5
)

type exercise struct {
	Name       string
	Calories   string
	Difficulty string
}

var exerciseCatalog = []exercise{
	{"Running", "300-400", "Moderate"},
	{"Cycling", "250-350", "Moderate"},
	{"Swimming", "350-450", "Moderate"},
	{"Push-ups", "100-150", "Easy to Moderate"},
	{"Squats", "150-200", "Easy to Moderate"},
	{"Jumping Jacks", "100-150", "Easy"},
	{"Burpees", "200-300", "Hard"},
	{"Yoga", "150-200", "Easy to Moderate"},
	{"Weight Training", "200-300", "Moderate to Hard"},
	{"Walking", "150-200", "Easy"},
}

type foodTip struct {
	Food string
	Text string
}

// foodTips is checked in order; the first food found in the message wins.
var foodTips = []foodTip{
	{"rice", "🍚 **Is Rice Healthy?**\n\n" +
		"White rice is a good source of energy but lacks fiber and nutrients. Brown rice is healthier as it contains more fiber, vitamins, and minerals.\n\n" +
		"For a balanced diet, choose brown rice or mix white rice with other whole grains."},
	{"bread", "🍞 **Is Bread Healthy?**\n\n" +
		"Whole grain bread is healthier than white bread as it contains more fiber, vitamins, and minerals.\n\n" +
		"Look for bread with \"100% whole grain\" on the label for the healthiest option."},
	{"sugar", "🍬 **Is Sugar Healthy?**\n\n" +
		"Excessive sugar intake can lead to weight gain, diabetes, and other health issues.\n\n" +
		"Limit added sugars and choose natural sweeteners like fruits instead."},
	{"salt", "🧂 **Is Salt Healthy?**\n\n" +
		"Your body needs some salt, but too much can increase blood pressure and risk of heart disease.\n" +
		"Aim for less than 2,300mg of sodium per day (about 1 teaspoon of salt)."},
	{"oil", "🥑 **Is Oil Healthy?**\n\n" +
		"Healthy fats like olive oil, avocado oil, and coconut oil are good in moderation.\n" +
		"Limit saturated and trans fats found in processed foods."},
	{"butter", "🧈 **Is Butter Healthy?**\n\n" +
		"Butter is high in saturated fat, so use it sparingly.\n" +
		"Consider healthier alternatives like olive oil or avocado oil."},
}
