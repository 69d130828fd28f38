package entity

type Food struct {
	ID           int64   `db:"id"`
	FoodName     string  `db:"food_name"`
	Calories     int     `db:"calories"`
	Protein      float64 `db:"protein"`
	Carbs        float64 `db:"carbs"`
	Fats         float64 `db:"fats"`
	Type         string  `db:"type"`
	Cuisine      string  `db:"cuisine"`
	DietCategory string  `db:"diet_category"`
	Description  string  `db:"description"`
}

type FoodOrder string

const (
	FoodOrderDefault          FoodOrder = ""
	FoodOrderProtein          FoodOrder = "protein DESC"
	FoodOrderProteinLowEnergy FoodOrder = "protein DESC, calories ASC"
)

func (o FoodOrder) IsValid() bool {
	switch o {
	case FoodOrderDefault, FoodOrderProtein, FoodOrderProteinLowEnergy:
		return true
	default:
		return false
	}
}

// FoodFilter is a conjunction of the set fields. TypePatterns and
// NamePatterns are substrings OR'd together into a single predicate.
// Random ignores OrderBy and Offset.
type FoodFilter struct {
	Cuisine      string
	DietCategory string
	MaxCalories  *int
	MinProtein   *float64
	MealType     string
	TypePatterns []string
	NamePatterns []string
	OrderBy      FoodOrder
	Limit        int
	Offset       int
	Random       bool
}
