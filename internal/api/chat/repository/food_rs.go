package chatRepository

import (
	"database/sql"
	"errors"
	"strings"

	"HealthifyChat/internal/api/chat"
	"HealthifyChat/internal/entity"
	contextPkg "HealthifyChat/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type FoodDB struct {
	ID           sql.NullInt64   `db:"id"`
	FoodName     sql.NullString  `db:"food_name"`
	Calories     sql.NullInt64   `db:"calories"`
	Protein      sql.NullFloat64 `db:"protein"`
	Carbs        sql.NullFloat64 `db:"carbs"`
	Fats         sql.NullFloat64 `db:"fats"`
	Type         sql.NullString  `db:"type"`
	Cuisine      sql.NullString  `db:"cuisine"`
	DietCategory sql.NullString  `db:"diet_category"`
	Description  sql.NullString  `db:"description"`
}

// GetFoodByName returns the best case-insensitive partial match: an exact
// name wins, otherwise the shortest matching name.
func (r *foodRepository) GetFoodByName(c context.Context, name string) (entity.Food, error) {
	requestID := contextPkg.GetRequestID(c)
	var food FoodDB

	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return entity.Food{}, chat.ErrFoodNotFound
	}

	argsKV := map[string]interface{}{
		"pattern": likePattern(normalized),
		"name":    normalized,
	}

	query, args, err := sqlx.Named(queryGetFoodByName, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFoodByName named query preparation err")
		return entity.Food{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&food); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"food":       normalized,
			}).Debug("GetFoodByName no rows found")
			return entity.Food{}, chat.ErrFoodNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFoodByName execution err")
		return entity.Food{}, err
	}

	return r.makeFood(food), nil
}

func (r *foodRepository) QueryFoods(c context.Context, filter entity.FoodFilter) ([]entity.Food, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []FoodDB

	raw, argsKV := buildFoodQuery(filter)

	query, args, err := sqlx.Named(raw, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("QueryFoods named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("QueryFoods execution err")
		return nil, err
	}

	foods := make([]entity.Food, 0, len(rows))
	for _, row := range rows {
		foods = append(foods, r.makeFood(row))
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"diet":       filter.DietCategory,
		"meal_type":  filter.MealType,
		"cuisine":    filter.Cuisine,
		"offset":     filter.Offset,
		"random":     filter.Random,
		"rows":       len(foods),
	}).Debug("QueryFoods finished")

	return foods, nil
}

func (r *foodRepository) GetAllFoodNames(c context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)
	var names []string

	if err := r.q.SelectContext(c, &names, queryGetAllFoodNames); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllFoodNames execution err")
		return nil, err
	}

	return names, nil
}

func (r *foodRepository) makeFood(food FoodDB) entity.Food {
	return entity.Food{
		ID:           food.ID.Int64,
		FoodName:     food.FoodName.String,
		Calories:     int(food.Calories.Int64),
		Protein:      food.Protein.Float64,
		Carbs:        food.Carbs.Float64,
		Fats:         food.Fats.Float64,
		Type:         food.Type.String,
		Cuisine:      food.Cuisine.String,
		DietCategory: food.DietCategory.String,
		Description:  food.Description.String,
	}
}
