package session

import (
	"time"

	"HealthifyChat/pkg/nlp"
)

type ExerciseTopic string

const (
	TopicNone       ExerciseTopic = ""
	TopicWeightLoss ExerciseTopic = "weight_loss"
	TopicWeightGain ExerciseTopic = "weight_gain"
)

// RecommendationSnapshot is the filter set behind the last recommendation
// page. Offset is the offset of the next page.
type RecommendationSnapshot struct {
	Cuisine      string   `json:"cuisine,omitempty"`
	DietCategory string   `json:"diet_category,omitempty"`
	MaxCalories  *int     `json:"max_calories,omitempty"`
	MinProtein   *float64 `json:"min_protein,omitempty"`
	MealType     string   `json:"meal_type,omitempty"`
	Offset       int      `json:"offset"`
	OrderBy      string   `json:"order_by,omitempty"`
	Stage        string   `json:"stage,omitempty"`
}

// HasFilter reports whether at least one filter dimension is set.
func (s RecommendationSnapshot) HasFilter() bool {
	return s.Cuisine != "" || s.DietCategory != "" || s.MealType != "" ||
		s.MaxCalories != nil || s.MinProtein != nil
}

func (s *RecommendationSnapshot) Clone() *RecommendationSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.MaxCalories != nil {
		v := *s.MaxCalories
		c.MaxCalories = &v
	}
	if s.MinProtein != nil {
		v := *s.MinProtein
		c.MinProtein = &v
	}
	return &c
}

type HistoryEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Intent    nlp.Intent    `json:"intent"`
	Entities  nlp.EntityBag `json:"entities"`
}

type Context struct {
	SessionID          string                  `json:"session_id"`
	LastIntent         nlp.Intent              `json:"last_intent,omitempty"`
	LastEntities       nlp.EntityBag           `json:"last_entities"`
	LastRecommendation *RecommendationSnapshot `json:"last_recommendation,omitempty"`
	LastExerciseTopic  ExerciseTopic           `json:"last_exercise_topic,omitempty"`
	LastFood           string                  `json:"last_food,omitempty"`
	History            []HistoryEntry          `json:"history"`
	CreatedAt          time.Time               `json:"created_at"`
	LastActivity       time.Time               `json:"last_activity"`
}

func newContext(id string, now time.Time) *Context {
	return &Context{
		SessionID:    id,
		LastEntities: nlp.NewEntityBag(),
		History:      []HistoryEntry{},
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (c *Context) clone() *Context {
	out := *c
	out.LastEntities = c.LastEntities.Clone()
	out.LastRecommendation = c.LastRecommendation.Clone()
	out.History = make([]HistoryEntry, len(c.History))
	for i, h := range c.History {
		out.History[i] = HistoryEntry{
			Timestamp: h.Timestamp,
			Intent:    h.Intent,
			Entities:  h.Entities.Clone(),
		}
	}
	return &out
}

// HasContext reports whether any turn has been saved.
func (c Context) HasContext() bool {
	return c.LastIntent != ""
}

func (c Context) Duration(now time.Time) time.Duration {
	return now.Sub(c.CreatedAt)
}

// RecentHistory returns up to n of the newest entries, oldest first.
func (c Context) RecentHistory(n int) []HistoryEntry {
	if n <= 0 || n >= len(c.History) {
		return append([]HistoryEntry{}, c.History...)
	}
	return append([]HistoryEntry{}, c.History[len(c.History)-n:]...)
}

// Patch sets the side fields a turn may attach. Nil fields are left as they
// are. ClearRecommendation drops the snapshot unless Recommendation is set.
type Patch struct {
	Recommendation      *RecommendationSnapshot
	ClearRecommendation bool
	ExerciseTopic       *ExerciseTopic
	Food                *string
}

func (p Patch) apply(c *Context) {
	if p.ClearRecommendation {
		c.LastRecommendation = nil
	}
	if p.Recommendation != nil {
		c.LastRecommendation = p.Recommendation.Clone()
	}
	if p.ExerciseTopic != nil {
		c.LastExerciseTopic = *p.ExerciseTopic
	}
	if p.Food != nil {
		c.LastFood = *p.Food
	}
}
