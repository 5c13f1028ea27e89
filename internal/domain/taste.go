package domain

import "time"

// Adventurousness describes how willing a user is to try unfamiliar cuisines.
type Adventurousness string

// Adventurousness levels.
const (
	AdventureComfort   Adventurousness = "comfort"
	AdventureSometimes Adventurousness = "sometimes"
	AdventureAlways    Adventurousness = "always"
)

// Weight returns how strongly the user sticks to the familiar.
// Lower weight means a bigger bonus for unexplored cuisines.
func (a Adventurousness) Weight() (float64, bool) {
	switch a {
	case AdventureComfort:
		return 0.9, true
	case AdventureSometimes:
		return 0.6, true
	case AdventureAlways:
		return 0.3, true
	default:
		return 0, false
	}
}

// DiningVibe is the kind of outing the user usually looks for.
type DiningVibe string

// Dining vibes.
const (
	VibeCasual     DiningVibe = "casual"
	VibeDateNight  DiningVibe = "date_night"
	VibeFineDining DiningVibe = "fine_dining"
	VibeQuickBite  DiningVibe = "quick_bite"
	VibeFamily     DiningVibe = "family"
	VibeTrendy     DiningVibe = "trendy"
)

// Priority is the thing the user cares most about in a meal.
type Priority string

// Priorities.
const (
	PriorityFoodQuality Priority = "food_quality"
	PriorityValue       Priority = "value"
	PriorityAmbiance    Priority = "ambiance"
	PriorityService     Priority = "service"
)

// Dietary is a dietary restriction.
type Dietary string

// Dietary restrictions.
const (
	DietaryNone       Dietary = "none"
	DietaryVegetarian Dietary = "vegetarian"
	DietaryVegan      Dietary = "vegan"
	DietaryGlutenFree Dietary = "gluten_free"
	DietaryHalal      Dietary = "halal"
	DietaryKosher     Dietary = "kosher"
)

// TasteProfile holds the answers a user gave to the onboarding questionnaire.
// Every field is optional; zero values mean "no preference".
type TasteProfile struct {
	UpdatedAt       time.Time       `json:"updated_at,omitzero"`
	UserID          string          `json:"user_id,omitempty"`
	FavoriteCuisine string          `json:"favorite_cuisine,omitempty"`
	Adventurousness Adventurousness `json:"adventurousness,omitempty"`
	DiningVibe      DiningVibe      `json:"dining_vibe,omitempty"`
	Priority        Priority        `json:"priority,omitempty"`
	Dietary         Dietary         `json:"dietary,omitempty"`
	PriceTier       int             `json:"price_tier,omitempty"` // 1-4, 0 for no preference
	PartySize       int             `json:"party_size,omitempty"`
}
