package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRating_RatedItem(t *testing.T) {
	r := &Rating{UserID: "u1", RestaurantID: "rest-1", Rating: Float(8.5), ManualRank: Int(2)}

	item := r.RatedItem(&Restaurant{ID: "rest-1", Cuisine: "Thai", City: "Austin", PriceTier: 2})
	assert.Equal(t, "rest-1", item.ID)
	assert.Equal(t, "Thai", item.Cuisine)
	assert.Equal(t, "Austin", item.City)
	assert.Equal(t, 2, item.PriceTier)
	assert.True(t, item.IsRated())
	assert.True(t, item.HasManualRank())
	assert.InDelta(t, 8.5, item.RatingValue(), 1e-9)

	bare := r.RatedItem(nil)
	assert.Empty(t, bare.Cuisine)
	assert.Zero(t, bare.PriceTier)
}

func TestRatedItem_Unrated(t *testing.T) {
	item := RatedItem{ID: "rest-2"}
	assert.False(t, item.IsRated())
	assert.False(t, item.HasManualRank())
	assert.Zero(t, item.RatingValue())
}

func TestRestaurant_Candidate(t *testing.T) {
	r := &Restaurant{
		ID:             "rest-3",
		Name:           "Le Bistro",
		Cuisine:        "French",
		City:           "Austin",
		PriceTier:      4,
		ExternalRating: Float(4.6),
		IsOpenNow:      true,
		ExpertEndorsed: true,
	}

	c := r.Candidate()
	assert.Equal(t, "rest-3", c.ID)
	assert.Equal(t, "Le Bistro", c.Name)
	assert.Equal(t, 4, c.PriceTier)
	assert.True(t, c.IsOpenNow)
	assert.True(t, c.ExpertEndorsed)
	assert.Zero(t, c.FriendRatingCount)
	assert.InDelta(t, 4.6, *c.ExternalRating, 1e-9)
}

func TestAdventurousness_Weight(t *testing.T) {
	tests := []struct {
		level  Adventurousness
		weight float64
		ok     bool
	}{
		{AdventureComfort, 0.9, true},
		{AdventureSometimes, 0.6, true},
		{AdventureAlways, 0.3, true},
		{"", 0, false},
		{"reckless", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			w, ok := tt.level.Weight()
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.weight, w, 1e-9)
		})
	}
}

func TestPreferenceModel_IsEmpty(t *testing.T) {
	assert.True(t, PreferenceModel{}.IsEmpty())
	assert.False(t, PreferenceModel{CityFamiliarity: map[string]int{"Austin": 1}}.IsEmpty())
}
