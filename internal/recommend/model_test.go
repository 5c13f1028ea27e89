package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platelistapp/platelist-server/internal/domain"
)

func TestBuildPreferenceModel(t *testing.T) {
	items := []domain.RatedItem{
		{ID: "1", Rating: domain.Float(9.0), Cuisine: "Italian", City: "Austin", PriceTier: 2},
		{ID: "2", Rating: domain.Float(7.0), Cuisine: "italian ", City: "austin", PriceTier: 3},
		{ID: "3", Rating: domain.Float(6.0), Cuisine: "Thai", City: "Dallas"},
		{ID: "4", Cuisine: "Sushi", PriceTier: 4},
	}

	model := BuildPreferenceModel(items)

	// 2 visits * mean 8.0 / 10
	assert.InDelta(t, 1.6, model.CuisineAffinity["Italian"], 1e-9)
	assert.InDelta(t, 0.6, model.CuisineAffinity["Thai"], 1e-9)
	// Visited but never rated falls back to a mean of 5.0.
	assert.InDelta(t, 0.5, model.CuisineAffinity["Japanese"], 1e-9)

	assert.Equal(t, map[string]int{"Austin": 2, "Dallas": 1}, model.CityFamiliarity)
	assert.InDelta(t, 3.0, model.AveragePriceTier, 1e-9)
}

func TestBuildPreferenceModel_Empty(t *testing.T) {
	model := BuildPreferenceModel(nil)

	assert.Empty(t, model.CuisineAffinity)
	assert.Empty(t, model.CityFamiliarity)
	assert.InDelta(t, 2.0, model.AveragePriceTier, 1e-9)
	assert.True(t, model.IsEmpty())
}

func TestBuildPreferenceModel_UnknownTiersExcluded(t *testing.T) {
	items := []domain.RatedItem{
		{ID: "1", Rating: domain.Float(5), PriceTier: 4},
		{ID: "2", Rating: domain.Float(5)},
		{ID: "3", Rating: domain.Float(5)},
	}

	assert.InDelta(t, 4.0, BuildPreferenceModel(items).AveragePriceTier, 1e-9)
}
