// Package recommend scores candidate restaurants against a user's dining
// history and explains each score in a few short phrases.
package recommend

import (
	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/domain"
)

// Defaults used when the history carries no signal.
const (
	defaultPriceTier   = 2.0
	defaultMeanRating  = 5.0
	ratingScaleDivisor = 10.0
)

type cuisineStats struct {
	count   int
	ratings []float64
}

// BuildPreferenceModel derives cuisine affinity, city familiarity, and the
// average price tier from a user's rated items in a single pass.
//
// Affinity for a cuisine is visit count scaled by its mean rating out of 10.
// A cuisine visited but never rated is treated as a mean of 5.0 so frequent
// visits still count. Unknown price tiers are excluded from the mean.
func BuildPreferenceModel(items []domain.RatedItem) domain.PreferenceModel {
	model := domain.PreferenceModel{
		CuisineAffinity:  make(map[string]float64),
		CityFamiliarity:  make(map[string]int),
		AveragePriceTier: defaultPriceTier,
	}

	stats := make(map[string]*cuisineStats)
	var tierSum, tierCount int

	for _, item := range items {
		if name := cuisine.Canonical(item.Cuisine); name != "" {
			s, ok := stats[name]
			if !ok {
				s = &cuisineStats{}
				stats[name] = s
			}
			s.count++
			if item.Rating != nil {
				s.ratings = append(s.ratings, *item.Rating)
			}
		}

		if city := cuisine.CanonicalCity(item.City); city != "" {
			model.CityFamiliarity[city]++
		}

		if item.PriceTier > 0 {
			tierSum += item.PriceTier
			tierCount++
		}
	}

	for name, s := range stats {
		model.CuisineAffinity[name] = float64(s.count) * (mean(s.ratings) / ratingScaleDivisor)
	}
	if tierCount > 0 {
		model.AveragePriceTier = float64(tierSum) / float64(tierCount)
	}

	return model
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return defaultMeanRating
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
