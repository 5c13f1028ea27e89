package recommend

import (
	"fmt"
	"math"
	"slices"

	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/domain"
)

// Score weights and caps.
const (
	baseScore = 50.0
	minScore  = 1.0
	maxScore  = 99.0

	affinityWeight = 8.0
	affinityCap    = 25.0

	relatedWeight = 5.0
	relatedCap    = 15.0

	favoriteCuisineBonus = 10.0
	adventureMax         = 8.0

	priceExactBonus = 15.0
	priceNearBonus  = 8.0
	priceMissMalus  = -5.0

	vibeBonus = 5.0

	ratingExcellent      = 4.5
	ratingGood           = 4.0
	ratingFair           = 3.5
	ratingExcellentBonus = 10.0
	ratingGoodBonus      = 7.0
	ratingFairBonus      = 3.0
	ratingPoorMalus      = -5.0

	friendWeight = 5.0
	friendCap    = 15.0

	expertBonus = 10.0

	cityWeight = 2.0
	cityCap    = 8.0

	openNowBonus = 3.0

	qualityPriorityBonus = 4.0
	valuePriorityBonus   = 3.0
	valueMaxPriceTier    = 2

	maxFactors = 3
)

var vibeLabels = map[domain.DiningVibe]string{
	domain.VibeCasual:     "a casual meal",
	domain.VibeDateNight:  "date night",
	domain.VibeFineDining: "fine dining",
	domain.VibeQuickBite:  "a quick bite",
	domain.VibeFamily:     "a family outing",
	domain.VibeTrendy:     "a night out somewhere trendy",
}

// Scorer ranks recommendation candidates. It holds only read-only tables and
// is safe for concurrent use.
type Scorer struct {
	tables *cuisine.Tables
}

// NewScorer creates a scorer over the given tables. Nil selects the built-in tables.
func NewScorer(tables *cuisine.Tables) *Scorer {
	if tables == nil {
		tables = cuisine.DefaultTables()
	}
	return &Scorer{tables: tables}
}

// Score rates every candidate from 1 to 99 and returns them best first.
// Equal scores keep input order. Taste may be nil.
func (s *Scorer) Score(candidates []domain.Candidate, model domain.PreferenceModel, taste *domain.TasteProfile) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, s.scoreOne(c, model, taste))
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredCandidate) int {
		return b.ConfidenceScore - a.ConfidenceScore
	})
	return scored
}

// evaluation accumulates score adjustments and the explanations for them.
type evaluation struct {
	score   float64
	factors []string
}

func (e *evaluation) add(points float64, factor string) {
	e.score += points
	if factor != "" {
		e.factors = append(e.factors, factor)
	}
}

func (s *Scorer) scoreOne(c domain.Candidate, model domain.PreferenceModel, taste *domain.TasteProfile) domain.ScoredCandidate {
	e := &evaluation{score: baseScore}

	s.scoreCuisine(e, c, model, taste)
	scorePrice(e, c, model, taste)
	s.scoreVibe(e, c, taste)
	scoreExternalRating(e, c)
	scoreSocial(e, c)
	scoreLocation(e, c, model)
	scorePriority(e, c, taste)

	final := int(math.Round(math.Min(maxScore, math.Max(minScore, e.score))))

	factors := e.factors
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}
	if factors == nil {
		factors = []string{}
	}

	return domain.ScoredCandidate{
		Candidate:       c,
		ConfidenceScore: final,
		MatchFactors:    factors,
	}
}

// scoreCuisine applies direct affinity, related affinity, the favorite
// cuisine bonus, and the adventurousness bonus. Related affinity only counts
// without direct affinity; the adventure bonus only without either.
func (s *Scorer) scoreCuisine(e *evaluation, c domain.Candidate, model domain.PreferenceModel, taste *domain.TasteProfile) {
	name := cuisine.Canonical(c.Cuisine)
	if name == "" {
		return
	}

	affinity := model.CuisineAffinity[name]
	var related float64
	var relatedName string

	if affinity > 0 {
		e.add(math.Min(affinityCap, affinity*affinityWeight), fmt.Sprintf("Matches your taste for %s", name))
	} else {
		for _, r := range s.tables.RelatedTo(name) {
			if a := model.CuisineAffinity[r]; a > related {
				related, relatedName = a, r
			}
		}
		if related > 0 {
			e.add(math.Min(relatedCap, related*relatedWeight), fmt.Sprintf("Similar to %s, which you enjoy", relatedName))
		}
	}

	if taste == nil {
		return
	}

	if cuisine.Canonical(taste.FavoriteCuisine) == name {
		e.add(favoriteCuisineBonus, fmt.Sprintf("%s is your favorite cuisine", name))
	}

	if affinity == 0 && related == 0 {
		weight, ok := taste.Adventurousness.Weight()
		if !ok {
			return
		}
		factor := ""
		if taste.Adventurousness != domain.AdventureComfort {
			factor = fmt.Sprintf("Something new: you haven't tried %s yet", name)
		}
		e.add((1-weight)*adventureMax, factor)
	}
}

// scorePrice compares the candidate's tier with the user's preferred tier,
// or their historical average when no preference is set.
func scorePrice(e *evaluation, c domain.Candidate, model domain.PreferenceModel, taste *domain.TasteProfile) {
	if c.PriceTier == 0 {
		return
	}

	target := model.AveragePriceTier
	if taste != nil && taste.PriceTier > 0 {
		target = float64(taste.PriceTier)
	}
	if target == 0 {
		return
	}

	switch diff := math.Abs(float64(c.PriceTier) - target); {
	case diff < 0.5:
		e.add(priceExactBonus, "Right in your price range")
	case diff <= 1:
		e.add(priceNearBonus, "Close to your usual price range")
	default:
		e.add(priceMissMalus, "")
	}
}

func (s *Scorer) scoreVibe(e *evaluation, c domain.Candidate, taste *domain.TasteProfile) {
	if taste == nil || !s.tables.VibeFits(taste.DiningVibe, c.PriceTier) {
		return
	}
	label, ok := vibeLabels[taste.DiningVibe]
	if !ok {
		label = string(taste.DiningVibe)
	}
	e.add(vibeBonus, "Good fit for "+label)
}

func scoreExternalRating(e *evaluation, c domain.Candidate) {
	if c.ExternalRating == nil {
		return
	}

	r := *c.ExternalRating
	switch {
	case r >= ratingExcellent:
		e.add(ratingExcellentBonus, fmt.Sprintf("Highly rated (%.1f stars)", r))
	case r >= ratingGood:
		e.add(ratingGoodBonus, fmt.Sprintf("Well reviewed (%.1f stars)", r))
	case r >= ratingFair:
		e.add(ratingFairBonus, "")
	default:
		e.add(ratingPoorMalus, "")
	}
}

func scoreSocial(e *evaluation, c domain.Candidate) {
	if c.FriendRatingCount > 0 {
		factor := fmt.Sprintf("%d friends rated it %.1f on average", c.FriendRatingCount, c.FriendAverageRating)
		if c.FriendRatingCount == 1 {
			factor = fmt.Sprintf("A friend rated it %.1f", c.FriendAverageRating)
		}
		e.add(math.Min(friendCap, float64(c.FriendRatingCount)*friendWeight), factor)
	}

	if c.ExpertEndorsed {
		e.add(expertBonus, "Recommended by critics")
	}
}

func scoreLocation(e *evaluation, c domain.Candidate, model domain.PreferenceModel) {
	city := cuisine.CanonicalCity(c.City)
	if count := model.CityFamiliarity[city]; city != "" && count > 0 {
		e.add(math.Min(cityCap, float64(count)*cityWeight), fmt.Sprintf("In %s, where you often eat", city))
	}

	if c.IsOpenNow {
		e.add(openNowBonus, "Open now")
	}
}

func scorePriority(e *evaluation, c domain.Candidate, taste *domain.TasteProfile) {
	if taste == nil {
		return
	}

	switch taste.Priority {
	case domain.PriorityFoodQuality:
		if c.ExternalRating != nil && *c.ExternalRating >= ratingExcellent {
			e.add(qualityPriorityBonus, "Known for its food")
		}
	case domain.PriorityValue:
		if c.PriceTier > 0 && c.PriceTier <= valueMaxPriceTier {
			e.add(valuePriorityBonus, "Great value")
		}
	}
}
