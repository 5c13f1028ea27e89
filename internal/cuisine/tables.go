package cuisine

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/platelistapp/platelist-server/internal/domain"
)

// Tables holds the static lookup tables the recommender scores against.
// Keys are canonical names; use Canonical before looking anything up.
type Tables struct {
	// Related lists cuisines considered similar to each cuisine.
	Related map[string][]string `yaml:"related"`
	// VibeTiers lists the price tiers that suit each dining vibe.
	VibeTiers map[domain.DiningVibe][]int `yaml:"vibe_tiers"`
}

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	return &Tables{
		Related: map[string][]string{
			"Italian":        {"Mediterranean", "French", "Spanish"},
			"French":         {"Italian", "Mediterranean", "Spanish"},
			"Spanish":        {"Mediterranean", "Italian", "Mexican"},
			"Mediterranean":  {"Greek", "Middle Eastern", "Italian", "Spanish"},
			"Greek":          {"Mediterranean", "Middle Eastern"},
			"Middle Eastern": {"Mediterranean", "Greek", "Indian"},
			"Indian":         {"Middle Eastern", "Thai", "Nepalese"},
			"Nepalese":       {"Indian"},
			"Japanese":       {"Korean", "Chinese", "Seafood"},
			"Korean":         {"Japanese", "Chinese"},
			"Chinese":        {"Japanese", "Korean", "Vietnamese", "Thai"},
			"Thai":           {"Vietnamese", "Chinese", "Indian"},
			"Vietnamese":     {"Thai", "Chinese"},
			"Mexican":        {"Latin American", "Spanish", "Barbecue"},
			"Latin American": {"Mexican", "Spanish"},
			"American":       {"Barbecue", "Steakhouse"},
			"Barbecue":       {"American", "Steakhouse", "Korean"},
			"Steakhouse":     {"American", "Barbecue"},
			"Seafood":        {"Japanese", "Mediterranean"},
			"Vegetarian":     {"Indian", "Mediterranean"},
		},
		VibeTiers: map[domain.DiningVibe][]int{
			domain.VibeCasual:     {1, 2},
			domain.VibeDateNight:  {2, 3, 4},
			domain.VibeFineDining: {3, 4},
			domain.VibeQuickBite:  {1},
			domain.VibeFamily:     {1, 2},
			domain.VibeTrendy:     {2, 3},
		},
	}
}

// LoadTables reads table overrides from a YAML file and merges them over the defaults.
// Entries present in the file replace the built-in entry for that key.
// An empty path returns the defaults.
func LoadTables(path string) (*Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse tables file %s: %w", path, err)
	}

	for name, related := range overrides.Related {
		canonical := make([]string, 0, len(related))
		for _, r := range related {
			if c := Canonical(r); c != "" {
				canonical = append(canonical, c)
			}
		}
		tables.Related[Canonical(name)] = canonical
	}
	for vibe, tiers := range overrides.VibeTiers {
		for _, tier := range tiers {
			if tier < 1 || tier > 4 {
				return nil, fmt.Errorf("vibe %q: price tier %d out of range 1-4", vibe, tier)
			}
		}
		tables.VibeTiers[vibe] = tiers
	}

	return tables, nil
}

// RelatedTo returns the cuisines similar to name.
func (t *Tables) RelatedTo(name string) []string {
	return t.Related[Canonical(name)]
}

// VibeFits reports whether a price tier suits the dining vibe.
func (t *Tables) VibeFits(vibe domain.DiningVibe, tier int) bool {
	if vibe == "" || tier == 0 {
		return false
	}
	return slices.Contains(t.VibeTiers[vibe], tier)
}
