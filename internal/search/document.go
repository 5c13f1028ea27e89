// Package search provides restaurant discovery using Bleve: full-text search
// on names and cuisines with fuzzy matching, cuisine and city facets, and
// price and rating range filters.
package search

import (
	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/domain"
)

// RestaurantDocument is the structure indexed for each restaurant.
type RestaurantDocument struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`

	// Cuisine is analyzed for text search; CuisineSlug is an exact-match facet.
	Cuisine     string `json:"cuisine,omitempty"`
	CuisineSlug string `json:"cuisine_slug,omitempty"`

	City     string `json:"city,omitempty"`
	CitySlug string `json:"city_slug,omitempty"`

	PriceTier      int     `json:"price_tier,omitempty"`
	ExternalRating float64 `json:"external_rating,omitempty"`

	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with the field names used by the mapping.
func (d *RestaurantDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"name":       d.Name,
		"price_tier": d.PriceTier,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Address != "" {
		m["address"] = d.Address
	}
	if d.Cuisine != "" {
		m["cuisine"] = d.Cuisine
		m["cuisine_slug"] = d.CuisineSlug
	}
	if d.City != "" {
		m["city"] = d.City
		m["city_slug"] = d.CitySlug
	}
	if d.ExternalRating > 0 {
		m["external_rating"] = d.ExternalRating
	}

	return m
}

// RestaurantToDocument converts a restaurant to its search document.
func RestaurantToDocument(r *domain.Restaurant) *RestaurantDocument {
	doc := &RestaurantDocument{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Cuisine:     r.Cuisine,
		CuisineSlug: cuisine.Slugify(cuisine.Canonical(r.Cuisine)),
		City:        r.City,
		CitySlug:    cuisine.Slugify(r.City),
		PriceTier:   r.PriceTier,
		CreatedAt:   r.CreatedAt.UnixMilli(),
		UpdatedAt:   r.UpdatedAt.UnixMilli(),
	}
	if r.ExternalRating != nil {
		doc.ExternalRating = *r.ExternalRating
	}
	return doc
}
