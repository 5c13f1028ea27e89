package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/platelistapp/platelist-server/internal/cuisine"
)

// SearchParams configures a restaurant search.
type SearchParams struct {
	Query string // Free text matched against name and cuisine

	// Filters
	Cuisine           string  // Exact cuisine, canonicalized before matching
	City              string  // Exact city
	MinPriceTier      int     // 0 = no lower bound
	MaxPriceTier      int     // 0 = no upper bound
	MinExternalRating float64 // 0 = no lower bound

	// Pagination
	Limit  int
	Offset int

	// Sorting: "relevance" (default), "name", "rating", "recent".
	SortBy string

	IncludeFacets bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		SortBy:        "relevance",
		IncludeFacets: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitzero"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	Highlights     map[string]string `json:"highlights,omitempty"`
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Cuisine        string            `json:"cuisine,omitempty"`
	City           string            `json:"city,omitempty"`
	Score          float64           `json:"score"`
	ExternalRating float64           `json:"external_rating,omitempty"`
	PriceTier      int               `json:"price_tier,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Cuisines []FacetCount `json:"cuisines,omitempty"`
	Cities   []FacetCount `json:"cities,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	if params.IncludeFacets {
		searchRequest.AddFacet("cuisine_slug", bleve.NewFacetRequest("cuisine_slug", 20))
		searchRequest.AddFacet("city_slug", bleve.NewFacetRequest("city_slug", 20))
	}

	if params.Query != "" {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
	}

	searchRequest.Fields = []string{"name", "cuisine", "city", "price_tier", "external_rating"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if c, ok := hit.Fields["cuisine"].(string); ok {
			searchHit.Cuisine = c
		}
		if c, ok := hit.Fields["city"].(string); ok {
			searchHit.City = c
		}
		if p, ok := hit.Fields["price_tier"].(float64); ok {
			searchHit.PriceTier = int(p)
		}
		if r, ok := hit.Fields["external_rating"].(float64); ok {
			searchHit.ExternalRating = r
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// IDs returns the hit IDs in rank order.
func (r *SearchResult) IDs() []string {
	ids := make([]string, len(r.Hits))
	for i, h := range r.Hits {
		ids[i] = h.ID
	}
	return ids
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if params.Query != "" {
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)

		cuisineMatch := bleve.NewMatchQuery(params.Query)
		cuisineMatch.SetField("cuisine")
		cuisineMatch.SetBoost(1.5)

		// Typo tolerance on name.
		fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(params.Query))
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)

		textQueries := []query.Query{nameMatch, cuisineMatch, fuzzyQuery}

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Cuisine != "" {
		cq := bleve.NewTermQuery(cuisine.Slugify(cuisine.Canonical(params.Cuisine)))
		cq.SetField("cuisine_slug")
		queries = append(queries, cq)
	}

	if params.City != "" {
		cq := bleve.NewTermQuery(cuisine.Slugify(params.City))
		cq.SetField("city_slug")
		queries = append(queries, cq)
	}

	if params.MinPriceTier > 0 || params.MaxPriceTier > 0 {
		lo := float64(max(params.MinPriceTier, 1))
		hi := float64(4)
		if params.MaxPriceTier > 0 {
			hi = float64(params.MaxPriceTier)
		}
		inclusive := true
		rangeQuery := bleve.NewNumericRangeInclusiveQuery(&lo, &hi, &inclusive, &inclusive)
		rangeQuery.SetField("price_tier")
		queries = append(queries, rangeQuery)
	}

	if params.MinExternalRating > 0 {
		lo := params.MinExternalRating
		inclusive := true
		rangeQuery := bleve.NewNumericRangeInclusiveQuery(&lo, nil, &inclusive, nil)
		rangeQuery.SetField("external_rating")
		queries = append(queries, rangeQuery)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "name":
		req.SortBy([]string{"name", "_id"})
	case "rating":
		req.SortBy([]string{"-external_rating", "-_score"})
	case "recent":
		req.SortBy([]string{"-created_at"})
	default:
		req.SortBy([]string{"-_score", "_id"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if cuisineFacet, ok := result.Facets["cuisine_slug"]; ok && cuisineFacet.Terms != nil {
		for _, term := range cuisineFacet.Terms.Terms() {
			facets.Cuisines = append(facets.Cuisines, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	if cityFacet, ok := result.Facets["city_slug"]; ok && cityFacet.Terms != nil {
		for _, term := range cityFacet.Terms.Terms() {
			facets.Cities = append(facets.Cities, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	return facets
}
