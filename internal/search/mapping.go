package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for restaurant documents.
//
// Names and cuisines get English stemming so "noodles" finds "Noodle Bar".
// Slugs use the keyword analyzer for exact facet filters.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields ---

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	cuisineFieldMapping := bleve.NewTextFieldMapping()
	cuisineFieldMapping.Analyzer = en.AnalyzerName
	cuisineFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("cuisine", cuisineFieldMapping)

	cityFieldMapping := bleve.NewTextFieldMapping()
	cityFieldMapping.Analyzer = simple.Name
	cityFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("city", cityFieldMapping)

	// Street addresses: no stemming.
	addressFieldMapping := bleve.NewTextFieldMapping()
	addressFieldMapping.Analyzer = simple.Name
	addressFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("address", addressFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	cuisineSlugFieldMapping := bleve.NewTextFieldMapping()
	cuisineSlugFieldMapping.Analyzer = keyword.Name
	cuisineSlugFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("cuisine_slug", cuisineSlugFieldMapping)

	citySlugFieldMapping := bleve.NewTextFieldMapping()
	citySlugFieldMapping.Analyzer = keyword.Name
	citySlugFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("city_slug", citySlugFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	priceFieldMapping := bleve.NewNumericFieldMapping()
	priceFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("price_tier", priceFieldMapping)

	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("external_rating", ratingFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
