package api

import (
	"github.com/plazahub/plazadir/internal/models"
)

// BusinessListResponse wraps a filtered directory listing.
type BusinessListResponse struct {
	Businesses    []models.Business `json:"businesses"`
	Total         int               `json:"total"`
	ActiveFilters int               `json:"activeFilters"`
	Categories    []string          `json:"categories"`
}

// CategoriesResponse wraps the category enumeration.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// PlazaResponse is the plaza header without the business payload.
type PlazaResponse struct {
	PlazaName     string `json:"plazaName"`
	LastUpdated   string `json:"lastUpdated,omitempty"`
	BusinessCount int    `json:"businessCount"`
}

// PlaceSearchResponse wraps text-search hits.
type PlaceSearchResponse struct {
	Results []models.PlaceSummary `json:"results"`
}

// PlaceDetailsResponse wraps a single details lookup.
type PlaceDetailsResponse struct {
	Result *models.PlaceDetails `json:"result"`
}
