package places

import (
	"context"
	"log/slog"
	"time"

	"github.com/plazahub/plazadir/internal/apperr"
	"github.com/plazahub/plazadir/internal/models"
)

// API is the lookup surface the rest of the service depends on.
type API interface {
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
	Search(ctx context.Context, query string, location *models.LatLng) ([]models.PlaceSummary, error)
}

// Service wraps the API client with the details cache. A nil Service (no
// API key configured) is valid and reports itself disabled.
type Service struct {
	api    API
	cache  *Cache
	logger *slog.Logger
}

// NewService creates a cache-through places service.
func NewService(api API, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		cache:  NewCache(ttl, nil),
		logger: logger,
	}
}

// Enabled reports whether live data can be served at all.
func (s *Service) Enabled() bool {
	return s != nil && s.api != nil
}

// Details returns place details, serving from the cache when fresh.
// When disabled it returns apperr.ErrUnavailable without touching the
// network.
func (s *Service) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if !s.Enabled() {
		return nil, apperr.ErrUnavailable
	}
	if d, ok := s.cache.Get(placeID); ok {
		return d, nil
	}

	d, err := s.api.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(placeID, d)
	return d, nil
}

// Search passes a free-text search through to the API. Results are not
// cached; only per-place details are.
func (s *Service) Search(ctx context.Context, query string, location *models.LatLng) ([]models.PlaceSummary, error) {
	if !s.Enabled() {
		return nil, apperr.ErrUnavailable
	}
	return s.api.Search(ctx, query, location)
}
