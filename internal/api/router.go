package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/plazahub/plazadir/internal/directory"
	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/places"
	"github.com/plazahub/plazadir/internal/plaza"
)

// NewRouter creates a chi router with all API routes mounted.
// placesSvc may be nil when live data is disabled.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(plazaSvc *plaza.Service, engine *directory.Engine, eval *hours.Evaluator,
	placesSvc *places.Service, staleAfter time.Duration, sseHandler http.Handler) chi.Router {
	h := NewHandler(plazaSvc, engine, eval, placesSvc, staleAfter, nil)
	return newRouter(h, sseHandler)
}

func newRouter(h *Handler, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Plaza metadata and directory listing.
	r.Get("/plaza", h.GetPlaza)
	r.Get("/businesses", h.ListBusinesses)
	r.Get("/businesses/{id}", h.GetBusiness)
	r.Get("/categories", h.ListCategories)

	// Live place lookups.
	r.Get("/places/search", h.SearchPlaces)
	r.Get("/places/{placeID}", h.GetPlace)

	// Data health.
	r.Get("/health", h.Health)

	// SSE endpoint for reload notifications.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
