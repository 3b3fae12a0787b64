// Package api implements the plaza directory REST API using chi.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/plazahub/plazadir/internal/apperr"
	"github.com/plazahub/plazadir/internal/directory"
	"github.com/plazahub/plazadir/internal/display"
	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/models"
	"github.com/plazahub/plazadir/internal/places"
	"github.com/plazahub/plazadir/internal/plaza"
)

// Handler holds API route handlers and their collaborators.
type Handler struct {
	plaza      *plaza.Service
	engine     *directory.Engine
	eval       *hours.Evaluator
	places     *places.Service
	staleAfter time.Duration
	now        func() time.Time
}

// NewHandler creates a new Handler. placesSvc may be nil when live data is
// disabled. now may be nil; tests inject a fixed clock.
func NewHandler(plazaSvc *plaza.Service, engine *directory.Engine, eval *hours.Evaluator,
	placesSvc *places.Service, staleAfter time.Duration, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		plaza:      plazaSvc,
		engine:     engine,
		eval:       eval,
		places:     placesSvc,
		staleAfter: staleAfter,
		now:        now,
	}
}

// criteriaFromQuery parses filter/sort criteria from URL query parameters.
func criteriaFromQuery(r *http.Request) directory.Criteria {
	q := r.URL.Query()
	open, _ := strconv.ParseBool(q.Get("open"))
	promo, _ := strconv.ParseBool(q.Get("promo"))
	return directory.Criteria{
		Query:      q.Get("q"),
		Category:   q.Get("category"),
		OpenNow:    open,
		HasPromo:   promo,
		Sort:       directory.SortKey(q.Get("sort")),
		Descending: q.Get("order") == "desc",
	}
}

// ListBusinesses handles GET /businesses with filter/sort query params
// (q, category, open, promo, sort, order).
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	all, err := h.plaza.Businesses()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("plaza data not loaded"))
		return
	}

	criteria := criteriaFromQuery(r)
	filtered := h.engine.Apply(all, criteria, h.now())

	writeJSON(w, http.StatusOK, BusinessListResponse{
		Businesses:    filtered,
		Total:         len(filtered),
		ActiveFilters: criteria.ActiveFilterCount(),
		Categories:    directory.Categories(all),
	})
}

// GetBusiness handles GET /businesses/{id}. With ?live=1 the static record
// is overlaid with cached place details when the business carries a place
// ID and the places service can deliver; failures silently fall back to
// the static view.
func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := h.plaza.BusinessByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("plaza data not loaded"))
		}
		return
	}

	now := h.now()
	live, _ := strconv.ParseBool(r.URL.Query().Get("live"))
	if live {
		if d := h.liveDetails(r, b); d != nil {
			writeJSON(w, http.StatusOK, display.FromLive(b, d, h.eval, h.staleAfter, now))
			return
		}
	}
	writeJSON(w, http.StatusOK, display.FromStatic(b, h.eval, h.staleAfter, now))
}

// liveDetails resolves live place details for a business, returning nil on
// any failure so the caller can fall back to static data.
func (h *Handler) liveDetails(r *http.Request, b *models.Business) *models.PlaceDetails {
	placeID := r.URL.Query().Get("place_id")
	if placeID == "" || !h.places.Enabled() {
		return nil
	}
	d, err := h.places.Details(r.Context(), placeID)
	if err != nil {
		slog.Debug("live details unavailable",
			slog.String("business", b.ID),
			slog.String("error", err.Error()))
		return nil
	}
	return d
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	all, err := h.plaza.Businesses()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("plaza data not loaded"))
		return
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: directory.Categories(all)})
}

// GetPlaza handles GET /plaza.
func (h *Handler) GetPlaza(w http.ResponseWriter, _ *http.Request) {
	p, err := h.plaza.Plaza()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("plaza data not loaded"))
		return
	}
	writeJSON(w, http.StatusOK, PlazaResponse{
		PlazaName:     p.PlazaName,
		LastUpdated:   p.LastUpdated,
		BusinessCount: len(p.Businesses),
	})
}

// Health handles GET /health: whether plaza data is loadable, the business
// count, and a timestamp.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	st := h.plaza.Health()
	status := http.StatusOK
	if !st.OK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, st)
}

// SearchPlaces handles GET /places/search?q=&lat=&lng=.
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	if !h.places.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("live data unavailable"))
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}

	var loc *models.LatLng
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr == nil && lngErr == nil {
		loc = &models.LatLng{Lat: lat, Lng: lng}
	}

	results, err := h.places.Search(r.Context(), q, loc)
	if err != nil {
		slog.Error("place search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, errorBody("live data unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, PlaceSearchResponse{Results: results})
}

// GetPlace handles GET /places/{placeID}.
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	if !h.places.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("live data unavailable"))
		return
	}
	placeID := chi.URLParam(r, "placeID")
	d, err := h.places.Details(r.Context(), placeID)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("place not found"))
		default:
			slog.Error("place details failed", slog.String("place_id", placeID), slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, errorBody("live data unavailable"))
		}
		return
	}
	writeJSON(w, http.StatusOK, PlaceDetailsResponse{Result: d})
}
