package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plazahub/plazadir/internal/apperr"
	"github.com/plazahub/plazadir/internal/directory"
	"github.com/plazahub/plazadir/internal/display"
	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/models"
	"github.com/plazahub/plazadir/internal/places"
	"github.com/plazahub/plazadir/internal/plaza"
	"github.com/plazahub/plazadir/internal/storage"
)

const plazaFixture = `{
  "plazaName": "The Village at Lake St. George",
  "lastUpdated": "2025-03-10",
  "businesses": [
    {
      "id": "charlie-coffee",
      "name": "Charlie Coffee",
      "category": "Coffee Shop",
      "address": "100 Village Way",
      "hours": {"mon": "8:00AM-5:00PM", "tue": "8:00AM-5:00PM", "wed": "8:00AM-5:00PM"},
      "promos": [{"label": "Happy hour espresso"}],
      "lastScrapedAt": "2025-03-11T09:00:00Z"
    },
    {
      "id": "bjs-pub",
      "name": "BJ's Pub",
      "category": "Bar",
      "hours": {"wed": "4:00PM-11:00PM"}
    },
    {
      "id": "three-brothers",
      "name": "Three Brothers Pizza",
      "category": "Restaurant",
      "hours": {"wed": "Closed Wednesdays"}
    }
  ]
}`

// Wednesday noon UTC; Charlie Coffee is open, BJ's Pub is not yet.
var testNow = time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

type stubPlaces struct {
	details map[string]*models.PlaceDetails
	results []models.PlaceSummary
	err     error
}

func (s *stubPlaces) Details(_ context.Context, placeID string) (*models.PlaceDetails, error) {
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.details[placeID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

func (s *stubPlaces) Search(_ context.Context, _ string, _ *models.LatLng) ([]models.PlaceSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

// testEnv sets up a temp data dir, plaza service, and router. placesAPI may
// be nil to simulate the disabled live-data mode.
func testEnv(t *testing.T, placesAPI places.API) http.Handler {
	t.Helper()

	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "plaza.json"), []byte(plazaFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	svc := plaza.NewService(store, plaza.DefaultLayout(), nil)
	if err := svc.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	eval := hours.NewEvaluator(time.UTC, false)
	engine := directory.NewEngine(eval)

	var placesSvc *places.Service
	if placesAPI != nil {
		placesSvc = places.NewService(placesAPI, 30*time.Minute, nil)
	}

	// Fixed clock so open-now assertions are deterministic.
	h := NewHandler(svc, engine, eval, placesSvc, 48*time.Hour, func() time.Time { return testNow })
	return newRouter(h, nil)
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListBusinesses(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/businesses")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp BusinessListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.ActiveFilters != 0 {
		t.Errorf("activeFilters = %d, want 0", resp.ActiveFilters)
	}
	// Default sort is by name ascending.
	if resp.Businesses[0].Name != "BJ's Pub" {
		t.Errorf("first = %q, want BJ's Pub", resp.Businesses[0].Name)
	}
	if len(resp.Categories) != 3 {
		t.Errorf("categories = %v", resp.Categories)
	}
}

func TestListBusinesses_Filtered(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/businesses?q=coffee&promo=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp BusinessListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Businesses[0].ID != "charlie-coffee" {
		t.Fatalf("businesses = %+v", resp.Businesses)
	}
	if resp.ActiveFilters != 2 {
		t.Errorf("activeFilters = %d, want 2", resp.ActiveFilters)
	}
}

func TestListBusinesses_OpenNow(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/businesses?open=1")
	var resp BusinessListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Businesses[0].ID != "charlie-coffee" {
		t.Fatalf("open-now at Wednesday noon = %+v", resp.Businesses)
	}
}

func TestGetBusiness(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/businesses/charlie-coffee")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var v display.View
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	if v.Source != display.SourceStatic {
		t.Errorf("source = %q", v.Source)
	}
	if !v.OpenNow {
		t.Error("should be open Wednesday noon")
	}
	if v.Stale {
		t.Error("scraped 27h ago should not be stale at 48h threshold")
	}
	if v.LastRefreshed == "" {
		t.Error("lastRefreshed should be set")
	}
}

func TestGetBusiness_NotFound(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/businesses/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetBusiness_LiveOverlay(t *testing.T) {
	api := &stubPlaces{details: map[string]*models.PlaceDetails{
		"place-1": {
			PlaceID:          "place-1",
			Name:             "Charlie Coffee Roasters",
			FormattedAddress: "100 Village Way, Palm Harbor, FL",
			Rating:           4.7,
			UserRatingsTotal: 212,
		},
	}}
	router := testEnv(t, api)

	w := get(t, router, "/businesses/charlie-coffee?live=1&place_id=place-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var v display.View
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	if v.Source != display.SourceLive {
		t.Errorf("source = %q, want live", v.Source)
	}
	if v.Name != "Charlie Coffee Roasters" {
		t.Errorf("name = %q", v.Name)
	}
	if v.Rating != 4.7 {
		t.Errorf("rating = %v", v.Rating)
	}
}

func TestGetBusiness_LiveFallsBackToStatic(t *testing.T) {
	// Upstream failing must not break the page.
	router := testEnv(t, &stubPlaces{err: apperr.ErrUnavailable})

	w := get(t, router, "/businesses/charlie-coffee?live=1&place_id=place-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var v display.View
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	if v.Source != display.SourceStatic {
		t.Errorf("source = %q, want static fallback", v.Source)
	}
}

func TestGetPlaza(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/plaza")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp PlazaResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.PlazaName != "The Village at Lake St. George" {
		t.Errorf("plazaName = %q", resp.PlazaName)
	}
	if resp.BusinessCount != 3 {
		t.Errorf("businessCount = %d", resp.BusinessCount)
	}
}

func TestListCategories(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/categories")
	var resp CategoriesResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	want := []string{"Bar", "Coffee Shop", "Restaurant"}
	if len(resp.Categories) != len(want) {
		t.Fatalf("categories = %v", resp.Categories)
	}
	for i, c := range want {
		if resp.Categories[i] != c {
			t.Errorf("categories[%d] = %q, want %q", i, resp.Categories[i], c)
		}
	}
}

func TestHealth(t *testing.T) {
	router := testEnv(t, nil)

	w := get(t, router, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var st plaza.HealthStatus
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if !st.OK || st.BusinessCount != 3 {
		t.Errorf("health = %+v", st)
	}
}

func TestSearchPlaces(t *testing.T) {
	api := &stubPlaces{results: []models.PlaceSummary{
		{PlaceID: "place-1", Name: "Charlie Coffee"},
	}}
	router := testEnv(t, api)

	w := get(t, router, "/places/search?q=coffee")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp PlaceSearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Results) != 1 || resp.Results[0].PlaceID != "place-1" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestSearchPlaces_MissingQuery(t *testing.T) {
	router := testEnv(t, &stubPlaces{})

	w := get(t, router, "/places/search")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPlaces_DisabledReturns503(t *testing.T) {
	router := testEnv(t, nil)

	for _, target := range []string{"/places/search?q=coffee", "/places/place-1"} {
		w := get(t, router, target)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", target, w.Code)
		}
	}
}

func TestGetPlace_NotFound(t *testing.T) {
	router := testEnv(t, &stubPlaces{details: map[string]*models.PlaceDetails{}})

	w := get(t, router, "/places/unknown")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
