// Package places fetches enriched business details from a third-party
// places API and caches them briefly in memory. Static data is the source
// of truth; everything here is an optional overlay.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/plazahub/plazadir/internal/apperr"
	"github.com/plazahub/plazadir/internal/models"
)

// detailFields is the field list requested from the details endpoint.
// Keeping it explicit keeps the response (and the bill) small.
const detailFields = "place_id,name,formatted_address,formatted_phone_number," +
	"website,url,rating,user_ratings_total,price_level,business_status," +
	"opening_hours,geometry,types"

// Client is a thin HTTP client for a Google-Places-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "https://maps.googleapis.com/maps/api/place").
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// detailsEnvelope is the wire shape of a details response.
type detailsEnvelope struct {
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Result       *models.PlaceDetails `json:"result,omitempty"`
}

// searchEnvelope is the wire shape of a text-search response.
type searchEnvelope struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []models.PlaceSummary `json:"results"`
}

// Details fetches the enriched record for placeID. A missing place maps to
// apperr.ErrNotFound; any other upstream problem maps to apperr.ErrUnavailable
// so callers fall back to static data.
func (c *Client) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("key", c.apiKey)

	var env detailsEnvelope
	if err := c.get(ctx, "/details/json", q, &env); err != nil {
		return nil, err
	}

	switch env.Status {
	case "OK":
		if env.Result == nil {
			return nil, fmt.Errorf("%w: empty result", apperr.ErrUnavailable)
		}
		return env.Result, nil
	case "ZERO_RESULTS", "NOT_FOUND", "INVALID_REQUEST":
		return nil, fmt.Errorf("place %q: %w", placeID, apperr.ErrNotFound)
	default:
		return nil, fmt.Errorf("%w: %s %s", apperr.ErrUnavailable, env.Status, env.ErrorMessage)
	}
}

// Search runs a free-text search, optionally biased to a location. Results
// carry place IDs usable with Details.
func (c *Client) Search(ctx context.Context, query string, location *models.LatLng) ([]models.PlaceSummary, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.apiKey)
	if location != nil {
		q.Set("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
		q.Set("radius", "1000")
	}

	var env searchEnvelope
	if err := c.get(ctx, "/textsearch/json", q, &env); err != nil {
		return nil, err
	}

	switch env.Status {
	case "OK":
		return env.Results, nil
	case "ZERO_RESULTS":
		return []models.PlaceSummary{}, nil
	default:
		return nil, fmt.Errorf("%w: %s %s", apperr.ErrUnavailable, env.Status, env.ErrorMessage)
	}
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", apperr.ErrUnavailable, res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", apperr.ErrUnavailable, err)
	}
	return nil
}
