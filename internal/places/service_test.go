package places

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plazahub/plazadir/internal/apperr"
	"github.com/plazahub/plazadir/internal/models"
)

// stubAPI counts calls and returns canned responses.
type stubAPI struct {
	detailCalls int
	details     *models.PlaceDetails
	err         error
}

func (s *stubAPI) Details(_ context.Context, _ string) (*models.PlaceDetails, error) {
	s.detailCalls++
	return s.details, s.err
}

func (s *stubAPI) Search(_ context.Context, _ string, _ *models.LatLng) ([]models.PlaceSummary, error) {
	return nil, s.err
}

func TestService_DetailsCachesResult(t *testing.T) {
	api := &stubAPI{details: &models.PlaceDetails{PlaceID: "p1", Name: "X"}}
	svc := NewService(api, 30*time.Minute, nil)

	for i := 0; i < 3; i++ {
		d, err := svc.Details(context.Background(), "p1")
		if err != nil || d.Name != "X" {
			t.Fatalf("Details #%d = %+v, %v", i, d, err)
		}
	}
	if api.detailCalls != 1 {
		t.Errorf("API called %d times, want 1 (cache-through)", api.detailCalls)
	}
}

func TestService_ErrorsAreNotCached(t *testing.T) {
	api := &stubAPI{err: apperr.ErrUnavailable}
	svc := NewService(api, 30*time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Details(context.Background(), "p1"); !errors.Is(err, apperr.ErrUnavailable) {
			t.Fatalf("error = %v", err)
		}
	}
	if api.detailCalls != 2 {
		t.Errorf("API called %d times, want 2 (failures never cached)", api.detailCalls)
	}
}

func TestService_DisabledIsUnavailable(t *testing.T) {
	var svc *Service
	if svc.Enabled() {
		t.Error("nil service should be disabled")
	}
	if _, err := svc.Details(context.Background(), "p1"); !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
	if _, err := svc.Search(context.Background(), "q", nil); !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestWeeklyHoursFromPlace(t *testing.T) {
	d := &models.PlaceDetails{
		OpeningHours: &models.OpeningHours{
			WeekdayText: []string{
				"Monday: 9:00 AM – 5:00 PM",
				"Tuesday: 9:00 AM – 5:00 PM",
				"Wednesday: 9:00 AM – 5:00 PM",
				"Thursday: 9:00 AM – 5:00 PM",
				"Friday: 9:00 AM – 5:00 PM",
				"Saturday: Closed",
				"Sunday: Closed",
			},
		},
	}
	h := WeeklyHoursFromPlace(d)
	if h[models.DayMon] != "9:00 AM – 5:00 PM" {
		t.Errorf("mon = %q", h[models.DayMon])
	}
	if h[models.DaySat] != "Closed" || h[models.DaySun] != "Closed" {
		t.Errorf("weekend = %q / %q", h[models.DaySat], h[models.DaySun])
	}

	if WeeklyHoursFromPlace(nil) != nil {
		t.Error("nil details should give nil hours")
	}
	if WeeklyHoursFromPlace(&models.PlaceDetails{}) != nil {
		t.Error("details without hours should give nil")
	}
}
