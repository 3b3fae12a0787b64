// Package display projects static and live business records onto a single
// display model. The tagged Source replaces ad-hoc field-presence checks:
// a view is either built entirely from the static record or from the
// static record overlaid with live place details.
package display

import (
	"time"

	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/models"
	"github.com/plazahub/plazadir/internal/places"
)

// Source tags which variant produced a View.
type Source string

const (
	SourceStatic Source = "static"
	SourceLive   Source = "live"
)

// View is the single display-model type for a business, regardless of
// where its fields came from.
type View struct {
	Source         Source             `json:"source"`
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Category       string             `json:"category,omitempty"`
	Address        string             `json:"address,omitempty"`
	Phone          string             `json:"phone,omitempty"`
	Website        string             `json:"website,omitempty"`
	MapsURL        string             `json:"mapsUrl,omitempty"`
	Hours          models.WeeklyHours `json:"hours,omitempty"`
	TodaysSchedule string             `json:"todaysSchedule,omitempty"`
	OpenNow        bool               `json:"openNow"`
	Promos         []models.Promo     `json:"promos,omitempty"`
	Events         []models.EventItem `json:"events,omitempty"`
	Rating         float64            `json:"rating,omitempty"`
	RatingCount    int                `json:"ratingCount,omitempty"`
	Stale          bool               `json:"stale"`
	LastRefreshed  string             `json:"lastRefreshed,omitempty"`
}

// FromStatic builds a View from the static record alone.
func FromStatic(b *models.Business, eval *hours.Evaluator, staleAfter time.Duration, now time.Time) View {
	v := View{
		Source:   SourceStatic,
		ID:       b.ID,
		Name:     b.Name,
		Category: b.Category,
		Address:  b.Address,
		Phone:    b.Phone,
		Website:  b.Website,
		Hours:    b.Hours,
		Promos:   b.Promos,
		Events:   b.Events,
		Stale:    hours.IsStale(b.LastScrapedAt, now, staleAfter),
	}
	if text, ok := eval.TodaysSchedule(b.Hours, now); ok {
		v.TodaysSchedule = text
	}
	v.OpenNow = eval.IsOpenNow(b.Hours, now)
	if b.LastScrapedAt != nil {
		v.LastRefreshed = hours.RelativeTime(*b.LastScrapedAt, now)
	}
	return v
}

// FromLive builds a View from the static record overlaid with live place
// details. Live fields win where present; static fields fill the gaps.
// Open-now comes from the live hours when the API supplies them.
func FromLive(b *models.Business, d *models.PlaceDetails, eval *hours.Evaluator, staleAfter time.Duration, now time.Time) View {
	v := FromStatic(b, eval, staleAfter, now)
	v.Source = SourceLive
	v.Stale = false
	v.LastRefreshed = ""

	if d.Name != "" {
		v.Name = d.Name
	}
	if d.FormattedAddress != "" {
		v.Address = d.FormattedAddress
	}
	if d.PhoneNumber != "" {
		v.Phone = d.PhoneNumber
	}
	if d.Website != "" {
		v.Website = d.Website
	}
	v.MapsURL = d.MapsURL
	v.Rating = d.Rating
	v.RatingCount = d.UserRatingsTotal

	if liveHours := places.WeeklyHoursFromPlace(d); liveHours != nil {
		v.Hours = liveHours
		if text, ok := eval.TodaysSchedule(liveHours, now); ok {
			v.TodaysSchedule = text
		}
		v.OpenNow = eval.IsOpenNow(liveHours, now)
	}
	return v
}
