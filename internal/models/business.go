// Package models defines the domain types for the plaza directory.
package models

import "time"

// Weekday keys used in WeeklyHours. The three-letter forms match the
// business JSON files.
const (
	DayMon = "mon"
	DayTue = "tue"
	DayWed = "wed"
	DayThu = "thu"
	DayFri = "fri"
	DaySat = "sat"
	DaySun = "sun"
)

// WeeklyHours maps a weekday key (mon..sun) to a free-text hours string,
// e.g. "8 AM–5:30 PM", "11:30 AM–2:30 PM, 5–9 PM", or "Closed".
// A missing key means hours are unknown for that day.
type WeeklyHours map[string]string

// Promo is a promotion a business is currently running.
type Promo struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// EventItem is a one-off event hosted by a business.
type EventItem struct {
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Business is a single tenant record. Only ID and Name are guaranteed;
// everything else is optional.
type Business struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category,omitempty"`
	Address       string      `json:"address,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Website       string      `json:"website,omitempty"`
	Hours         WeeklyHours `json:"hours,omitempty"`
	Promos        []Promo     `json:"promos,omitempty"`
	Events        []EventItem `json:"events,omitempty"`
	LastScrapedAt *time.Time  `json:"lastScrapedAt,omitempty"`
}

// HasPromo reports whether the business has at least one active promotion.
func (b *Business) HasPromo() bool {
	return len(b.Promos) > 0
}

// Plaza is the shopping-center entity owning the business list.
// In multi-file mode Businesses is empty and BusinessFiles lists the
// per-business JSON files to load and merge.
type Plaza struct {
	PlazaName     string     `json:"plazaName"`
	LastUpdated   string     `json:"lastUpdated,omitempty"`
	Businesses    []Business `json:"businesses,omitempty"`
	BusinessFiles []string   `json:"businessFiles,omitempty"`
}
