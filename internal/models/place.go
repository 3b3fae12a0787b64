package models

// OpeningHours is the hours block returned by the places API.
// WeekdayText is Monday-first, one line per day, e.g.
// "Monday: 9:00 AM – 5:00 PM".
type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry holds the location of a place.
type Geometry struct {
	Location LatLng `json:"location"`
}

// PlaceDetails is the enriched record fetched from the places API for a
// single business. The field set is the subset the directory actually
// displays; the upstream response carries far more.
type PlaceDetails struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	PhoneNumber      string        `json:"formatted_phone_number,omitempty"`
	Website          string        `json:"website,omitempty"`
	MapsURL          string        `json:"url,omitempty"`
	Rating           float64       `json:"rating,omitempty"`
	UserRatingsTotal int           `json:"user_ratings_total,omitempty"`
	PriceLevel       int           `json:"price_level,omitempty"`
	BusinessStatus   string        `json:"business_status,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Geometry         *Geometry     `json:"geometry,omitempty"`
	Types            []string      `json:"types,omitempty"`
}

// PlaceSummary is a single text-search hit carrying the identifier usable
// for a subsequent details lookup.
type PlaceSummary struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Rating           float64   `json:"rating,omitempty"`
	Geometry         *Geometry `json:"geometry,omitempty"`
}
