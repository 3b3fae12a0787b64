package places

import (
	"strings"

	"github.com/plazahub/plazadir/internal/models"
)

// weekdayTextOrder is the day-key order of the API's weekday_text field,
// which always starts with Monday.
var weekdayTextOrder = []string{
	models.DayMon, models.DayTue, models.DayWed, models.DayThu,
	models.DayFri, models.DaySat, models.DaySun,
}

// WeeklyHoursFromPlace converts the API's weekday_text lines
// ("Monday: 9:00 AM – 5:00 PM") into a WeeklyHours table. Returns nil when
// the details carry no hours. A line without a recognizable "Day: hours"
// shape records that day as "Closed".
func WeeklyHoursFromPlace(d *models.PlaceDetails) models.WeeklyHours {
	if d == nil || d.OpeningHours == nil || len(d.OpeningHours.WeekdayText) == 0 {
		return nil
	}

	out := make(models.WeeklyHours, len(weekdayTextOrder))
	for i, line := range d.OpeningHours.WeekdayText {
		if i >= len(weekdayTextOrder) {
			break
		}
		day := weekdayTextOrder[i]
		if _, text, ok := strings.Cut(line, ":"); ok {
			out[day] = strings.TrimSpace(text)
		} else {
			out[day] = "Closed"
		}
	}
	return out
}
