// Package hours evaluates free-text weekly schedules: today's hours,
// the open-now predicate, staleness, and relative-time formatting.
package hours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/plazahub/plazadir/internal/models"
)

// clauseRe matches a single time-range clause such as "8 AM–5:30 PM",
// "11:30 AM–2:30 PM", or "5–9 PM". Minutes and AM/PM markers are optional;
// the dash may be an en-dash or a hyphen.
var clauseRe = regexp.MustCompile(`(\d{1,2}):?(\d{2})?\s*(?i:(AM|PM))?\s*[–-]\s*(\d{1,2}):?(\d{2})?\s*(?i:(AM|PM))?`)

// dayKeys maps time.Weekday to the WeeklyHours key for that day.
var dayKeys = map[time.Weekday]string{
	time.Sunday:    models.DaySun,
	time.Monday:    models.DayMon,
	time.Tuesday:   models.DayTue,
	time.Wednesday: models.DayWed,
	time.Thursday:  models.DayThu,
	time.Friday:    models.DayFri,
	time.Saturday:  models.DaySat,
}

// Evaluator answers schedule questions for a fixed time zone.
// The zero threshold and wrap settings come from configuration; malformed
// or absent schedule data always degrades to closed/unknown, never an error.
type Evaluator struct {
	loc           *time.Location
	wrapOvernight bool
}

// NewEvaluator creates an evaluator for the given zone. A nil location
// falls back to UTC. wrapOvernight opts into interpreting a close time
// earlier than the open time as spanning midnight; by default such clauses
// never match, mirroring the behavior the hours data was authored against.
func NewEvaluator(loc *time.Location, wrapOvernight bool) *Evaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &Evaluator{loc: loc, wrapOvernight: wrapOvernight}
}

// TodaysSchedule returns the stored hours text for the weekday of now in
// the evaluator's zone. The second result is false when the table is nil
// or has no entry for today.
func (e *Evaluator) TodaysSchedule(h models.WeeklyHours, now time.Time) (string, bool) {
	if h == nil {
		return "", false
	}
	text, ok := h[dayKeys[now.In(e.loc).Weekday()]]
	return text, ok
}

// IsOpenNow reports whether the business is open at the instant now.
// Today's text is split on commas into clauses (split shifts); the business
// is open if now falls within any clause. The interval is closed at both
// ends. Text containing "closed" (any case), an absent entry, or a clause
// that fails to parse all count as not open.
func (e *Evaluator) IsOpenNow(h models.WeeklyHours, now time.Time) bool {
	text, ok := e.TodaysSchedule(h, now)
	if !ok || strings.Contains(strings.ToLower(text), "closed") {
		return false
	}

	local := now.In(e.loc)
	minute := local.Hour()*60 + local.Minute()

	for _, clause := range strings.Split(text, ",") {
		open, close, ok := parseClause(strings.TrimSpace(clause))
		if !ok {
			continue
		}
		if close < open {
			if e.wrapOvernight && (minute >= open || minute <= close) {
				return true
			}
			continue
		}
		if minute >= open && minute <= close {
			return true
		}
	}
	return false
}

// parseClause parses one time-range clause into open/close minutes since
// midnight. Returns ok=false when the clause does not match the grammar.
// A side without its own AM/PM marker inherits the other side's, so
// "5–9 PM" reads as 5 PM–9 PM and "8–11 AM" as 8 AM–11 AM.
func parseClause(clause string) (open, close int, ok bool) {
	m := clauseRe.FindStringSubmatch(clause)
	if m == nil {
		return 0, 0, false
	}
	openPeriod, closePeriod := m[3], m[6]
	if openPeriod == "" {
		openPeriod = closePeriod
	}
	if closePeriod == "" {
		closePeriod = openPeriod
	}
	open = toMinutes(m[1], m[2], openPeriod)
	close = toMinutes(m[4], m[5], closePeriod)
	return open, close, true
}

// toMinutes converts hour/minute/period captures to minutes since midnight.
// "PM" adds 12 hours unless the hour is already 12; "12 AM" is midnight.
func toMinutes(hourStr, minStr, period string) int {
	hour, _ := strconv.Atoi(hourStr)
	min := 0
	if minStr != "" {
		min, _ = strconv.Atoi(minStr)
	}
	switch strings.ToUpper(period) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour*60 + min
}

// IsStale reports whether a last-refresh timestamp is older than threshold.
// A nil timestamp is always stale.
func IsStale(ts *time.Time, now time.Time, threshold time.Duration) bool {
	if ts == nil {
		return true
	}
	return now.Sub(*ts) > threshold
}

// RelativeTime renders the elapsed time since ts as "Nd ago", "Nh ago", or
// "Nm ago", truncated at the coarsest applicable unit.
func RelativeTime(ts, now time.Time) string {
	elapsed := now.Sub(ts)
	switch {
	case elapsed >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours())/24)
	case elapsed >= time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	}
}
