package services

import (
	"fmt"
	"math"
	"time"
)

// DurationDays converts a start/end date pair into a whole-day duration:
// the ceiling of the elapsed time in 24-hour days, on UTC instants.
// End-before-start yields a negative number on purpose; callers display it
// as-is instead of hiding the inverted range.
func DurationDays(start, end time.Time) int {
	elapsed := end.UTC().Sub(start.UTC())
	return int(math.Ceil(float64(elapsed) / float64(24*time.Hour)))
}

// Phase is a named slice of the project schedule.
type Phase struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// PhaseDuration is a phase with its derived whole-day duration.
type PhaseDuration struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}

// PhaseDurations derives the whole-day duration of every phase.
func PhaseDurations(phases []Phase) []PhaseDuration {
	out := make([]PhaseDuration, len(phases))
	for i, p := range phases {
		out[i] = PhaseDuration{Name: p.Name, Days: DurationDays(p.StartDate, p.EndDate)}
	}
	return out
}

// parseDateRange parses a pair of ISO dates. Either side missing or
// malformed means no duration can be derived.
func parseDateRange(startStr, endStr string) (start, end time.Time, ok bool) {
	start, err := parseISODate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = parseISODate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseISODate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05.000Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
