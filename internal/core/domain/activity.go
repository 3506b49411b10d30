package domain

import (
	"time"
)

// DateLayout is the calendar-date layout the activity feed uses.
const DateLayout = "2006-01-02"

// LabelLayout renders a day as "Jan 2, 2006".
const LabelLayout = "Jan 2, 2006"

// ActivityPoint is one day's count of attributed events.
type ActivityPoint struct {
	Date      string `json:"date"`
	NumEvents int    `json:"numEvents"`
}

// Day parses the point's date. Both plain calendar dates and RFC 3339
// timestamps are accepted.
func (p ActivityPoint) Day() (time.Time, error) {
	if t, err := time.Parse(DateLayout, p.Date); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, p.Date)
}

// Label returns the human readable category label for the point. The raw
// date string is returned when it cannot be parsed.
func (p ActivityPoint) Label() string {
	day, err := p.Day()
	if err != nil {
		return p.Date
	}
	return day.UTC().Format(LabelLayout)
}

// ActivitySeries is ordered oldest to newest, as delivered by the source.
// A nil series means the series was never loaded.
type ActivitySeries []ActivityPoint

// Values returns numEvents per point.
func (s ActivitySeries) Values() []int {
	values := make([]int, len(s))
	for i, p := range s {
		values[i] = p.NumEvents
	}
	return values
}

// Labels returns one date label per point.
func (s ActivitySeries) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Label()
	}
	return labels
}

// DerivedMetrics are computed from a series and never persisted.
type DerivedMetrics struct {
	TotalEvents   int `json:"totalEvents"`
	LongestStreak int `json:"longestStreak"`
}

// DeriveMetrics computes the total event count and the longest run of
// consecutive active days. The streak scan walks from the newest point to
// the oldest.
func DeriveMetrics(series ActivitySeries) DerivedMetrics {
	var m DerivedMetrics
	current := 0

	for i := len(series) - 1; i >= 0; i-- {
		n := series[i].NumEvents
		m.TotalEvents += n

		if n > 0 {
			current++
		} else {
			current = 0
		}

		if current > m.LongestStreak {
			m.LongestStreak = current
		}
	}

	return m
}
