package chart

import (
	"time"

	"prdashboard/internal/domain/assignment"
)

// TimeValues describe the time axis of a bar chart for one granularity.
type TimeValues struct {
	Name   string
	Hover  string
	Period any
	Range  []string
}

const weekMillis = 7 * 24 * 60 * 60 * 1000

// GraphTimeValues returns the axis name, hover prefix, tick period and the
// default visible range ending at now. Yearly charts show everything.
func GraphTimeValues(g assignment.Granularity, now time.Time) TimeValues {
	today := now.UTC().Format(time.DateOnly)
	switch g {
	case assignment.Day:
		return TimeValues{
			Name:   "Day",
			Hover:  "Day: %{x|%b %d, %Y}",
			Period: "D1",
			Range:  []string{now.AddDate(0, 0, -30).UTC().Format(time.DateOnly), today},
		}
	case assignment.Week:
		return TimeValues{
			Name:   "Week",
			Hover:  "Week: %{x|%b %d, %Y}",
			Period: weekMillis,
			Range:  []string{now.AddDate(0, 0, -7*30).UTC().Format(time.DateOnly), today},
		}
	case assignment.Month:
		return TimeValues{
			Name:   "Month",
			Hover:  "Month: %{x|%b %Y}",
			Period: "M1",
			Range:  []string{now.AddDate(0, 0, -365).UTC().Format(time.DateOnly), today},
		}
	}
	return TimeValues{
		Name:   "Year",
		Hover:  "Year: %{x|%Y}",
		Period: "M12",
	}
}
