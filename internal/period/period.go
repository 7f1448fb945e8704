// Package period turns report query parameters into an inclusive date range.
package period

import (
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"
)

const (
	Day   = "day"
	Week  = "week"
	Month = "month"
)

// Query holds the raw request parameters.
type Query struct {
	StartDate string
	EndDate   string
	Period    string
	Date      string
}

// Range is an inclusive [Start, End] pair of calendar dates.
type Range struct {
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
}

// referenceLayouts are tried in order for the "date" parameter.
var referenceLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	models.DateLayout,
}

// Resolve computes the range for q. now supplies "today" (in its own location).
//
// An explicit start_date/end_date pair wins and is not checked for start <= end.
// Otherwise the reference date is widened to its day, ISO week or month. An absent or
// unknown period falls back to today even when a reference date was given.
func Resolve(q Query, now time.Time) (Range, error) {
	if q.StartDate != "" && q.EndDate != "" {
		start, err := models.ParseDate(q.StartDate)
		if err != nil {
			return Range{}, util.Invalidf("start_date must be YYYY-MM-DD")
		}
		end, err := models.ParseDate(q.EndDate)
		if err != nil {
			return Range{}, util.Invalidf("end_date must be YYYY-MM-DD")
		}
		return Range{Start: start, End: end}, nil
	}

	today := truncate(now)
	ref := today
	if q.Date != "" {
		t, err := parseReference(q.Date, now.Location())
		if err != nil {
			return Range{}, err
		}
		ref = t
	}

	switch q.Period {
	case Day:
		d := models.DateOf(ref)
		return Range{Start: d, End: d}, nil
	case Week:
		start := WeekStart(ref)
		return Range{Start: models.DateOf(start), End: models.DateOf(start.AddDate(0, 0, 6))}, nil
	case Month:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)
		return Range{Start: models.DateOf(first), End: models.DateOf(last)}, nil
	default:
		d := models.DateOf(today)
		return Range{Start: d, End: d}, nil
	}
}

// WeekStart returns the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return truncate(t).AddDate(0, 0, -offset)
}

func parseReference(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range referenceLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return truncate(t), nil
		}
	}
	return time.Time{}, util.Invalidf("date must be YYYY-MM-DD")
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
