package period

import (
	"testing"
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC) // Wednesday

func TestResolve_ExplicitRangeWins(t *testing.T) {
	r, err := Resolve(Query{StartDate: "2024-03-10", EndDate: "2024-03-01", Period: Month, Date: "2020-01-01"}, fixedNow)
	require.NoError(t, err)
	// start > end is passed through untouched
	assert.Equal(t, Range{Start: "2024-03-10", End: "2024-03-01"}, r)
}

func TestResolve_ExplicitRangeMalformed(t *testing.T) {
	_, err := Resolve(Query{StartDate: "2024/03/10", EndDate: "2024-03-11"}, fixedNow)
	_, ok := util.AsValidation(err)
	assert.True(t, ok)
}

func TestResolve_OnlyOneBoundIgnored(t *testing.T) {
	r, err := Resolve(Query{StartDate: "2024-01-01", Period: Day}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2024-03-13", End: "2024-03-13"}, r)
}

func TestResolve_Day(t *testing.T) {
	r, err := Resolve(Query{Period: Day, Date: "2024-02-29"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2024-02-29", End: "2024-02-29"}, r)
}

func TestResolve_MonthLeapYear(t *testing.T) {
	r, err := Resolve(Query{Period: Month, Date: "2024-02-15"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2024-02-01", End: "2024-02-29"}, r)
}

func TestResolve_MonthDefaultsToCurrent(t *testing.T) {
	r, err := Resolve(Query{Period: Month}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2024-03-01", End: "2024-03-31"}, r)
}

func TestResolve_Week(t *testing.T) {
	cases := map[string]Range{
		"2024-03-11": {Start: "2024-03-11", End: "2024-03-17"}, // Monday
		"2024-03-13": {Start: "2024-03-11", End: "2024-03-17"},
		"2024-03-17": {Start: "2024-03-11", End: "2024-03-17"}, // Sunday
		"2024-01-03": {Start: "2024-01-01", End: "2024-01-07"},
		"2023-01-01": {Start: "2022-12-26", End: "2023-01-01"}, // Sunday across a year
	}
	for date, want := range cases {
		r, err := Resolve(Query{Period: Week, Date: date}, fixedNow)
		require.NoError(t, err, date)
		assert.Equal(t, want, r, date)
	}
}

func TestResolve_WeekAlwaysMondayToSunday(t *testing.T) {
	day := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		ref := day.AddDate(0, 0, i)
		r, err := Resolve(Query{Period: Week, Date: ref.Format(models.DateLayout)}, fixedNow)
		require.NoError(t, err)

		start, err := r.Start.Time()
		require.NoError(t, err)
		end, err := r.End.Time()
		require.NoError(t, err)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, time.Sunday, end.Weekday())
		assert.Equal(t, start.AddDate(0, 0, 6), end)
		assert.False(t, ref.Before(start) || ref.After(end))
	}
}

func TestResolve_UnknownPeriodUsesToday(t *testing.T) {
	for _, p := range []string{"", "year", "DAY"} {
		r, err := Resolve(Query{Period: p, Date: "2020-05-05"}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, Range{Start: "2024-03-13", End: "2024-03-13"}, r, p)
	}
}

func TestResolve_BadReferenceDate(t *testing.T) {
	for _, p := range []string{Day, Week, Month, ""} {
		_, err := Resolve(Query{Period: p, Date: "not-a-date"}, fixedNow)
		ve, ok := util.AsValidation(err)
		require.True(t, ok, p)
		assert.Equal(t, "date must be YYYY-MM-DD", ve.Msg)
	}
}

func TestResolve_TodayFollowsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 13th is already the 14th in IST
	now := time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC).In(loc)
	r, err := Resolve(Query{}, now)
	require.NoError(t, err)
	assert.Equal(t, models.Date("2024-03-14"), r.Start)
}

func TestResolve_ReferenceWithTime(t *testing.T) {
	r, err := Resolve(Query{Period: Day, Date: "2024-03-05T23:10:00"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: "2024-03-05", End: "2024-03-05"}, r)
}
