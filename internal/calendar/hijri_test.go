package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJulianDayNumber(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    int
	}{
		{2000, 1, 1, 2451545},
		{2024, 1, 1, 2460311},
		{2024, 3, 10, 2460380},
		{1970, 1, 1, 2440588},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JulianDayNumber(tt.y, tt.m, tt.d), "%04d-%02d-%02d", tt.y, tt.m, tt.d)
	}
}

func TestToHijri(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want HijriDate
	}{
		{
			name: "new year 2024",
			in:   date(2024, time.January, 1),
			want: HijriDate{Year: 1445, Month: 6, Day: 19, MonthName: "جمادى الآخرة", Formatted: "19 جمادى الآخرة 1445هـ"},
		},
		{
			name: "end of shaban",
			in:   date(2024, time.March, 10),
			want: HijriDate{Year: 1445, Month: 8, Day: 29, MonthName: "شعبان", Formatted: "29 شعبان 1445هـ"},
		},
		{
			name: "epoch",
			in:   date(622, time.July, 19),
			want: HijriDate{Year: 1, Month: 1, Day: 1, MonthName: "محرم", Formatted: "1 محرم 1هـ"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHijri(tt.in))
		})
	}
}

func TestToHijriIgnoresTimeOfDay(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	late := time.Date(2024, time.March, 10, 23, 59, 0, 0, riyadh)
	assert.Equal(t, ToHijri(date(2024, time.March, 10)), ToHijri(late))
}

func TestToHijriChecked(t *testing.T) {
	_, err := ToHijriChecked(date(600, time.January, 1))
	assert.True(t, errors.Is(err, ErrBeforeEpoch))

	h, err := ToHijriChecked(date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 1445, h.Year)
}

// consecutive Gregorian days must advance the Hijri date by exactly one day
func TestToHijriMonotonic(t *testing.T) {
	d := date(1990, time.January, 1)
	end := date(2060, time.January, 1)
	prev := ToHijri(d)
	for d = d.AddDate(0, 0, 1); d.Before(end); d = d.AddDate(0, 0, 1) {
		cur := ToHijri(d)
		switch {
		case cur.Year == prev.Year && cur.Month == prev.Month:
			require.Equal(t, prev.Day+1, cur.Day, "day step at %s", d.Format(DateLayout))
		case cur.Year == prev.Year && cur.Month == prev.Month+1:
			require.Equal(t, 1, cur.Day, "month rollover at %s", d.Format(DateLayout))
			require.Contains(t, []int{29, 30}, prev.Day, "month length at %s", d.Format(DateLayout))
		case cur.Year == prev.Year+1:
			require.Equal(t, 1, cur.Month, "year rollover at %s", d.Format(DateLayout))
			require.Equal(t, 1, cur.Day)
			require.Equal(t, 12, prev.Month)
		default:
			t.Fatalf("non-monotonic step %+v -> %+v at %s", prev, cur, d.Format(DateLayout))
		}
		require.GreaterOrEqual(t, cur.Month, 1)
		require.LessOrEqual(t, cur.Month, 12)
		prev = cur
	}
}

func TestWeekdayName(t *testing.T) {
	// 2024-01-01 is a Monday
	assert.Equal(t, "الإثنين", WeekdayName(date(2024, time.January, 1)))
	assert.Equal(t, "الأحد", WeekdayName(date(2024, time.March, 10)))
	assert.Equal(t, "الجمعة", WeekdayName(date(2024, time.March, 15)))
	assert.Equal(t, "السبت", WeekdayName(date(2024, time.March, 16)))
}

func TestDescribe(t *testing.T) {
	got := Describe(date(2024, time.March, 10))
	assert.Equal(t, "2024-03-10", got.Date)
	assert.Equal(t, "10 مارس 2024", got.Gregorian)
	assert.Equal(t, "29 شعبان 1445هـ", got.Hijri)
	assert.Equal(t, "الأحد", got.DayName)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
	_, err = ParseDate("10/03/2024")
	assert.Error(t, err)
}
