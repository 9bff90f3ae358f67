// Package calendar converts Gregorian dates to the tabular Hijri calendar and
// decides which dates may be picked for attendance entries.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// JDN of 1 Muharram 1 AH (JD 1948439.5 at midnight).
	hijriEpochJDN = 1948440
)

var ErrBeforeEpoch = errors.New("date is before the Hijri epoch")

var hijriMonths = [12]string{
	"محرم",
	"صفر",
	"ربيع الأول",
	"ربيع الثاني",
	"جمادى الأولى",
	"جمادى الآخرة",
	"رجب",
	"شعبان",
	"رمضان",
	"شوال",
	"ذو القعدة",
	"ذو الحجة",
}

// indexed by time.Weekday (Sunday = 0)
var weekdayNames = [7]string{
	"الأحد",
	"الإثنين",
	"الثلاثاء",
	"الأربعاء",
	"الخميس",
	"الجمعة",
	"السبت",
}

var gregorianMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

type HijriDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"monthName"`
	Formatted string `json:"formatted"`
}

// JulianDayNumber returns the JDN of the proleptic Gregorian date y-m-d.
// Valid for years after 4716 BC, which covers everything past the Hijri epoch.
func JulianDayNumber(y, m, d int) int {
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	// floor(365.25*(y+4716)) + floor(30.6001*(m+1)) in integer form
	return (1461*(y+4716))/4 + (306001*(m+1))/10000 + d + b - 1524
}

// ToHijri converts the calendar date of t (its wall-clock date, location ignored).
// Dates before the epoch give meaningless results; use ToHijriChecked for input
// that is not already known to be valid.
func ToHijri(t time.Time) HijriDate {
	y, m, d := t.Date()
	return fromJDN(JulianDayNumber(y, int(m), d))
}

func ToHijriChecked(t time.Time) (HijriDate, error) {
	y, m, d := t.Date()
	jdn := JulianDayNumber(y, int(m), d)
	if jdn < hijriEpochJDN {
		return HijriDate{}, fmt.Errorf("%s: %w", t.Format(DateLayout), ErrBeforeEpoch)
	}
	return fromJDN(jdn), nil
}

// tabular (arithmetic) Hijri calendar, 30-year cycle of 10631 days
func fromJDN(jdn int) HijriDate {
	l := jdn - hijriEpochJDN + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	name := hijriMonths[month-1]
	return HijriDate{
		Year:      year,
		Month:     month,
		Day:       day,
		MonthName: name,
		Formatted: fmt.Sprintf("%d %s %dهـ", day, name, year),
	}
}

func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// FormatGregorian: "10 مارس 2024"
func FormatGregorian(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), gregorianMonths[t.Month()-1], t.Year())
}

type Display struct {
	Date      string    `json:"date"`
	Gregorian string    `json:"gregorian"`
	Hijri     string    `json:"hijri"`
	DayName   string    `json:"dayName"`
	HijriDate HijriDate `json:"hijriDate"`
}

func Describe(t time.Time) Display {
	h := ToHijri(t)
	return Display{
		Date:      t.Format(DateLayout),
		Gregorian: FormatGregorian(t),
		Hijri:     h.Formatted,
		DayName:   WeekdayName(t),
		HijriDate: h,
	}
}

// ParseDate parses YYYY-MM-DD as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
