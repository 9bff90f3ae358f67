// Package lateness compares "HH:mm" wall-clock times against a cutoff.
// Times are naive: no time zone, no rollover past midnight.
package lateness

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrBadClock = errors.New("time must be HH:mm")

type Locale string

const (
	Arabic  Locale = "ar"
	English Locale = "en"
)

// ParseLocale falls back to Arabic for anything unknown.
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(English)) {
		return English
	}
	return Arabic
}

// Minutes parses "HH:mm" (hour may be one digit) into minutes since midnight.
func Minutes(clock string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 || !digits(h) || !digits(m) {
		return 0, fmt.Errorf("%q: %w", clock, ErrBadClock)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%q: %w", clock, ErrBadClock)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%q: %w", clock, ErrBadClock)
	}
	return hours*60 + mins, nil
}

// Atoi は符号を受け付けるので数字のみに限定する
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Validate: Minutes without the value
func Validate(clock string) error {
	_, err := Minutes(clock)
	return err
}

// Normalize rewrites "7:05" as "07:05".
func Normalize(clock string) (string, error) {
	total, err := Minutes(clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// Of: minutes between cutoff and arrival, 0 when arriving on time or early.
func Of(arrival, cutoff string) (int, error) {
	a, c, err := pair(arrival, cutoff)
	if err != nil {
		return 0, err
	}
	if a <= c {
		return 0, nil
	}
	return a - c, nil
}

// IsLate is strict: arriving exactly at the cutoff is on time.
func IsLate(arrival, cutoff string) (bool, error) {
	a, c, err := pair(arrival, cutoff)
	if err != nil {
		return false, err
	}
	return a > c, nil
}

func pair(arrival, cutoff string) (int, int, error) {
	a, err := Minutes(arrival)
	if err != nil {
		return 0, 0, err
	}
	c, err := Minutes(cutoff)
	if err != nil {
		return 0, 0, err
	}
	return a, c, nil
}

// FormatDuration renders total minutes as "H hour(s) and M minute(s)" or "M minute(s)".
func FormatDuration(total int, loc Locale) string {
	if total < 0 {
		total = 0
	}
	hours, mins := total/60, total%60
	if loc == English {
		if hours > 0 {
			return fmt.Sprintf("%d hour(s) and %d minute(s)", hours, mins)
		}
		return fmt.Sprintf("%d minute(s)", mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%d ساعة و %d دقيقة", hours, mins)
	}
	return fmt.Sprintf("%d دقيقة", mins)
}

// Clock formats the wall-clock time of t as "HH:mm".
func Clock(t time.Time) string {
	return t.Format("15:04")
}
