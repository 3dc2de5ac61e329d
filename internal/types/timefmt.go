package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatSwimTime renders seconds as "m:ss.ss", or "ss.ss" followed by "s"
// when under a minute. Returns "" for NaN.
func FormatSwimTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	hundredths := int64(math.Round(seconds * 100))
	mins := hundredths / 6000
	rem := hundredths % 6000
	secs := fmt.Sprintf("%02d.%02d", rem/100, rem%100)
	if mins > 0 {
		return fmt.Sprintf("%d:%s", mins, secs)
	}
	return secs + "s"
}

// ParseSwimTime parses "m:ss.ss" or "ss.ss" into seconds.
func ParseSwimTime(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid time %q (expected minutes:seconds, times over an hour are not supported)", raw)
	}

	var total float64
	if len(parts) == 2 {
		mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: bad minutes: %w", raw, err)
		}
		secs, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: bad seconds: %w", raw, err)
		}
		if mins < 0 || strings.HasPrefix(strings.TrimSpace(parts[0]), "-") {
			return 0, fmt.Errorf("invalid time %q: minutes cannot be negative", raw)
		}
		if secs < 0 || secs >= 60 {
			return 0, fmt.Errorf("invalid time %q: seconds must be at least 0 and under 60", raw)
		}
		total = float64(mins)*60 + secs
	} else {
		secs, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", raw, err)
		}
		total = secs
	}

	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return 0, fmt.Errorf("invalid time %q: must be a positive number of seconds", raw)
	}
	return total, nil
}

// FormatMeetDate renders a Unix-seconds meet date in UTC ("Jan 2, 2006").
// A zero date renders as "".
func FormatMeetDate(seconds int64) string {
	if seconds == 0 {
		return ""
	}
	return time.Unix(seconds, 0).UTC().Format("Jan 2, 2006")
}

// MeetDateFromDay converts a "2006-01-02" form date to Unix seconds at midnight UTC.
func MeetDateFromDay(day string) (int64, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(day))
	if err != nil {
		return 0, fmt.Errorf("invalid meet date %q: %w", day, err)
	}
	return t.UTC().Unix(), nil
}
