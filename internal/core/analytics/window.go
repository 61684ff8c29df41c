package analytics

import (
	"fmt"
	"strconv"
	"time"
)

// Day is the fixed length of one bucket. Buckets are multiples of 24h
// measured back from "now", not calendar days.
const Day = 24 * time.Hour

// ParsePeriod parses a duration string into a positive time.Duration.
// Supports Go duration syntax (e.g. "36h", "90m") plus "Xd" for days.
func ParsePeriod(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("period must not be empty")
	}

	// Handle "d" suffix (days), which time.ParseDuration does not know.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		days, err := strconv.Atoi(s[:len(s)-1])
		if err != nil {
			return 0, fmt.Errorf("invalid period %q: %w", s, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("period must be positive, got %q", s)
		}
		return time.Duration(days) * Day, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("period must be positive, got %q", s)
	}
	return d, nil
}

// Periods holds the bounds of two adjacent, equal-length trailing windows
// ending at Now: current = [CurrentStart, Now], previous = [PreviousStart, CurrentStart).
type Periods struct {
	Now           time.Time
	CurrentStart  time.Time
	PreviousStart time.Time
}

// TrailingPeriods returns the velocity windows for the given period length.
func TrailingPeriods(now time.Time, length time.Duration) Periods {
	return Periods{
		Now:           now,
		CurrentStart:  now.Add(-length),
		PreviousStart: now.Add(-2 * length),
	}
}
