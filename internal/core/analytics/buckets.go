package analytics

import (
	"time"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
)

// DefaultWindowDays is the length of the dashboard traffic chart.
const DefaultWindowDays = 7

// BucketDaily counts page views per relative day over the trailing
// windowDays ending at now. Index windowDays-1 is "today" (the last 24h),
// index 0 the oldest day. Days are whole 24h multiples of |now - createdAt|;
// events falling outside [0, windowDays) are dropped.
func BucketDaily(events []*v1.AnalyticsEvent, now time.Time, windowDays int) []int {
	if windowDays <= 0 {
		return []int{}
	}

	counts := make([]int, windowDays)
	cutoff := now.Add(-time.Duration(windowDays) * Day)

	for _, evt := range events {
		if evt == nil || !evt.IsPageView() || evt.CreatedAt.Before(cutoff) {
			continue
		}

		diff := now.Sub(evt.CreatedAt)
		if diff < 0 {
			diff = -diff
		}
		diffDays := int(diff / Day)
		if diffDays >= windowDays {
			continue
		}
		counts[windowDays-1-diffDays]++
	}

	return counts
}

// DayLabels returns the three-letter weekday name of each bucket, walking
// back from now by windowDays-1 ... 0 calendar days. Names follow now's
// location, which is UTC for the dashboard.
func DayLabels(now time.Time, windowDays int) []string {
	if windowDays <= 0 {
		return []string{}
	}

	labels := make([]string, windowDays)
	for i := 0; i < windowDays; i++ {
		day := now.AddDate(0, 0, -(windowDays - 1 - i))
		labels[i] = day.Weekday().String()[:3]
	}
	return labels
}
