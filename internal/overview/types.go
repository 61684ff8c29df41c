package overview

import "time"

// Overview is the headline block of the admin dashboard.
type Overview struct {
	LifetimeViews         int64   `json:"lifetime_views"`
	LifetimeClicks        int64   `json:"lifetime_clicks"`
	CurrentPeriodViews    int64   `json:"current_period_views"`
	PreviousPeriodViews   int64   `json:"previous_period_views"`
	VelocityPercent       float64 `json:"velocity_percent"`
	ConversionRatePercent float64 `json:"conversion_rate_percent"`
}

// Traffic is the daily page-view chart. Line and Area are SVG path data in
// a 0 0 100 100 viewBox.
type Traffic struct {
	Counts []int    `json:"counts"`
	Labels []string `json:"labels"`
	Max    int      `json:"max"`
	Line   string   `json:"line"`
	Area   string   `json:"area"`
}

// Dashboard is everything the admin view renders in one payload.
type Dashboard struct {
	Overview    Overview  `json:"overview"`
	Traffic     Traffic   `json:"traffic"`
	GeneratedAt time.Time `json:"generated_at"`
}

func emptyTraffic() Traffic {
	return Traffic{
		Counts: []int{},
		Labels: []string{},
	}
}
