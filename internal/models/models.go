package models

type MetricRow struct {
	Date  string
	Value float64
}

type BreakdownRow struct {
	Label string
	Count float64
}

type ErrorRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Status      string `json:"status"`
	Occurrences int    `json:"occurrences"`
	Users       int    `json:"users"`
	Sessions    int    `json:"sessions"`
	FirstSeen   string `json:"first_seen"`
	LastSeen    string `json:"last_seen"`
}

type PageViewPoint struct {
	Date        string `json:"date"`
	Views       int    `json:"views"`
	UniqueUsers int    `json:"unique_users"`
}

type PageViewSummary struct {
	TotalViews     int     `json:"total_views"`
	UniqueUsers    int     `json:"unique_users"`
	AvgViewsPerDay float64 `json:"avg_views_per_day"`
	ViewsPerUser   float64 `json:"views_per_user"`
}

type RankedItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type PageViewReport struct {
	NoData    bool            `json:"no_data"`
	Summary   PageViewSummary `json:"summary"`
	Trend     []PageViewPoint `json:"trend"`
	TopPages  []RankedItem    `json:"top_pages"`
	Referrers []RankedItem    `json:"referrers"`
}

type DAUPoint struct {
	Date string `json:"date"`
	DAU  int    `json:"dau"`
}

type HourBucket struct {
	Hour  int     `json:"hour"`
	Total float64 `json:"total"`
}

type DAUReport struct {
	NoData        bool         `json:"no_data"`
	Today         int          `json:"today"`
	TodayDelta    int          `json:"today_delta"`
	TodayDeltaPct *float64     `json:"today_delta_pct"`
	Avg7d         float64      `json:"avg_7d"`
	Avg30d        float64      `json:"avg_30d"`
	Trend         []DAUPoint   `json:"trend"`
	ByCountry     []RankedItem `json:"by_country"`
	HourlyPattern []HourBucket `json:"hourly_pattern"`
}

type ErrorTimelinePoint struct {
	Date          string `json:"date"`
	Count         int    `json:"count"`
	AffectedUsers int    `json:"affected_users"`
}

type ErrorTypePoint struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type ErrorSummary struct {
	TotalErrors      int `json:"total_errors"`
	TotalOccurrences int `json:"total_occurrences"`
	AffectedUsers    int `json:"affected_users"`
	ActiveErrors     int `json:"active_errors"`
}

type ErrorReport struct {
	NoData       bool                 `json:"no_data"`
	Summary      ErrorSummary         `json:"summary"`
	Errors       []ErrorRecord        `json:"errors"`
	TopErrors    []RankedItem         `json:"top_errors"`
	TimelineDays int                  `json:"timeline_days"`
	Timeline     []ErrorTimelinePoint `json:"timeline"`
	ByType       []ErrorTypePoint     `json:"by_type"`
}

type ErrorDetail struct {
	Error ErrorRecord `json:"error"`
	Raw   []string    `json:"raw"`
}
