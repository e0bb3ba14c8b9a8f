package domain

// DashboardStats is the aggregate payload served to the transparency
// dashboard. Rates and times are pre-formatted display strings, matching what
// the dashboard renders directly.
type DashboardStats struct {
	Total                 int64             `json:"total"`
	ResponseRate          string            `json:"response_rate"`
	AverageResolutionTime string            `json:"average_resolution_time"`
	SatisfactionIndex     string            `json:"satisfaction_index"`
	ByCategory            []CategoryCount   `json:"by_category"`
	ByDepartment          []DepartmentCount `json:"by_department"`
	TimeSeries            []TimeBucket      `json:"time_series"`
}

type CategoryCount struct {
	Category Category `json:"category" db:"category"`
	Count    int64    `json:"count" db:"count"`
}

type DepartmentCount struct {
	Department string `json:"department" db:"department"`
	Count      int64  `json:"count" db:"count"`
}

// TimeBucket is one point of the chronological series. Bucket is "2006-01-02"
// for daily granularity and "2006-01" for monthly. Empty buckets are absent,
// not zero-filled.
type TimeBucket struct {
	Bucket string `json:"bucket" db:"bucket"`
	Count  int64  `json:"count" db:"count"`
}

type SatisfactionCount struct {
	Rating Satisfaction `json:"rating" db:"rating"`
	Count  int64        `json:"count" db:"count"`
}

// ResolutionStats feeds the response-rate and resolution-time aggregates.
type ResolutionStats struct {
	Total          int64   `json:"total" db:"total"`
	Completed      int64   `json:"completed" db:"completed"`
	AvgResolutionD float64 `json:"avg_resolution_days" db:"avg_resolution_days"`
}
