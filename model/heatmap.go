package model

// HeatmapDay is one cell of the yearly activity heatmap. Intensity is a 5-level
// bucket over the day's submission count: 0, 1-3, 4-6, 7-10, 11+.
type HeatmapDay struct {
	Count     int `json:"count"`
	Intensity int `json:"intensity"`
}

// HeatmapStats summarises the stored calendar alongside the per-day grid. Totals
// and the monthly/yearly maps cover all stored activity, not just the requested
// year.
type HeatmapStats struct {
	TotalSubmissions   int            `json:"total_submissions"`
	ActiveDays         int            `json:"active_days"`
	CurrentStreak      int            `json:"current_streak"`
	MonthlySubmissions map[string]int `json:"monthly_submissions"`
	YearlySubmissions  map[string]int `json:"yearly_submissions"`
}

type HeatmapResponse struct {
	Year    int                   `json:"year"`
	Heatmap map[string]HeatmapDay `json:"heatmap"`
	Stats   HeatmapStats          `json:"stats"`
}
