package service

import (
	"time"

	"devquest/model"
)

// BuildHeatmap derives the full-year intensity view from the stored calendar
// aggregate. Every date of the target year is present, count 0 when no activity
// was recorded. The accompanying totals cover all stored activity, not just the
// requested year.
func BuildHeatmap(calendarStats *model.CalendarStats, year int) model.HeatmapResponse {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	resp := model.HeatmapResponse{
		Year:    year,
		Heatmap: map[string]model.HeatmapDay{},
		Stats: model.HeatmapStats{
			MonthlySubmissions: map[string]int{},
			YearlySubmissions:  map[string]int{},
		},
	}

	dailyCounts := map[string]int{}
	if calendarStats != nil {
		dailyCounts = calendarStats.SubmissionsByDate
		resp.Stats.ActiveDays = calendarStats.TotalActiveDays
		resp.Stats.CurrentStreak = calendarStats.Streaks.Current
		if calendarStats.MonthlySubmissions != nil {
			resp.Stats.MonthlySubmissions = calendarStats.MonthlySubmissions
		}
		if calendarStats.YearlySubmissions != nil {
			resp.Stats.YearlySubmissions = calendarStats.YearlySubmissions
		}
		for _, count := range dailyCounts {
			resp.Stats.TotalSubmissions += count
		}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		count := dailyCounts[date]
		resp.Heatmap[date] = model.HeatmapDay{
			Count:     count,
			Intensity: intensityBucket(count),
		}
	}

	return resp
}

func intensityBucket(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 3:
		return 1
	case count <= 6:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}
