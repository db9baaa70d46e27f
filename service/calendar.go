package service

import (
	"strconv"
	"time"

	"devquest/leetcode"
	"devquest/model"
)

// ProcessCalendar converts the raw epoch-keyed submission calendar into
// date-bucketed daily, monthly and yearly aggregates. A nil or empty input yields
// a zero-valued result.
func ProcessCalendar(raw *leetcode.RawCalendar) model.CalendarStats {
	stats := model.CalendarStats{
		ActiveYears:        []int{},
		SubmissionsByDate:  map[string]int{},
		MonthlySubmissions: map[string]int{},
		YearlySubmissions:  map[string]int{},
	}
	if raw == nil {
		return stats
	}

	if len(raw.ActiveYears) > 0 {
		stats.ActiveYears = raw.ActiveYears
	}
	stats.TotalActiveDays = raw.TotalActiveDays
	stats.Streak = raw.Streak
	stats.Streaks = model.CalendarStreak{
		Current: raw.Streak,
		// Longest is not reported by the source; it mirrors the current streak.
		Longest: raw.Streak,
	}

	for epochKey, count := range raw.SubmissionCalendar {
		epoch, err := strconv.ParseInt(epochKey, 10, 64)
		if err != nil {
			continue
		}
		day := time.Unix(epoch, 0).UTC()
		stats.SubmissionsByDate[day.Format("2006-01-02")] += count
		stats.MonthlySubmissions[day.Format("2006-01")] += count
		stats.YearlySubmissions[day.Format("2006")] += count
	}

	return stats
}
