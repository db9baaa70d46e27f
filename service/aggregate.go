package service

import (
	"devquest/leetcode"
	"devquest/model"
	"devquest/utils"
)

// RebuildAggregates recomputes the aggregated stats record in place from the
// merged question list plus the fetched side-channel stats. Each bundle field
// that is present replaces its sub-field wholesale; absent fields leave the prior
// value untouched, so a failed query degrades to stale data rather than loss.
func RebuildAggregates(progress *model.UserProgress, bundle leetcode.StatsBundle) {
	stats := &progress.AggregatedStats

	if progress.ProgressData.LeetCode != nil {
		stats.TotalSolved = CountSolved(progress.ProgressData.LeetCode.Questions)
	}

	if bundle.TagStats != nil {
		stats.TagStats = bundle.TagStats
		stats.ByTopic = buildTopicCounts(bundle.TagStats)
	}

	if bundle.LanguageStats != nil {
		stats.ByLanguage = bundle.LanguageStats
	}

	if bundle.ProblemStats != nil {
		counts := buildProblemCounts(bundle.ProblemStats)
		stats.ProblemCounts = &counts
		// The platform's own solved count supersedes the one derived from the
		// merged question list.
		if allSolved, ok := counts.Solved[utils.DifficultyAll]; ok {
			stats.TotalSolved = allSolved
		}
	}

	if bundle.Calendar != nil {
		calendar := ProcessCalendar(bundle.Calendar)
		stats.CalendarStats = &calendar
	}

	if bundle.Badge != nil {
		stats.Badges = []model.Badge{{
			DisplayName: bundle.Badge.DisplayName,
			IconURL:     bundle.Badge.Icon,
		}}
	}
}

// buildTopicCounts flattens the three tag tiers into one slug-keyed map. Tiers
// are applied fundamental, intermediate, advanced; when a slug appears in more
// than one tier the advanced count wins.
func buildTopicCounts(tagStats *model.TagStats) map[string]int {
	topicCounts := map[string]int{}
	for _, tier := range [][]model.TagStat{tagStats.Fundamental, tagStats.Intermediate, tagStats.Advanced} {
		for _, tag := range tier {
			topicCounts[tag.TagSlug] = tag.ProblemsSolved
		}
	}
	return topicCounts
}

func buildProblemCounts(raw *leetcode.RawProblemStats) model.ProblemCounts {
	counts := model.ProblemCounts{
		Total:  map[string]int{},
		Solved: map[string]int{},
		Beats:  map[string]*float64{},
	}
	for _, entry := range raw.TotalCounts {
		counts.Total[utils.NormalizeDifficulty(entry.Difficulty)] = entry.Count
	}
	for _, entry := range raw.SolvedCounts {
		counts.Solved[utils.NormalizeDifficulty(entry.Difficulty)] = entry.Count
	}
	for _, entry := range raw.Beats {
		counts.Beats[utils.NormalizeDifficulty(entry.Difficulty)] = entry.Percentage
	}
	return counts
}
