package service

import (
	"testing"

	"devquest/leetcode"
	"devquest/model"

	"github.com/stretchr/testify/assert"
)

func float64Ptr(v float64) *float64 { return &v }

func TestRebuildAggregates_TopicCountsLastWriteWins(t *testing.T) {
	progress := model.NewUserProgress("test_user")
	bundle := leetcode.StatsBundle{
		TagStats: &model.TagStats{
			Fundamental: []model.TagStat{
				{TagName: "Array", TagSlug: "array", ProblemsSolved: 10},
				{TagName: "String", TagSlug: "string", ProblemsSolved: 7},
			},
			Intermediate: []model.TagStat{
				{TagName: "Hash Table", TagSlug: "hash-table", ProblemsSolved: 5},
			},
			Advanced: []model.TagStat{
				// Slug collision with the fundamental tier; the advanced count wins.
				{TagName: "Array", TagSlug: "array", ProblemsSolved: 3},
				{TagName: "Dynamic Programming", TagSlug: "dynamic-programming", ProblemsSolved: 2},
			},
		},
	}

	RebuildAggregates(progress, bundle)

	assert.Equal(t, map[string]int{
		"array":               3,
		"string":              7,
		"hash-table":          5,
		"dynamic-programming": 2,
	}, progress.AggregatedStats.ByTopic)
	assert.Same(t, bundle.TagStats, progress.AggregatedStats.TagStats)
}

func TestRebuildAggregates_ProblemCountsOverrideTotalSolved(t *testing.T) {
	progress := model.NewUserProgress("test_user")
	progress.ProgressData.LeetCode.Questions = []model.Question{
		{ID: "1", Status: model.StatusSolved},
		{ID: "2", Status: model.StatusAttempted},
	}
	bundle := leetcode.StatsBundle{
		ProblemStats: &leetcode.RawProblemStats{
			TotalCounts: []leetcode.DifficultyCount{
				{Difficulty: "All", Count: 3353},
				{Difficulty: "Easy", Count: 835},
			},
			SolvedCounts: []leetcode.DifficultyCount{
				{Difficulty: "All", Count: 125},
				{Difficulty: "Easy", Count: 48},
			},
			Beats: []leetcode.DifficultyPercentage{
				{Difficulty: "Easy", Percentage: float64Ptr(76.39)},
				{Difficulty: "Hard", Percentage: nil},
			},
		},
	}

	RebuildAggregates(progress, bundle)

	// The platform's own count supersedes the one derived from the question list.
	assert.Equal(t, 125, progress.AggregatedStats.TotalSolved)
	assert.Equal(t, 3353, progress.AggregatedStats.ProblemCounts.Total["All"])
	assert.Equal(t, 48, progress.AggregatedStats.ProblemCounts.Solved["Easy"])
	assert.Equal(t, 76.39, *progress.AggregatedStats.ProblemCounts.Beats["Easy"])
	assert.Nil(t, progress.AggregatedStats.ProblemCounts.Beats["Hard"])
}

func TestRebuildAggregates_TotalSolvedFromQuestionsWithoutProblemStats(t *testing.T) {
	progress := model.NewUserProgress("test_user")
	progress.ProgressData.LeetCode.Questions = []model.Question{
		{ID: "1", Status: model.StatusSolved},
		{ID: "2", Status: model.StatusSolved},
		{ID: "3", Status: model.StatusAttempted},
	}

	RebuildAggregates(progress, leetcode.StatsBundle{})

	assert.Equal(t, 2, progress.AggregatedStats.TotalSolved)
}

func TestRebuildAggregates_AbsentInputsKeepStaleData(t *testing.T) {
	progress := model.NewUserProgress("test_user")
	progress.AggregatedStats.ByTopic = map[string]int{"array": 9}
	progress.AggregatedStats.ByLanguage = []model.LanguageStat{{LanguageName: "Go", ProblemsSolved: 4}}
	staleCounts := &model.ProblemCounts{Solved: map[string]int{"All": 9}}
	progress.AggregatedStats.ProblemCounts = staleCounts
	staleCalendar := &model.CalendarStats{TotalActiveDays: 12}
	progress.AggregatedStats.CalendarStats = staleCalendar
	progress.AggregatedStats.Badges = []model.Badge{{DisplayName: "Annual Badge"}}

	RebuildAggregates(progress, leetcode.StatsBundle{})

	assert.Equal(t, map[string]int{"array": 9}, progress.AggregatedStats.ByTopic)
	assert.Equal(t, []model.LanguageStat{{LanguageName: "Go", ProblemsSolved: 4}}, progress.AggregatedStats.ByLanguage)
	assert.Same(t, staleCounts, progress.AggregatedStats.ProblemCounts)
	assert.Same(t, staleCalendar, progress.AggregatedStats.CalendarStats)
	assert.Equal(t, "Annual Badge", progress.AggregatedStats.Badges[0].DisplayName)
}

func TestRebuildAggregates_LanguageListReplacedVerbatim(t *testing.T) {
	progress := model.NewUserProgress("test_user")
	progress.AggregatedStats.ByLanguage = []model.LanguageStat{{LanguageName: "Go", ProblemsSolved: 4}}
	bundle := leetcode.StatsBundle{
		LanguageStats: []model.LanguageStat{
			{LanguageName: "python3", ProblemsSolved: 90},
			{LanguageName: "C++", ProblemsSolved: 35},
		},
	}

	RebuildAggregates(progress, bundle)

	assert.Equal(t, bundle.LanguageStats, progress.AggregatedStats.ByLanguage)
}

func TestRebuildAggregates_CalendarAndBadgeReplaced(t *testing.T) {
	progress := model.NewUserProgress("test_user")
	bundle := leetcode.StatsBundle{
		Calendar: &leetcode.RawCalendar{
			Streak:             3,
			TotalActiveDays:    2,
			SubmissionCalendar: map[string]int{"1700000000": 5},
		},
		Badge: &leetcode.RawBadge{DisplayName: "50 Days Badge", Icon: "/static/badge.png"},
	}

	RebuildAggregates(progress, bundle)

	assert.NotNil(t, progress.AggregatedStats.CalendarStats)
	assert.Equal(t, 5, progress.AggregatedStats.CalendarStats.SubmissionsByDate["2023-11-14"])
	assert.Equal(t, []model.Badge{{DisplayName: "50 Days Badge", IconURL: "/static/badge.png"}}, progress.AggregatedStats.Badges)
}
