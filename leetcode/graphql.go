package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"devquest/model"

	"go.uber.org/zap"
)

// Raw statistic shapes as returned by the platform's query API, before
// aggregation reshapes them.

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type DifficultyPercentage struct {
	Difficulty string   `json:"difficulty"`
	Percentage *float64 `json:"percentage"`
}

type RawProblemStats struct {
	TotalCounts  []DifficultyCount
	SolvedCounts []DifficultyCount
	Beats        []DifficultyPercentage
}

type RawCalendar struct {
	ActiveYears        []int
	Streak             int
	TotalActiveDays    int
	SubmissionCalendar map[string]int
}

type RawBadge struct {
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

// StatsBundle holds the five independently fetched statistic shapes. A nil field
// means that query failed; consumers keep their prior data for it.
type StatsBundle struct {
	TagStats      *model.TagStats
	LanguageStats []model.LanguageStat
	ProblemStats  *RawProblemStats
	Calendar      *RawCalendar
	Badge         *RawBadge
}

const skillStatsQuery = `
query skillStats($username: String!) {
  matchedUser(username: $username) {
    tagProblemCounts {
      advanced { tagName tagSlug problemsSolved }
      intermediate { tagName tagSlug problemsSolved }
      fundamental { tagName tagSlug problemsSolved }
    }
  }
}`

const languageStatsQuery = `
query languageStats($username: String!) {
  matchedUser(username: $username) {
    languageProblemCount { languageName problemsSolved }
  }
}`

const problemsSolvedQuery = `
query userProblemsSolved($username: String!) {
  allQuestionsCount { difficulty count }
  matchedUser(username: $username) {
    problemsSolvedBeatsStats { difficulty percentage }
    submitStatsGlobal {
      acSubmissionNum { difficulty count }
    }
  }
}`

const calendarQuery = `
query userProfileCalendar($username: String!) {
  matchedUser(username: $username) {
    userCalendar {
      activeYears
      streak
      totalActiveDays
      submissionCalendar
    }
  }
}`

const badgeQuery = `
query userBadges($username: String!) {
  matchedUser(username: $username) {
    activeBadge { displayName icon }
  }
}`

type GraphQLClient struct {
	graphqlURL string
	referer    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGraphQLClient(baseURL string, logger *zap.Logger) *GraphQLClient {
	if baseURL == "" {
		baseURL = "https://leetcode.com"
	}
	return &GraphQLClient{
		graphqlURL: baseURL + "/graphql/",
		referer:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// FetchAllStats issues the five statistic queries concurrently. Each failure is
// isolated: the corresponding bundle field is left nil and the others proceed.
func (g *GraphQLClient) FetchAllStats(ctx context.Context, auth Auth, username string) StatsBundle {
	var bundle StatsBundle
	var wg sync.WaitGroup

	wg.Add(5)
	go func() {
		defer wg.Done()
		bundle.TagStats = g.fetchTagStats(ctx, auth, username)
	}()
	go func() {
		defer wg.Done()
		bundle.LanguageStats = g.fetchLanguageStats(ctx, auth, username)
	}()
	go func() {
		defer wg.Done()
		bundle.ProblemStats = g.fetchProblemStats(ctx, auth, username)
	}()
	go func() {
		defer wg.Done()
		bundle.Calendar = g.fetchCalendar(ctx, auth, username)
	}()
	go func() {
		defer wg.Done()
		bundle.Badge = g.fetchBadge(ctx, auth, username)
	}()
	wg.Wait()

	return bundle
}

func (g *GraphQLClient) fetchTagStats(ctx context.Context, auth Auth, username string) *model.TagStats {
	var result struct {
		MatchedUser struct {
			TagProblemCounts model.TagStats `json:"tagProblemCounts"`
		} `json:"matchedUser"`
	}
	if err := g.query(ctx, auth, skillStatsQuery, username, &result); err != nil {
		g.logger.Error("Failed to fetch tag stats", zap.String("username", username), zap.Error(err))
		return nil
	}
	return &result.MatchedUser.TagProblemCounts
}

func (g *GraphQLClient) fetchLanguageStats(ctx context.Context, auth Auth, username string) []model.LanguageStat {
	var result struct {
		MatchedUser struct {
			LanguageProblemCount []model.LanguageStat `json:"languageProblemCount"`
		} `json:"matchedUser"`
	}
	if err := g.query(ctx, auth, languageStatsQuery, username, &result); err != nil {
		g.logger.Error("Failed to fetch language stats", zap.String("username", username), zap.Error(err))
		return nil
	}
	return result.MatchedUser.LanguageProblemCount
}

func (g *GraphQLClient) fetchProblemStats(ctx context.Context, auth Auth, username string) *RawProblemStats {
	var result struct {
		AllQuestionsCount []DifficultyCount `json:"allQuestionsCount"`
		MatchedUser       struct {
			ProblemsSolvedBeatsStats []DifficultyPercentage `json:"problemsSolvedBeatsStats"`
			SubmitStatsGlobal        struct {
				ACSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
	}
	if err := g.query(ctx, auth, problemsSolvedQuery, username, &result); err != nil {
		g.logger.Error("Failed to fetch problem stats", zap.String("username", username), zap.Error(err))
		return nil
	}
	return &RawProblemStats{
		TotalCounts:  result.AllQuestionsCount,
		SolvedCounts: result.MatchedUser.SubmitStatsGlobal.ACSubmissionNum,
		Beats:        result.MatchedUser.ProblemsSolvedBeatsStats,
	}
}

func (g *GraphQLClient) fetchCalendar(ctx context.Context, auth Auth, username string) *RawCalendar {
	var result struct {
		MatchedUser struct {
			UserCalendar struct {
				ActiveYears     []int  `json:"activeYears"`
				Streak          int    `json:"streak"`
				TotalActiveDays int    `json:"totalActiveDays"`
				// JSON-encoded string map of epoch-second -> count.
				SubmissionCalendar string `json:"submissionCalendar"`
			} `json:"userCalendar"`
		} `json:"matchedUser"`
	}
	if err := g.query(ctx, auth, calendarQuery, username, &result); err != nil {
		g.logger.Error("Failed to fetch submission calendar", zap.String("username", username), zap.Error(err))
		return nil
	}

	calendar := &RawCalendar{
		ActiveYears:        result.MatchedUser.UserCalendar.ActiveYears,
		Streak:             result.MatchedUser.UserCalendar.Streak,
		TotalActiveDays:    result.MatchedUser.UserCalendar.TotalActiveDays,
		SubmissionCalendar: map[string]int{},
	}
	if raw := result.MatchedUser.UserCalendar.SubmissionCalendar; raw != "" {
		if err := json.Unmarshal([]byte(raw), &calendar.SubmissionCalendar); err != nil {
			g.logger.Error("Failed to parse submission calendar payload",
				zap.String("username", username), zap.Error(err))
			return nil
		}
	}
	return calendar
}

func (g *GraphQLClient) fetchBadge(ctx context.Context, auth Auth, username string) *RawBadge {
	var result struct {
		MatchedUser struct {
			ActiveBadge *RawBadge `json:"activeBadge"`
		} `json:"matchedUser"`
	}
	if err := g.query(ctx, auth, badgeQuery, username, &result); err != nil {
		g.logger.Error("Failed to fetch badge", zap.String("username", username), zap.Error(err))
		return nil
	}
	return result.MatchedUser.ActiveBadge
}

// query posts one GraphQL request and decodes data into out. A response carrying
// an errors payload is a query-level failure, distinct from transport failures.
func (g *GraphQLClient) query(ctx context.Context, auth Auth, query, username string, out interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": map[string]string{"username": username},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-csrftoken", auth.CSRFToken)
	req.Header.Set("Cookie", auth.Cookie)
	req.Header.Set("Referer", g.referer)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("graphql response carried no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data payload: %w", err)
	}
	return nil
}
