package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GenericResponse struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Payload interface{} `json:"payload,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	ErrorType string `json:"errorType"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

// Question statuses derived from the platform's status label.
const (
	StatusSolved    = "solved"
	StatusAttempted = "attempted"

	// AcceptedStatus is the platform sentinel for a passing submission.
	AcceptedStatus = "Accepted"
)

// Question is one tracked problem inside a user's progress record. Difficulty and
// topics are placeholders; the submission feed does not supply authoritative values.
type Question struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Difficulty    string    `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Topics        []string  `bson:"topics,omitempty" json:"topics,omitempty"`
	Status        string    `bson:"status" json:"status"`
	Attempts      int       `bson:"attempts,omitempty" json:"attempts,omitempty"`
	TimeSpent     int       `bson:"time_spent,omitempty" json:"time_spent,omitempty"`
	LastAttempted time.Time `bson:"last_attempted" json:"last_attempted"`
}

type PlatformProgress struct {
	Questions []Question `bson:"questions" json:"questions"`
}

// ProgressData partitions progress per platform. The geeksforgeeks slot exists for
// forward compatibility and stays empty.
type ProgressData struct {
	LeetCode      *PlatformProgress `bson:"leetcode" json:"leetcode"`
	GeeksForGeeks *PlatformProgress `bson:"geeksforgeeks" json:"geeksforgeeks"`
}

type TagStat struct {
	TagName        string `bson:"tagName" json:"tagName"`
	TagSlug        string `bson:"tagSlug" json:"tagSlug"`
	ProblemsSolved int    `bson:"problemsSolved" json:"problemsSolved"`
}

type TagStats struct {
	Advanced     []TagStat `bson:"advanced" json:"advanced"`
	Intermediate []TagStat `bson:"intermediate" json:"intermediate"`
	Fundamental  []TagStat `bson:"fundamental" json:"fundamental"`
}

type LanguageStat struct {
	LanguageName   string `bson:"languageName" json:"languageName"`
	ProblemsSolved int    `bson:"problemsSolved" json:"problemsSolved"`
}

// ProblemCounts holds the per-difficulty breakdown, keyed by canonical difficulty
// label ("All", "Easy", "Medium", "Hard").
type ProblemCounts struct {
	Total  map[string]int      `bson:"total" json:"total"`
	Solved map[string]int      `bson:"solved" json:"solved"`
	Beats  map[string]*float64 `bson:"beats" json:"beats"`
}

type CalendarStreak struct {
	Current int `bson:"current" json:"current"`
	Longest int `bson:"longest" json:"longest"`
}

type CalendarStats struct {
	ActiveYears     []int `bson:"active_years" json:"active_years"`
	TotalActiveDays int   `bson:"total_active_days" json:"total_active_days"`
	Streak          int   `bson:"streak" json:"streak"`
	// Daily submissions keyed YYYY-MM-DD, rolled up into YYYY-MM and YYYY buckets.
	SubmissionsByDate  map[string]int `bson:"submissions_by_date" json:"submissions_by_date"`
	MonthlySubmissions map[string]int `bson:"monthly_submissions" json:"monthly_submissions"`
	YearlySubmissions  map[string]int `bson:"yearly_submissions" json:"yearly_submissions"`
	Streaks            CalendarStreak `bson:"streaks" json:"streaks"`
}

type Badge struct {
	DisplayName string `bson:"display_name" json:"display_name"`
	IconURL     string `bson:"icon_url" json:"icon_url"`
}

type AggregatedStats struct {
	TotalSolved   int            `bson:"total_solved" json:"total_solved"`
	ByDifficulty  map[string]int `bson:"by_difficulty" json:"by_difficulty"`
	ByTopic       map[string]int `bson:"by_topic" json:"by_topic"`
	ByLanguage    []LanguageStat `bson:"by_language" json:"by_language"`
	SuccessRate   float64        `bson:"success_rate" json:"success_rate"`
	TagStats      *TagStats      `bson:"tag_stats,omitempty" json:"tag_stats,omitempty"`
	ProblemCounts *ProblemCounts `bson:"problem_counts,omitempty" json:"problem_counts,omitempty"`
	CalendarStats *CalendarStats `bson:"calendar_stats,omitempty" json:"calendar_stats,omitempty"`
	Badges        []Badge        `bson:"badges" json:"badges"`
}

// UserProgress is the per-user progress record, one document per user.
type UserProgress struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID          string             `bson:"user_id" json:"user_id"`
	ProgressData    ProgressData       `bson:"progress_data" json:"progress_data"`
	AggregatedStats AggregatedStats    `bson:"aggregated_stats" json:"aggregated_stats"`
	LastUpdated     time.Time          `bson:"last_updated" json:"last_updated"`
}

// SyncJob is the payload carried over the job queue for one sync run.
// Credentials are opaque to the service and forwarded as received.
type SyncJob struct {
	JobID     string `json:"job_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	CSRFToken string `json:"csrf_token"`
	Cookie    string `json:"cookie"`
}

// Job status values reported by the queue.
const (
	JobStatusPending = "pending"
	JobStatusSuccess = "success"
	JobStatusFailure = "failure"
)

// NewUserProgress returns a zero-valued record for a first sync.
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		UserID: userID,
		ProgressData: ProgressData{
			LeetCode:      &PlatformProgress{Questions: []Question{}},
			GeeksForGeeks: nil,
		},
		AggregatedStats: AggregatedStats{
			ByDifficulty: map[string]int{},
			ByTopic:      map[string]int{},
			ByLanguage:   []LanguageStat{},
			Badges:       []Badge{},
		},
	}
}
