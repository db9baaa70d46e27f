package service

import (
	"strconv"
	"time"

	"devquest/leetcode"
	"devquest/model"
)

// Placeholder classification values. The submission feed does not supply
// authoritative difficulty or topics per question.
const (
	defaultDifficulty = "medium"
	defaultTopic      = "algorithms"
)

// MergeQuestions reconciles fetched submissions against the stored question list.
// The working set keeps the first occurrence per question ID in fetch order; the
// feed is most-recent-first, so that occurrence is the latest attempt. Questions
// already known keep their position and attempt count, with status overwritten and
// the last-attempted timestamp advanced. Unseen questions are prepended in the
// order they were first encountered.
func MergeQuestions(existing []model.Question, submissions []leetcode.Submission) []model.Question {
	staged := map[string]model.Question{}
	stagedOrder := []string{}

	for _, sub := range submissions {
		questionID := strconv.FormatInt(sub.QuestionID, 10)
		if _, seen := staged[questionID]; seen {
			continue
		}
		staged[questionID] = model.Question{
			ID:            questionID,
			Name:          sub.Title,
			Difficulty:    defaultDifficulty,
			Topics:        []string{defaultTopic},
			Status:        questionStatus(sub.StatusDisplay),
			Attempts:      1,
			TimeSpent:     0,
			LastAttempted: time.Unix(sub.Timestamp, 0).UTC(),
		}
		stagedOrder = append(stagedOrder, questionID)
	}

	known := map[string]int{}
	for i, q := range existing {
		known[q.ID] = i
	}

	updated := make([]model.Question, len(existing))
	copy(updated, existing)

	newQuestions := []model.Question{}
	for _, questionID := range stagedOrder {
		question := staged[questionID]
		if i, ok := known[questionID]; ok {
			// Attempts are intentionally not incremented here: every sync replays
			// the full feed, so counting replays would inflate the counter.
			updated[i].Status = question.Status
			if question.LastAttempted.After(updated[i].LastAttempted) {
				updated[i].LastAttempted = question.LastAttempted
			}
			continue
		}
		newQuestions = append(newQuestions, question)
	}

	return append(newQuestions, updated...)
}

func questionStatus(statusDisplay string) string {
	if statusDisplay == model.AcceptedStatus {
		return model.StatusSolved
	}
	return model.StatusAttempted
}

// CountSolved returns the number of solved questions in a list.
func CountSolved(questions []model.Question) int {
	solved := 0
	for _, q := range questions {
		if q.Status == model.StatusSolved {
			solved++
		}
	}
	return solved
}
