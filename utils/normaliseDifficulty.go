package utils

import "strings"

// Canonical difficulty labels used as keys in the problem-counts breakdown.
const (
	DifficultyAll    = "All"
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

func NormalizeDifficulty(difficulty string) string {

	difficulty = strings.ToLower(strings.TrimSpace(difficulty))

	difficultyMap := map[string]string{

		"all":   DifficultyAll,
		"total": DifficultyAll,
		"any":   DifficultyAll,

		"easy": DifficultyEasy,
		"ez":   DifficultyEasy,
		"e":    DifficultyEasy,

		"medium": DifficultyMedium,
		"med":    DifficultyMedium,
		"mid":    DifficultyMedium,
		"m":      DifficultyMedium,

		"hard": DifficultyHard,
		"hrd":  DifficultyHard,
		"h":    DifficultyHard,
	}

	if normalized, ok := difficultyMap[difficulty]; ok {
		return normalized
	}

	if difficulty == "" {
		return DifficultyAll
	}

	return strings.ToUpper(difficulty[:1]) + difficulty[1:]
}
