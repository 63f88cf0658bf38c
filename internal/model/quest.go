package model

import "time"

type QuestCategory string

const (
	CategoryHistory  QuestCategory = "HISTORY"
	CategoryCulinary QuestCategory = "CULINARY"
	CategoryMystery  QuestCategory = "MYSTERY"
	CategoryNature   QuestCategory = "NATURE"
)

func (c QuestCategory) Valid() bool {
	switch c {
	case CategoryHistory, CategoryCulinary, CategoryMystery, CategoryNature:
		return true
	}
	return false
}

type QuestDifficulty string

const (
	DifficultyEasy   QuestDifficulty = "EASY"
	DifficultyMedium QuestDifficulty = "MEDIUM"
	DifficultyHard   QuestDifficulty = "HARD"
)

func (d QuestDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DefaultRewardXP is credited on completion when a quest carries no
// explicit reward.
const DefaultRewardXP = 100

type Quest struct {
	ID                 int64
	Title              string
	Description        string
	Highlights         []string
	Category           QuestCategory
	Difficulty         QuestDifficulty
	ThumbnailURL       string
	StampURL           *string
	StartLocationName  string
	FinishLocationName string
	EstDuration        int
	TotalDist          float64
	Latitude           float64
	Longitude          float64
	RewardXP           int
	CreatedAt          time.Time
}
