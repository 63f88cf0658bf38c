package model

import "time"

// Stage is one geolocated riddle step of a quest. Stages within a quest
// are ordered by Sequence and must be played in that order.
type Stage struct {
	ID            int64
	QuestID       int64
	Sequence      int
	LocationName  string
	RiddleText    string
	Latitude      float64
	Longitude     float64
	Radius        int
	CorrectAnswer *string
	CreatedAt     time.Time
	Hints         []Hint
}

// Hint is a purchasable clue attached to a stage, priced in XP. Hints
// are surfaced cheapest first. The whole hint set of a stage is replaced
// on every edit, so hint ids must not be cached across sessions.
type Hint struct {
	ID      int64
	StageID int64
	Text    string
	Cost    int
}

// HintDefinition is an authoring-time hint before it has an id.
type HintDefinition struct {
	Text string `json:"text"`
	Cost int    `json:"cost"`
}

// DefaultHintCost is applied to authored hints without an explicit price.
const DefaultHintCost = 10

// DefaultStageRadius is the acceptance radius in meters when the author
// does not provide one.
const DefaultStageRadius = 50
