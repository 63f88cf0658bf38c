package model

import "time"

// PassportStatus is the progression state of a (user, quest) pair.
// StatusNew is virtual: no passport row exists until the quest is started.
type PassportStatus string

const (
	StatusNew        PassportStatus = "NEW"
	StatusInProgress PassportStatus = "IN_PROGRESS"
	StatusCompleted  PassportStatus = "COMPLETED"
)

// CanTransitionTo reports whether a passport may move from s to next.
// Transitions only run forward; COMPLETED is terminal.
func (s PassportStatus) CanTransitionTo(next PassportStatus) bool {
	switch s {
	case StatusNew:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	case StatusCompleted:
		return false
	}
	return false
}

// Passport is the per-user-per-quest save state. LastStage is the index
// of the highest stage completed; CompletedAt is set exactly once, on
// the transition to COMPLETED.
type Passport struct {
	ID          int64
	UserID      int64
	QuestID     int64
	Status      PassportStatus
	LastStage   int
	StartedAt   time.Time
	CompletedAt *time.Time
}

// PassportSummary is a passport joined with its quest's display fields,
// as listed in the player's play history.
type PassportSummary struct {
	Passport
	QuestTitle   string
	ThumbnailURL string
	TotalDist    float64
}
