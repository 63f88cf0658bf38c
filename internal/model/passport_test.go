package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassportStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    PassportStatus
		to      PassportStatus
		allowed bool
	}{
		{"New to in progress", StatusNew, StatusInProgress, true},
		{"New straight to completed", StatusNew, StatusCompleted, false},
		{"In progress to completed", StatusInProgress, StatusCompleted, true},
		{"Completed back to in progress", StatusCompleted, StatusInProgress, false},
		{"Completed to completed", StatusCompleted, StatusCompleted, false},
		{"In progress to new", StatusInProgress, StatusNew, false},
		{"Unknown status", PassportStatus("PAUSED"), StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSuggestedRewardType(t *testing.T) {
	assert.Equal(t, RewardStory, SuggestedRewardType(CategoryHistory))
	assert.Equal(t, RewardVoucher, SuggestedRewardType(CategoryCulinary))
	assert.Equal(t, RewardStory, SuggestedRewardType(CategoryMystery))
	assert.Equal(t, RewardAudio, SuggestedRewardType(CategoryNature))
}
