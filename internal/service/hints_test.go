package service

import (
	"context"
	"testing"

	"nusaquest/internal/repository"
	"nusaquest/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHintService_PurchaseHint(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		hintID        int64
		setupMocks    func(mockRepo *mocks.MockHintRepository)
		expectedText  string
		expectedXP    int
		expectedError error
	}{
		{
			name:   "Balance covers cost",
			userID: 1,
			hintID: 100,
			setupMocks: func(mockRepo *mocks.MockHintRepository) {
				mockRepo.On("PurchaseHint", mock.Anything, int64(1), int64(100)).
					Return("Look behind the statue", 5, nil)
			},
			expectedText: "Look behind the statue",
			expectedXP:   5,
		},
		{
			name:   "Insufficient balance leaves balance untouched",
			userID: 1,
			hintID: 101,
			setupMocks: func(mockRepo *mocks.MockHintRepository) {
				mockRepo.On("PurchaseHint", mock.Anything, int64(1), int64(101)).
					Return("", 0, repository.ErrInsufficientXP)
			},
			expectedError: ErrInsufficientXP,
		},
		{
			name:   "Unknown hint",
			userID: 1,
			hintID: 999,
			setupMocks: func(mockRepo *mocks.MockHintRepository) {
				mockRepo.On("PurchaseHint", mock.Anything, int64(1), int64(999)).
					Return("", 0, repository.ErrNotFound)
			},
			expectedError: ErrHintNotFound,
		},
		{
			name:   "Transaction failure",
			userID: 1,
			hintID: 102,
			setupMocks: func(mockRepo *mocks.MockHintRepository) {
				mockRepo.On("PurchaseHint", mock.Anything, int64(1), int64(102)).
					Return("", 0, assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockHintRepository{}
			service := NewHintService(mockRepo)

			tt.setupMocks(mockRepo)

			text, newXP, err := service.PurchaseHint(context.Background(), tt.userID, tt.hintID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, text)
				assert.Zero(t, newXP)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedText, text)
				assert.Equal(t, tt.expectedXP, newXP)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Mirrors the 15 XP wallet scenario: a 10 XP hint succeeds, the next one
// is rejected and the balance stays at 5.
func TestHintService_PurchaseHint_SequentialSpending(t *testing.T) {
	mockRepo := &mocks.MockHintRepository{}
	service := NewHintService(mockRepo)

	mockRepo.On("PurchaseHint", mock.Anything, int64(1), int64(200)).
		Return("First clue", 5, nil).Once()
	mockRepo.On("PurchaseHint", mock.Anything, int64(1), int64(201)).
		Return("", 0, repository.ErrInsufficientXP).Once()

	text, newXP, err := service.PurchaseHint(context.Background(), 1, 200)
	assert.NoError(t, err)
	assert.Equal(t, "First clue", text)
	assert.Equal(t, 5, newXP)

	text, newXP, err = service.PurchaseHint(context.Background(), 1, 201)
	assert.ErrorIs(t, err, ErrInsufficientXP)
	assert.Empty(t, text)
	assert.Zero(t, newXP)

	mockRepo.AssertExpectations(t)
}
