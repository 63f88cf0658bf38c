package service

import (
	"context"
	"testing"
	"time"

	"nusaquest/internal/model"
	"nusaquest/internal/repository"
	"nusaquest/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProgressionService_StartQuest(t *testing.T) {
	startedAt := time.Now().UTC().Add(-time.Hour)

	tests := []struct {
		name             string
		userID           int64
		questID          int64
		setupMocks       func(mockRepo *mocks.MockProgressionRepository)
		expectedError    error
		expectedPassport *model.Passport
		checkMockCalls   func(t *testing.T, mockRepo *mocks.MockProgressionRepository)
	}{
		{
			name:    "Existing passport is returned unchanged",
			userID:  1,
			questID: 10,
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("GetPassport", mock.Anything, int64(1), int64(10)).
					Return(&model.Passport{
						ID:        5,
						UserID:    1,
						QuestID:   10,
						Status:    model.StatusInProgress,
						LastStage: 3,
						StartedAt: startedAt,
					}, nil)
			},
			expectedPassport: &model.Passport{
				ID:        5,
				UserID:    1,
				QuestID:   10,
				Status:    model.StatusInProgress,
				LastStage: 3,
				StartedAt: startedAt,
			},
			checkMockCalls: func(t *testing.T, mockRepo *mocks.MockProgressionRepository) {
				mockRepo.AssertNotCalled(t, "CreatePassport", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:    "First start creates a fresh passport",
			userID:  2,
			questID: 10,
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("GetPassport", mock.Anything, int64(2), int64(10)).
					Return(nil, repository.ErrNotFound)
				mockRepo.On("GetQuestByID", mock.Anything, int64(10)).
					Return(&model.Quest{ID: 10, Title: "Old Town Walk"}, nil)
				mockRepo.On("CreatePassport", mock.Anything, int64(2), int64(10)).
					Return(&model.Passport{
						ID:        6,
						UserID:    2,
						QuestID:   10,
						Status:    model.StatusInProgress,
						LastStage: 0,
					}, nil)
			},
			expectedPassport: &model.Passport{
				ID:        6,
				UserID:    2,
				QuestID:   10,
				Status:    model.StatusInProgress,
				LastStage: 0,
			},
		},
		{
			name:    "Unknown quest",
			userID:  3,
			questID: 99,
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("GetPassport", mock.Anything, int64(3), int64(99)).
					Return(nil, repository.ErrNotFound)
				mockRepo.On("GetQuestByID", mock.Anything, int64(99)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrQuestNotFound,
			checkMockCalls: func(t *testing.T, mockRepo *mocks.MockProgressionRepository) {
				mockRepo.AssertNotCalled(t, "CreatePassport", mock.Anything, mock.Anything, mock.Anything)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockProgressionRepository{}
			service := NewProgressionService(mockRepo)

			tt.setupMocks(mockRepo)

			passport, err := service.StartQuest(context.Background(), tt.userID, tt.questID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPassport, passport)
			}

			if tt.checkMockCalls != nil {
				tt.checkMockCalls(t, mockRepo)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProgressionService_StartQuest_IdempotentAcrossCalls(t *testing.T) {
	mockRepo := &mocks.MockProgressionRepository{}
	service := NewProgressionService(mockRepo)

	mockRepo.On("GetPassport", mock.Anything, int64(7), int64(20)).
		Return(&model.Passport{
			ID:        11,
			UserID:    7,
			QuestID:   20,
			Status:    model.StatusInProgress,
			LastStage: 4,
		}, nil)

	first, err := service.StartQuest(context.Background(), 7, 20)
	assert.NoError(t, err)

	second, err := service.StartQuest(context.Background(), 7, 20)
	assert.NoError(t, err)

	assert.Equal(t, first.LastStage, second.LastStage)
	assert.Equal(t, first.ID, second.ID)
	mockRepo.AssertNotCalled(t, "CreatePassport", mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressionService_GetStatus(t *testing.T) {
	t.Run("Never started returns synthetic NEW without side effects", func(t *testing.T) {
		mockRepo := &mocks.MockProgressionRepository{}
		service := NewProgressionService(mockRepo)

		mockRepo.On("GetPassport", mock.Anything, int64(1), int64(42)).
			Return(nil, repository.ErrNotFound)

		status, err := service.GetStatus(context.Background(), 1, 42)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusNew, status.Status)
		assert.Equal(t, 0, status.LastStage)
		assert.Nil(t, status.CompletedAt)
		mockRepo.AssertNotCalled(t, "CreatePassport", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("In progress returns stored passport", func(t *testing.T) {
		mockRepo := &mocks.MockProgressionRepository{}
		service := NewProgressionService(mockRepo)

		mockRepo.On("GetPassport", mock.Anything, int64(1), int64(42)).
			Return(&model.Passport{
				UserID:    1,
				QuestID:   42,
				Status:    model.StatusInProgress,
				LastStage: 2,
			}, nil)

		status, err := service.GetStatus(context.Background(), 1, 42)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, status.Status)
		assert.Equal(t, 2, status.LastStage)
		mockRepo.AssertExpectations(t)
	})
}

func TestProgressionService_SaveProgress(t *testing.T) {
	tests := []struct {
		name          string
		lastStage     int
		setupMocks    func(mockRepo *mocks.MockProgressionRepository)
		expectedError error
	}{
		{
			name:      "Overwrites last stage",
			lastStage: 5,
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("UpdateLastStage", mock.Anything, int64(1), int64(10), 5).
					Return(nil)
			},
		},
		{
			name:      "Lower value still wins",
			lastStage: 1,
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("UpdateLastStage", mock.Anything, int64(1), int64(10), 1).
					Return(nil)
			},
		},
		{
			name:          "Negative stage rejected before any write",
			lastStage:     -1,
			setupMocks:    func(mockRepo *mocks.MockProgressionRepository) {},
			expectedError: ErrInvalidStage,
		},
		{
			name:      "No passport",
			lastStage: 2,
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("UpdateLastStage", mock.Anything, int64(1), int64(10), 2).
					Return(repository.ErrNotFound)
			},
			expectedError: ErrPassportNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockProgressionRepository{}
			service := NewProgressionService(mockRepo)

			tt.setupMocks(mockRepo)

			err := service.SaveProgress(context.Background(), 1, 10, tt.lastStage)

			if tt.lastStage < 0 {
				assert.ErrorIs(t, err, ErrInvalidStage)
				mockRepo.AssertNotCalled(t, "UpdateLastStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProgressionService_CompleteQuest(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(mockRepo *mocks.MockProgressionRepository)
		expectedXP    int
		expectedError error
	}{
		{
			name: "First completion credits reward xp",
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("CompletePassport", mock.Anything, int64(1), int64(10)).
					Return(100, nil)
			},
			expectedXP: 100,
		},
		{
			name: "Replayed completion is a zero-xp no-op",
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("CompletePassport", mock.Anything, int64(1), int64(10)).
					Return(0, nil)
			},
			expectedXP: 0,
		},
		{
			name: "No passport",
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("CompletePassport", mock.Anything, int64(1), int64(10)).
					Return(0, repository.ErrNotFound)
			},
			expectedError: ErrPassportNotFound,
		},
		{
			name: "Mid-transaction failure surfaces with no xp",
			setupMocks: func(mockRepo *mocks.MockProgressionRepository) {
				mockRepo.On("CompletePassport", mock.Anything, int64(1), int64(10)).
					Return(0, assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockProgressionRepository{}
			service := NewProgressionService(mockRepo)

			tt.setupMocks(mockRepo)

			xp, err := service.CompleteQuest(context.Background(), 1, 10)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, 0, xp)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedXP, xp)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
