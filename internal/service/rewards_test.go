package service

import (
	"context"
	"testing"

	"nusaquest/internal/model"
	"nusaquest/internal/repository"
	"nusaquest/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRewardService_ListMyRewards(t *testing.T) {
	mockRepo := &mocks.MockRewardRepository{}
	service := NewRewardService(mockRepo)

	code := "NUSA-50"
	mockRepo.On("ListUserRewards", mock.Anything, int64(1)).
		Return([]model.UserReward{
			{
				Reward: model.Reward{
					ID:          1,
					QuestID:     10,
					Type:        model.RewardVoucher,
					VoucherCode: &code,
				},
				QuestTitle: "Street Food Trail",
			},
		}, nil)

	rewards, err := service.ListMyRewards(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, rewards, 1)
	assert.Equal(t, "Street Food Trail", rewards[0].QuestTitle)
	assert.Equal(t, model.RewardVoucher, rewards[0].Type)
	mockRepo.AssertExpectations(t)
}

func TestRewardService_CreateReward(t *testing.T) {
	tests := []struct {
		name          string
		reward        *model.Reward
		setupMocks    func(mockRepo *mocks.MockRewardRepository)
		expectedID    int64
		expectError   bool
		expectedError error
	}{
		{
			name:   "Valid reward",
			reward: &model.Reward{QuestID: 10, Type: model.RewardStory},
			setupMocks: func(mockRepo *mocks.MockRewardRepository) {
				mockRepo.On("GetQuestByID", mock.Anything, int64(10)).
					Return(&model.Quest{ID: 10}, nil)
				mockRepo.On("CreateReward", mock.Anything, mock.Anything).
					Return(int64(3), nil)
			},
			expectedID: 3,
		},
		{
			name:   "Empty type falls back to category suggestion",
			reward: &model.Reward{QuestID: 11},
			setupMocks: func(mockRepo *mocks.MockRewardRepository) {
				mockRepo.On("GetQuestByID", mock.Anything, int64(11)).
					Return(&model.Quest{ID: 11, Category: model.CategoryCulinary}, nil)
				mockRepo.On("CreateReward", mock.Anything, mock.MatchedBy(func(r *model.Reward) bool {
					return r.Type == model.RewardVoucher
				})).Return(int64(4), nil)
			},
			expectedID: 4,
		},
		{
			name:   "Invalid type rejected",
			reward: &model.Reward{QuestID: 10, Type: "GOLD"},
			setupMocks: func(mockRepo *mocks.MockRewardRepository) {
				mockRepo.On("GetQuestByID", mock.Anything, int64(10)).
					Return(&model.Quest{ID: 10, Category: model.CategoryHistory}, nil)
			},
			expectError: true,
		},
		{
			name:   "Unknown quest",
			reward: &model.Reward{QuestID: 99, Type: model.RewardAudio},
			setupMocks: func(mockRepo *mocks.MockRewardRepository) {
				mockRepo.On("GetQuestByID", mock.Anything, int64(99)).
					Return(nil, repository.ErrNotFound)
			},
			expectError:   true,
			expectedError: ErrQuestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockRewardRepository{}
			service := NewRewardService(mockRepo)

			tt.setupMocks(mockRepo)

			id, err := service.CreateReward(context.Background(), tt.reward)

			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				mockRepo.AssertNotCalled(t, "CreateReward", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
