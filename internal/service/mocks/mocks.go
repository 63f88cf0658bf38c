package mocks

import (
	"context"

	"nusaquest/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockProgressionRepository struct {
	mock.Mock
}

func (m *MockProgressionRepository) GetPassport(ctx context.Context, userID, questID int64) (*model.Passport, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Passport), args.Error(1)
}

func (m *MockProgressionRepository) CreatePassport(ctx context.Context, userID, questID int64) (*model.Passport, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Passport), args.Error(1)
}

func (m *MockProgressionRepository) UpdateLastStage(ctx context.Context, userID, questID int64, lastStage int) error {
	args := m.Called(ctx, userID, questID, lastStage)
	return args.Error(0)
}

func (m *MockProgressionRepository) CompletePassport(ctx context.Context, userID, questID int64) (int, error) {
	args := m.Called(ctx, userID, questID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressionRepository) ListPassports(ctx context.Context, userID int64) ([]*model.PassportSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PassportSummary), args.Error(1)
}

func (m *MockProgressionRepository) GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

type MockHintRepository struct {
	mock.Mock
}

func (m *MockHintRepository) PurchaseHint(ctx context.Context, userID, hintID int64) (string, int, error) {
	args := m.Called(ctx, userID, hintID)
	return args.String(0), args.Int(1), args.Error(2)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) ListUserRewards(ctx context.Context, userID int64) ([]model.UserReward, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserReward), args.Error(1)
}

func (m *MockRewardRepository) ListRewardsByQuest(ctx context.Context, questID int64) ([]model.Reward, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reward), args.Error(1)
}

func (m *MockRewardRepository) CreateReward(ctx context.Context, reward *model.Reward) (int64, error) {
	args := m.Called(ctx, reward)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRewardRepository) DeleteReward(ctx context.Context, rewardID int64) error {
	args := m.Called(ctx, rewardID)
	return args.Error(0)
}

func (m *MockRewardRepository) GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

type MockStageRepository struct {
	mock.Mock
}

func (m *MockStageRepository) ListStagesByQuest(ctx context.Context, questID int64) ([]*model.Stage, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Stage), args.Error(1)
}

func (m *MockStageRepository) GetStageByID(ctx context.Context, stageID int64) (*model.Stage, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stage), args.Error(1)
}

func (m *MockStageRepository) GetHintsByStage(ctx context.Context, stageID int64) ([]model.Hint, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hint), args.Error(1)
}

func (m *MockStageRepository) CreateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) (int64, error) {
	args := m.Called(ctx, stage, hints)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStageRepository) UpdateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) error {
	args := m.Called(ctx, stage, hints)
	return args.Error(0)
}

func (m *MockStageRepository) DeleteStage(ctx context.Context, stageID int64) error {
	args := m.Called(ctx, stageID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, userID int64, fullName string, profileImage *string) (*model.User, error) {
	args := m.Called(ctx, userID, fullName, profileImage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
