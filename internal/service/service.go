package service

import (
	"context"
	"errors"

	"nusaquest/internal/model"
)

var (
	ErrQuestNotFound      = errors.New("quest not found")
	ErrPassportNotFound   = errors.New("passport not found, start quest first")
	ErrStageNotFound      = errors.New("stage not found")
	ErrHintNotFound       = errors.New("hint not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientXP     = errors.New("not enough xp to buy this hint")
	ErrInvalidStage       = errors.New("last_stage must not be negative")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type ProgressionServiceI interface {
	StartQuest(ctx context.Context, userID, questID int64) (*model.Passport, error)
	GetStatus(ctx context.Context, userID, questID int64) (*model.Passport, error)
	SaveProgress(ctx context.Context, userID, questID int64, lastStage int) error
	CompleteQuest(ctx context.Context, userID, questID int64) (int, error)
	ListPassports(ctx context.Context, userID int64) ([]*model.PassportSummary, error)
}

type ProgressionRepository interface {
	GetPassport(ctx context.Context, userID, questID int64) (*model.Passport, error)
	CreatePassport(ctx context.Context, userID, questID int64) (*model.Passport, error)
	UpdateLastStage(ctx context.Context, userID, questID int64, lastStage int) error
	CompletePassport(ctx context.Context, userID, questID int64) (int, error)
	ListPassports(ctx context.Context, userID int64) ([]*model.PassportSummary, error)
	GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error)
}

type HintServiceI interface {
	PurchaseHint(ctx context.Context, userID, hintID int64) (string, int, error)
}

type HintRepository interface {
	PurchaseHint(ctx context.Context, userID, hintID int64) (string, int, error)
}

type RewardServiceI interface {
	ListMyRewards(ctx context.Context, userID int64) ([]model.UserReward, error)
	ListByQuest(ctx context.Context, questID int64) ([]model.Reward, error)
	CreateReward(ctx context.Context, reward *model.Reward) (int64, error)
	DeleteReward(ctx context.Context, rewardID int64) error
}

type RewardRepository interface {
	ListUserRewards(ctx context.Context, userID int64) ([]model.UserReward, error)
	ListRewardsByQuest(ctx context.Context, questID int64) ([]model.Reward, error)
	CreateReward(ctx context.Context, reward *model.Reward) (int64, error)
	DeleteReward(ctx context.Context, rewardID int64) error
	GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error)
}

type QuestServiceI interface {
	ListQuests(ctx context.Context) ([]*model.Quest, error)
	GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error)
	CreateQuest(ctx context.Context, quest *model.Quest) (int64, error)
	UpdateQuest(ctx context.Context, quest *model.Quest) error
	DeleteQuest(ctx context.Context, questID int64) (*model.Quest, error)
}

type QuestRepository interface {
	ListQuests(ctx context.Context) ([]*model.Quest, error)
	GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error)
	CreateQuest(ctx context.Context, quest *model.Quest) (int64, error)
	UpdateQuest(ctx context.Context, quest *model.Quest) error
	DeleteQuest(ctx context.Context, questID int64) error
}

type StageServiceI interface {
	ListStagesByQuest(ctx context.Context, questID int64) ([]*model.Stage, error)
	GetStageByID(ctx context.Context, stageID int64) (*model.Stage, error)
	GetStageHints(ctx context.Context, stageID int64) ([]model.Hint, error)
	CreateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) (int64, error)
	UpdateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) error
	DeleteStage(ctx context.Context, stageID int64) error
}

type StageRepository interface {
	ListStagesByQuest(ctx context.Context, questID int64) ([]*model.Stage, error)
	GetStageByID(ctx context.Context, stageID int64) (*model.Stage, error)
	GetHintsByStage(ctx context.Context, stageID int64) ([]model.Hint, error)
	CreateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) (int64, error)
	UpdateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) error
	DeleteStage(ctx context.Context, stageID int64) error
}

type UserServiceI interface {
	Register(ctx context.Context, fullName, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, fullName string, profileImage *string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID int64, fullName string, profileImage *string) (*model.User, error)
}
