package service

import (
	"context"
	"errors"
	"fmt"

	"nusaquest/internal/model"
	"nusaquest/internal/repository"
)

type RewardService struct {
	repo RewardRepository
}

func NewRewardService(repo RewardRepository) *RewardService {
	return &RewardService{
		repo: repo,
	}
}

// ListMyRewards is the player's reward inventory: rewards of quests
// whose passport is COMPLETED, most recent completion first.
func (s *RewardService) ListMyRewards(ctx context.Context, userID int64) ([]model.UserReward, error) {
	rewards, err := s.repo.ListUserRewards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user rewards: %w", err)
	}
	return rewards, nil
}

func (s *RewardService) ListByQuest(ctx context.Context, questID int64) ([]model.Reward, error) {
	rewards, err := s.repo.ListRewardsByQuest(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest rewards: %w", err)
	}
	return rewards, nil
}

// CreateReward attaches a reward to a quest. When no type is given the
// quest category's suggested type is used; an explicit type wins.
func (s *RewardService) CreateReward(ctx context.Context, reward *model.Reward) (int64, error) {
	quest, err := s.repo.GetQuestByID(ctx, reward.QuestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrQuestNotFound
		}
		return 0, fmt.Errorf("failed to get quest: %w", err)
	}

	if reward.Type == "" {
		reward.Type = model.SuggestedRewardType(quest.Category)
	}
	if !reward.Type.Valid() {
		return 0, fmt.Errorf("invalid reward type %q", reward.Type)
	}

	id, err := s.repo.CreateReward(ctx, reward)
	if err != nil {
		return 0, fmt.Errorf("failed to create reward: %w", err)
	}

	return id, nil
}

func (s *RewardService) DeleteReward(ctx context.Context, rewardID int64) error {
	if err := s.repo.DeleteReward(ctx, rewardID); err != nil {
		return fmt.Errorf("failed to delete reward: %w", err)
	}
	return nil
}
