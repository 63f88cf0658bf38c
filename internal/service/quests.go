package service

import (
	"context"
	"errors"
	"fmt"

	"nusaquest/internal/model"
	"nusaquest/internal/repository"
)

type QuestService struct {
	repo QuestRepository
}

func NewQuestService(repo QuestRepository) *QuestService {
	return &QuestService{
		repo: repo,
	}
}

func (s *QuestService) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	quests, err := s.repo.ListQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	return quests, nil
}

func (s *QuestService) GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error) {
	quest, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}
	return quest, nil
}

func (s *QuestService) CreateQuest(ctx context.Context, quest *model.Quest) (int64, error) {
	if quest.Title == "" {
		return 0, fmt.Errorf("title is required")
	}
	if !quest.Category.Valid() {
		return 0, fmt.Errorf("invalid category %q", quest.Category)
	}
	if !quest.Difficulty.Valid() {
		return 0, fmt.Errorf("invalid difficulty %q", quest.Difficulty)
	}
	if quest.ThumbnailURL == "" {
		return 0, fmt.Errorf("thumbnail is required")
	}
	if quest.RewardXP < 0 {
		return 0, fmt.Errorf("reward_xp must not be negative")
	}
	if quest.RewardXP == 0 {
		quest.RewardXP = model.DefaultRewardXP
	}

	id, err := s.repo.CreateQuest(ctx, quest)
	if err != nil {
		return 0, fmt.Errorf("failed to create quest: %w", err)
	}

	return id, nil
}

func (s *QuestService) UpdateQuest(ctx context.Context, quest *model.Quest) error {
	if !quest.Category.Valid() {
		return fmt.Errorf("invalid category %q", quest.Category)
	}
	if !quest.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q", quest.Difficulty)
	}

	err := s.repo.UpdateQuest(ctx, quest)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("failed to update quest: %w", err)
	}

	return nil
}

// DeleteQuest removes the quest and returns the deleted record so the
// caller can clean up its stored media files.
func (s *QuestService) DeleteQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	quest, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	if err := s.repo.DeleteQuest(ctx, questID); err != nil {
		return nil, fmt.Errorf("failed to delete quest: %w", err)
	}

	return quest, nil
}
