package service

import (
	"context"
	"errors"
	"fmt"

	"nusaquest/internal/model"
	"nusaquest/internal/repository"
)

type ProgressionService struct {
	repo ProgressionRepository
}

func NewProgressionService(repo ProgressionRepository) *ProgressionService {
	return &ProgressionService{
		repo: repo,
	}
}

// StartQuest opens a passport for (userID, questID) or returns the
// existing one unchanged. A repeated start never resets progress.
func (s *ProgressionService) StartQuest(ctx context.Context, userID, questID int64) (*model.Passport, error) {
	existing, err := s.repo.GetPassport(ctx, userID, questID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get passport: %w", err)
	}

	if _, err := s.repo.GetQuestByID(ctx, questID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	passport, err := s.repo.CreatePassport(ctx, userID, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to create passport: %w", err)
	}

	return passport, nil
}

// GetStatus returns the passport when one exists; otherwise a synthetic
// NEW status, without persisting anything. Clients use this to probe
// resumability before starting.
func (s *ProgressionService) GetStatus(ctx context.Context, userID, questID int64) (*model.Passport, error) {
	passport, err := s.repo.GetPassport(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.Passport{
				UserID:    userID,
				QuestID:   questID,
				Status:    model.StatusNew,
				LastStage: 0,
			}, nil
		}
		return nil, fmt.Errorf("failed to get passport: %w", err)
	}

	return passport, nil
}

// SaveProgress overwrites last_stage with the supplied value. The value
// is not bounded against the quest's stage count; last-write-wins is the
// accepted contract for stage progress.
func (s *ProgressionService) SaveProgress(ctx context.Context, userID, questID int64, lastStage int) error {
	if lastStage < 0 {
		return ErrInvalidStage
	}

	err := s.repo.UpdateLastStage(ctx, userID, questID, lastStage)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPassportNotFound
		}
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// CompleteQuest transitions the passport to COMPLETED and credits the
// quest's reward XP, both as one atomic unit. A quest that is already
// completed yields zero XP so replayed calls cannot double-claim.
func (s *ProgressionService) CompleteQuest(ctx context.Context, userID, questID int64) (int, error) {
	xpEarned, err := s.repo.CompletePassport(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrPassportNotFound
		}
		return 0, fmt.Errorf("failed to complete quest: %w", err)
	}

	return xpEarned, nil
}

func (s *ProgressionService) ListPassports(ctx context.Context, userID int64) ([]*model.PassportSummary, error) {
	passports, err := s.repo.ListPassports(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list passports: %w", err)
	}
	return passports, nil
}
