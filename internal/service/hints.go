package service

import (
	"context"
	"errors"
	"fmt"

	"nusaquest/internal/repository"
)

type HintService struct {
	repo HintRepository
}

func NewHintService(repo HintRepository) *HintService {
	return &HintService{
		repo: repo,
	}
}

// PurchaseHint converts XP into hint content. The whole exchange runs as
// one serialized transaction in the repository; on any failure no XP is
// debited and no hint text is returned.
func (s *HintService) PurchaseHint(ctx context.Context, userID, hintID int64) (string, int, error) {
	hintText, newXP, err := s.repo.PurchaseHint(ctx, userID, hintID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return "", 0, ErrHintNotFound
		case errors.Is(err, repository.ErrInsufficientXP):
			return "", 0, ErrInsufficientXP
		default:
			return "", 0, fmt.Errorf("failed to purchase hint: %w", err)
		}
	}

	return hintText, newXP, nil
}
