package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nusaquest/internal/model"
	"nusaquest/internal/repository"
)

type StageService struct {
	repo StageRepository
}

func NewStageService(repo StageRepository) *StageService {
	return &StageService{
		repo: repo,
	}
}

func (s *StageService) ListStagesByQuest(ctx context.Context, questID int64) ([]*model.Stage, error) {
	stages, err := s.repo.ListStagesByQuest(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	return stages, nil
}

func (s *StageService) GetStageByID(ctx context.Context, stageID int64) (*model.Stage, error) {
	stage, err := s.repo.GetStageByID(ctx, stageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	return stage, nil
}

func (s *StageService) GetStageHints(ctx context.Context, stageID int64) ([]model.Hint, error) {
	hints, err := s.repo.GetHintsByStage(ctx, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage hints: %w", err)
	}
	return hints, nil
}

func (s *StageService) CreateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) (int64, error) {
	if err := validateStage(stage); err != nil {
		return 0, err
	}
	applyStageDefaults(stage)

	id, err := s.repo.CreateStage(ctx, stage, normalizeHints(hints))
	if err != nil {
		return 0, fmt.Errorf("failed to create stage: %w", err)
	}

	return id, nil
}

func (s *StageService) UpdateStage(ctx context.Context, stage *model.Stage, hints []model.HintDefinition) error {
	if err := validateStage(stage); err != nil {
		return err
	}
	applyStageDefaults(stage)

	err := s.repo.UpdateStage(ctx, stage, normalizeHints(hints))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStageNotFound
		}
		return fmt.Errorf("failed to update stage: %w", err)
	}

	return nil
}

func (s *StageService) DeleteStage(ctx context.Context, stageID int64) error {
	if err := s.repo.DeleteStage(ctx, stageID); err != nil {
		return fmt.Errorf("failed to delete stage: %w", err)
	}
	return nil
}

// validateStage checks field content only; coordinate presence is the
// transport's concern. Zero is a legal value on both axes, so only the
// geographic range is enforced here.
func validateStage(stage *model.Stage) error {
	if stage.RiddleText == "" {
		return fmt.Errorf("riddle_text is required")
	}
	if stage.LocationName == "" {
		return fmt.Errorf("location_name is required")
	}
	if stage.Latitude < -90 || stage.Latitude > 90 {
		return fmt.Errorf("latitude out of range")
	}
	if stage.Longitude < -180 || stage.Longitude > 180 {
		return fmt.Errorf("longitude out of range")
	}
	return nil
}

func applyStageDefaults(stage *model.Stage) {
	if stage.Sequence == 0 {
		stage.Sequence = 1
	}
	if stage.Radius == 0 {
		stage.Radius = model.DefaultStageRadius
	}
}

// normalizeHints drops hints with blank text and prices unpriced ones at
// the default cost.
func normalizeHints(hints []model.HintDefinition) []model.HintDefinition {
	out := make([]model.HintDefinition, 0, len(hints))
	for _, h := range hints {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		if h.Cost <= 0 {
			h.Cost = model.DefaultHintCost
		}
		out = append(out, h)
	}
	return out
}
