package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nusaquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type stage struct {
	ID            int64     `db:"stage_id"`
	QuestID       int64     `db:"quest_id"`
	Sequence      int       `db:"stage_seq"`
	LocationName  string    `db:"location_name"`
	RiddleText    string    `db:"riddle_text"`
	Latitude      float64   `db:"latitude"`
	Longitude     float64   `db:"longitude"`
	Radius        int       `db:"radius"`
	CorrectAnswer *string   `db:"correct_answer"`
	CreatedAt     time.Time `db:"created_at"`
}

func (s *stage) toModel() *model.Stage {
	return &model.Stage{
		ID:            s.ID,
		QuestID:       s.QuestID,
		Sequence:      s.Sequence,
		LocationName:  s.LocationName,
		RiddleText:    s.RiddleText,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		Radius:        s.Radius,
		CorrectAnswer: s.CorrectAnswer,
		CreatedAt:     s.CreatedAt,
	}
}

type hint struct {
	ID      int64  `db:"hint_id"`
	StageID int64  `db:"stage_id"`
	Text    string `db:"hint_text"`
	Cost    int    `db:"hint_cost"`
}

func (h *hint) toModel() model.Hint {
	return model.Hint{
		ID:      h.ID,
		StageID: h.StageID,
		Text:    h.Text,
		Cost:    h.Cost,
	}
}

// ListStagesByQuest returns the quest's stages in play order, each with
// its hints ordered cheapest first.
func (r *Repository) ListStagesByQuest(ctx context.Context, questID int64) ([]*model.Stage, error) {
	query, args, err := squirrel.
		Select("*").
		From("quest_stages").
		Where(squirrel.Eq{"quest_id": questID}).
		OrderBy("stage_seq ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var stages []stage
	err = r.db.SelectContext(ctx, &stages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	out := make([]*model.Stage, len(stages))
	for i := range stages {
		s := stages[i].toModel()

		hints, err := r.GetHintsByStage(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Hints = hints

		out[i] = s
	}

	return out, nil
}

func (r *Repository) GetStageByID(ctx context.Context, stageID int64) (*model.Stage, error) {
	var s stage
	query, args, err := squirrel.
		Select("*").
		From("quest_stages").
		Where(squirrel.Eq{"stage_id": stageID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &s, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := s.toModel()
	hints, err := r.GetHintsByStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	out.Hints = hints

	return out, nil
}

func (r *Repository) GetHintsByStage(ctx context.Context, stageID int64) ([]model.Hint, error) {
	query, args, err := squirrel.
		Select("*").
		From("stage_hints").
		Where(squirrel.Eq{"stage_id": stageID}).
		OrderBy("hint_cost ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var hints []hint
	err = r.db.SelectContext(ctx, &hints, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hints: %w", err)
	}

	out := make([]model.Hint, len(hints))
	for i := range hints {
		out[i] = hints[i].toModel()
	}

	return out, nil
}

// CreateStage inserts the stage and its hints as one transaction.
func (r *Repository) CreateStage(ctx context.Context, s *model.Stage, hints []model.HintDefinition) (int64, error) {
	var stageID int64

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("quest_stages").
			SetMap(map[string]interface{}{
				"quest_id":       s.QuestID,
				"stage_seq":      s.Sequence,
				"location_name":  s.LocationName,
				"riddle_text":    s.RiddleText,
				"latitude":       s.Latitude,
				"longitude":      s.Longitude,
				"radius":         s.Radius,
				"correct_answer": s.CorrectAnswer,
				"created_at":     time.Now().UTC(),
			}).
			Suffix("RETURNING stage_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build stage insert query: %w", err)
		}

		err = tx.GetContext(ctx, &stageID, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert stage: %w", err)
		}

		return insertHints(ctx, tx, stageID, hints)
	})
	if err != nil {
		return 0, err
	}

	return stageID, nil
}

// UpdateStage rewrites the stage's fields and replaces its hint set
// wholesale. Hints are never diffed: old rows are deleted and the new
// definitions reinserted, so previously issued hint ids become invalid.
func (r *Repository) UpdateStage(ctx context.Context, s *model.Stage, hints []model.HintDefinition) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("quest_stages").
			SetMap(map[string]interface{}{
				"stage_seq":      s.Sequence,
				"location_name":  s.LocationName,
				"riddle_text":    s.RiddleText,
				"latitude":       s.Latitude,
				"longitude":      s.Longitude,
				"radius":         s.Radius,
				"correct_answer": s.CorrectAnswer,
			}).
			Where(squirrel.Eq{"stage_id": s.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		deleteQuery, deleteArgs, err := squirrel.
			Delete("stage_hints").
			Where(squirrel.Eq{"stage_id": s.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...)
		if err != nil {
			return fmt.Errorf("failed to delete old hints: %w", err)
		}

		return insertHints(ctx, tx, s.ID, hints)
	})
}

func insertHints(ctx context.Context, tx *sqlx.Tx, stageID int64, hints []model.HintDefinition) error {
	if len(hints) == 0 {
		return nil
	}

	builder := squirrel.
		Insert("stage_hints").
		Columns("stage_id", "hint_text", "hint_cost")

	for _, h := range hints {
		builder = builder.Values(stageID, h.Text, h.Cost)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build hints insert query: %w", err)
	}

	_, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert hints: %w", err)
	}

	return nil
}

func (r *Repository) DeleteStage(ctx context.Context, stageID int64) error {
	query, args, err := squirrel.
		Delete("quest_stages").
		Where(squirrel.Eq{"stage_id": stageID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
