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

type passport struct {
	ID          int64      `db:"passport_id"`
	UserID      int64      `db:"user_id"`
	QuestID     int64      `db:"quest_id"`
	Status      string     `db:"status"`
	LastStage   int        `db:"last_stage"`
	StartedAt   time.Time  `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

func (p *passport) toModel() *model.Passport {
	return &model.Passport{
		ID:          p.ID,
		UserID:      p.UserID,
		QuestID:     p.QuestID,
		Status:      model.PassportStatus(p.Status),
		LastStage:   p.LastStage,
		StartedAt:   p.StartedAt,
		CompletedAt: p.CompletedAt,
	}
}

type passportSummary struct {
	passport
	QuestTitle   string  `db:"title"`
	ThumbnailURL string  `db:"thumbnail_url"`
	TotalDist    float64 `db:"total_dist"`
}

func (r *Repository) GetPassport(ctx context.Context, userID, questID int64) (*model.Passport, error) {
	var p passport
	query, args, err := squirrel.
		Select("*").
		From("user_passport").
		Where(squirrel.Eq{"user_id": userID, "quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &p, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p.toModel(), nil
}

// CreatePassport inserts the passport row for (userID, questID) or, when
// one already exists, returns it untouched. The unique pair constraint
// plus ON CONFLICT makes concurrent start calls safe.
func (r *Repository) CreatePassport(ctx context.Context, userID, questID int64) (*model.Passport, error) {
	var p passport

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("user_passport").
			SetMap(map[string]interface{}{
				"user_id":    userID,
				"quest_id":   questID,
				"status":     string(model.StatusInProgress),
				"last_stage": 0,
				"started_at": time.Now().UTC(),
			}).
			Suffix("ON CONFLICT (user_id, quest_id) DO NOTHING RETURNING *").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build passport insert query: %w", err)
		}

		err = tx.GetContext(ctx, &p, query, args...)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to insert passport: %w", err)
		}

		// Conflict: the pair already has a passport, return it unchanged.
		selectQuery, selectArgs, err := squirrel.
			Select("*").
			From("user_passport").
			Where(squirrel.Eq{"user_id": userID, "quest_id": questID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		return tx.GetContext(ctx, &p, selectQuery, selectArgs...)
	})
	if err != nil {
		return nil, err
	}

	return p.toModel(), nil
}

func (r *Repository) UpdateLastStage(ctx context.Context, userID, questID int64, lastStage int) error {
	query, args, err := squirrel.
		Update("user_passport").
		Set("last_stage", lastStage).
		Where(squirrel.Eq{"user_id": userID, "quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
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

	return nil
}

// CompletePassport flips the passport to COMPLETED and credits the
// quest's reward XP in one transaction. Completing an already completed
// quest is a no-op returning zero XP. The passport row is locked for the
// duration so concurrent completion calls cannot double-credit.
func (r *Repository) CompletePassport(ctx context.Context, userID, questID int64) (int, error) {
	var xpEarned int

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := squirrel.
			Select("*").
			From("user_passport").
			Where(squirrel.Eq{"user_id": userID, "quest_id": questID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var p passport
		err = tx.GetContext(ctx, &p, lockQuery, lockArgs...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if model.PassportStatus(p.Status) == model.StatusCompleted {
			xpEarned = 0
			return nil
		}

		updateQuery, updateArgs, err := squirrel.
			Update("user_passport").
			SetMap(map[string]interface{}{
				"status":       string(model.StatusCompleted),
				"completed_at": time.Now().UTC(),
			}).
			Where(squirrel.Eq{"passport_id": p.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to complete passport: %w", err)
		}

		rewardQuery, rewardArgs, err := squirrel.
			Select("reward_xp").
			From("quests").
			Where(squirrel.Eq{"quest_id": questID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var rewardXP sql.NullInt64
		err = tx.GetContext(ctx, &rewardXP, rewardQuery, rewardArgs...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		xpEarned = model.DefaultRewardXP
		if rewardXP.Valid {
			xpEarned = int(rewardXP.Int64)
		}

		return addUserXP(ctx, tx, userID, xpEarned)
	})
	if err != nil {
		return 0, err
	}

	return xpEarned, nil
}

func (r *Repository) ListPassports(ctx context.Context, userID int64) ([]*model.PassportSummary, error) {
	query, args, err := squirrel.
		Select(
			"p.passport_id", "p.user_id", "p.quest_id", "p.status",
			"p.last_stage", "p.started_at", "p.completed_at",
			"q.title", "q.thumbnail_url", "q.total_dist",
		).
		From("user_passport p").
		Join("quests q ON p.quest_id = q.quest_id").
		Where(squirrel.Eq{"p.user_id": userID}).
		OrderBy("p.started_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []passportSummary
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list passports: %w", err)
	}

	summaries := make([]*model.PassportSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &model.PassportSummary{
			Passport:     *row.passport.toModel(),
			QuestTitle:   row.QuestTitle,
			ThumbnailURL: row.ThumbnailURL,
			TotalDist:    row.TotalDist,
		}
	}

	return summaries, nil
}
