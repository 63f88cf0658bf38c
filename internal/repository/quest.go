package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nusaquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type quest struct {
	ID                 int64          `db:"quest_id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Highlights         pq.StringArray `db:"highlights"`
	Category           string         `db:"category"`
	Difficulty         string         `db:"difficulty"`
	ThumbnailURL       string         `db:"thumbnail_url"`
	StampURL           *string        `db:"stamp_url"`
	StartLocationName  string         `db:"start_location_name"`
	FinishLocationName string         `db:"finish_location_name"`
	EstDuration        int            `db:"est_duration"`
	TotalDist          float64        `db:"total_dist"`
	Latitude           float64        `db:"latitude"`
	Longitude          float64        `db:"longitude"`
	RewardXP           sql.NullInt64  `db:"reward_xp"`
	CreatedAt          time.Time      `db:"created_at"`
}

func (q *quest) toModel() *model.Quest {
	rewardXP := model.DefaultRewardXP
	if q.RewardXP.Valid {
		rewardXP = int(q.RewardXP.Int64)
	}

	return &model.Quest{
		ID:                 q.ID,
		Title:              q.Title,
		Description:        q.Description,
		Highlights:         q.Highlights,
		Category:           model.QuestCategory(q.Category),
		Difficulty:         model.QuestDifficulty(q.Difficulty),
		ThumbnailURL:       q.ThumbnailURL,
		StampURL:           q.StampURL,
		StartLocationName:  q.StartLocationName,
		FinishLocationName: q.FinishLocationName,
		EstDuration:        q.EstDuration,
		TotalDist:          q.TotalDist,
		Latitude:           q.Latitude,
		Longitude:          q.Longitude,
		RewardXP:           rewardXP,
		CreatedAt:          q.CreatedAt,
	}
}

func questSetMap(q *model.Quest) map[string]interface{} {
	return map[string]interface{}{
		"title":                q.Title,
		"description":          q.Description,
		"highlights":           pq.Array(q.Highlights),
		"category":             string(q.Category),
		"difficulty":           string(q.Difficulty),
		"thumbnail_url":        q.ThumbnailURL,
		"stamp_url":            q.StampURL,
		"start_location_name":  q.StartLocationName,
		"finish_location_name": q.FinishLocationName,
		"est_duration":         q.EstDuration,
		"total_dist":           q.TotalDist,
		"latitude":             q.Latitude,
		"longitude":            q.Longitude,
		"reward_xp":            q.RewardXP,
	}
}

func (r *Repository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select("*").
		From("quests").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var quests []quest
	err = r.db.SelectContext(ctx, &quests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	out := make([]*model.Quest, len(quests))
	for i := range quests {
		out[i] = quests[i].toModel()
	}

	return out, nil
}

func (r *Repository) GetQuestByID(ctx context.Context, questID int64) (*model.Quest, error) {
	var q quest
	query, args, err := squirrel.
		Select("*").
		From("quests").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &q, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return q.toModel(), nil
}

func (r *Repository) CreateQuest(ctx context.Context, q *model.Quest) (int64, error) {
	query, args, err := squirrel.
		Insert("quests").
		SetMap(questSetMap(q)).
		Suffix("RETURNING quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build quest insert query: %w", err)
	}

	var id int64
	err = r.db.GetContext(ctx, &id, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quest: %w", err)
	}

	return id, nil
}

func (r *Repository) UpdateQuest(ctx context.Context, q *model.Quest) error {
	query, args, err := squirrel.
		Update("quests").
		SetMap(questSetMap(q)).
		Where(squirrel.Eq{"quest_id": q.ID}).
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

func (r *Repository) DeleteQuest(ctx context.Context, questID int64) error {
	query, args, err := squirrel.
		Delete("quests").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
