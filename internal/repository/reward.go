package repository

import (
	"context"
	"fmt"

	"nusaquest/internal/model"

	"github.com/Masterminds/squirrel"
)

type reward struct {
	ID          int64   `db:"reward_id"`
	QuestID     int64   `db:"quest_id"`
	Type        string  `db:"type"`
	ContentText *string `db:"content_text"`
	MediaURL    *string `db:"media_url"`
	VoucherCode *string `db:"voucher_code"`
}

func (rw *reward) toModel() model.Reward {
	return model.Reward{
		ID:          rw.ID,
		QuestID:     rw.QuestID,
		Type:        model.RewardType(rw.Type),
		ContentText: rw.ContentText,
		MediaURL:    rw.MediaURL,
		VoucherCode: rw.VoucherCode,
	}
}

type userReward struct {
	reward
	QuestTitle string `db:"title"`
}

func (r *Repository) ListRewardsByQuest(ctx context.Context, questID int64) ([]model.Reward, error) {
	query, args, err := squirrel.
		Select("*").
		From("rewards").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rewards []reward
	err = r.db.SelectContext(ctx, &rewards, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	out := make([]model.Reward, len(rewards))
	for i := range rewards {
		out[i] = rewards[i].toModel()
	}

	return out, nil
}

// ListUserRewards returns rewards for quests this user has completed,
// most recently completed first. Eligibility is derived from the
// passport join at query time, never stored on the reward.
func (r *Repository) ListUserRewards(ctx context.Context, userID int64) ([]model.UserReward, error) {
	query, args, err := squirrel.
		Select(
			"r.reward_id", "r.quest_id", "r.type",
			"r.content_text", "r.media_url", "r.voucher_code",
			"q.title",
		).
		From("rewards r").
		Join("quests q ON r.quest_id = q.quest_id").
		Join("user_passport p ON p.quest_id = q.quest_id").
		Where(squirrel.Eq{
			"p.user_id": userID,
			"p.status":  string(model.StatusCompleted),
		}).
		OrderBy("p.completed_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []userReward
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user rewards: %w", err)
	}

	out := make([]model.UserReward, len(rows))
	for i, row := range rows {
		out[i] = model.UserReward{
			Reward:     row.reward.toModel(),
			QuestTitle: row.QuestTitle,
		}
	}

	return out, nil
}

func (r *Repository) CreateReward(ctx context.Context, rw *model.Reward) (int64, error) {
	query, args, err := squirrel.
		Insert("rewards").
		SetMap(map[string]interface{}{
			"quest_id":     rw.QuestID,
			"type":         string(rw.Type),
			"content_text": rw.ContentText,
			"media_url":    rw.MediaURL,
			"voucher_code": rw.VoucherCode,
		}).
		Suffix("RETURNING reward_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build reward insert query: %w", err)
	}

	var id int64
	err = r.db.GetContext(ctx, &id, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reward: %w", err)
	}

	return id, nil
}

func (r *Repository) DeleteReward(ctx context.Context, rewardID int64) error {
	query, args, err := squirrel.
		Delete("rewards").
		Where(squirrel.Eq{"reward_id": rewardID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
