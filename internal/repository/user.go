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

type user struct {
	ID           int64     `db:"user_id"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	Role         string    `db:"role"`
	Level        int       `db:"level"`
	TotalXP      int       `db:"total_xp"`
	ProfileImage *string   `db:"profile_image"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *user) toModel() *model.User {
	return &model.User{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         model.UserRole(u.Role),
		Level:        u.Level,
		TotalXP:      u.TotalXP,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *Repository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	var id int64

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		existsQuery, existsArgs, err := squirrel.
			Select("user_id").
			From("users").
			Where(squirrel.Eq{"email": u.Email}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build email check query: %w", err)
		}

		var existingID int64
		err = tx.GetContext(ctx, &existingID, existsQuery, existsArgs...)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		query, args, err := squirrel.
			Insert("users").
			SetMap(map[string]interface{}{
				"full_name": u.FullName,
				"email":     u.Email,
				"password":  u.PasswordHash,
				"role":      string(u.Role),
				"level":     u.Level,
				"total_xp":  u.TotalXP,
			}).
			Suffix("RETURNING user_id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build user insert query: %w", err)
		}

		return tx.GetContext(ctx, &id, query, args...)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

func (r *Repository) UpdateUserProfile(ctx context.Context, userID int64, fullName string, profileImage *string) (*model.User, error) {
	var updated user

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		setMap := map[string]interface{}{
			"full_name": fullName,
		}
		if profileImage != nil {
			setMap["profile_image"] = *profileImage
		}

		query, args, err := squirrel.
			Update("users").
			SetMap(setMap).
			Where(squirrel.Eq{"user_id": userID}).
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

		selectQuery, selectArgs, err := squirrel.
			Select("*").
			From("users").
			Where(squirrel.Eq{"user_id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		return tx.GetContext(ctx, &updated, selectQuery, selectArgs...)
	})
	if err != nil {
		return nil, err
	}

	return updated.toModel(), nil
}

// lockUserXP reads the user's balance under a row lock so that
// check-then-debit sequences are serialized per user.
func lockUserXP(ctx context.Context, tx *sqlx.Tx, userID int64) (int, error) {
	query, args, err := squirrel.
		Select("total_xp").
		From("users").
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var totalXP int
	err = tx.GetContext(ctx, &totalXP, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return totalXP, nil
}

func addUserXP(ctx context.Context, tx *sqlx.Tx, userID int64, delta int) error {
	query, args, err := squirrel.
		Update("users").
		Set("total_xp", squirrel.Expr("total_xp + ?", delta)).
		Where(squirrel.Eq{"user_id": userID}).
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

	return nil
}
