package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// PurchaseHint runs the balance-check-then-debit as one transaction.
// The user row is locked first, so concurrent purchases by the same user
// are serialized and the balance can never be driven below zero.
func (r *Repository) PurchaseHint(ctx context.Context, userID, hintID int64) (string, int, error) {
	var (
		hintText string
		newXP    int
	)

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Select("hint_text", "hint_cost").
			From("stage_hints").
			Where(squirrel.Eq{"hint_id": hintID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var h hint
		err = tx.GetContext(ctx, &h, query, args...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		totalXP, err := lockUserXP(ctx, tx, userID)
		if err != nil {
			return err
		}

		if totalXP < h.Cost {
			return ErrInsufficientXP
		}

		if err := addUserXP(ctx, tx, userID, -h.Cost); err != nil {
			return fmt.Errorf("failed to debit xp: %w", err)
		}

		hintText = h.Text
		newXP = totalXP - h.Cost
		return nil
	})
	if err != nil {
		return "", 0, err
	}

	return hintText, newXP, nil
}
