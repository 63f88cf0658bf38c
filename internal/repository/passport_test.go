package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"nusaquest/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return &Repository{db: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

func passportRows(status string, lastStage int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"passport_id", "user_id", "quest_id", "status",
		"last_stage", "started_at", "completed_at",
	}).AddRow(int64(5), int64(1), int64(10), status, lastStage, time.Now().UTC(), nil)
}

func TestRepository_CompletePassport_RollbackOnCreditFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM user_passport`).
		WillReturnRows(passportRows(string(model.StatusInProgress), 4))
	mock.ExpectExec(`UPDATE user_passport`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT reward_xp FROM quests`).
		WillReturnRows(sqlmock.NewRows([]string{"reward_xp"}).AddRow(int64(100)))
	mock.ExpectExec(`UPDATE users`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	xp, err := repo.CompletePassport(context.Background(), 1, 10)

	assert.Error(t, err)
	assert.Zero(t, xp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CompletePassport_AlreadyCompletedCommitsNoWrites(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM user_passport`).
		WillReturnRows(passportRows(string(model.StatusCompleted), 7))
	mock.ExpectCommit()

	xp, err := repo.CompletePassport(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Zero(t, xp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CompletePassport_NullRewardFallsBackToDefault(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM user_passport`).
		WillReturnRows(passportRows(string(model.StatusInProgress), 4))
	mock.ExpectExec(`UPDATE user_passport`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT reward_xp FROM quests`).
		WillReturnRows(sqlmock.NewRows([]string{"reward_xp"}).AddRow(nil))
	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	xp, err := repo.CompletePassport(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, model.DefaultRewardXP, xp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PurchaseHint_RollbackOnDebitFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT hint_text, hint_cost FROM stage_hints`).
		WillReturnRows(sqlmock.NewRows([]string{"hint_text", "hint_cost"}).
			AddRow("Look behind the statue", 10))
	mock.ExpectQuery(`SELECT total_xp FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"total_xp"}).AddRow(15))
	mock.ExpectExec(`UPDATE users`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	text, newXP, err := repo.PurchaseHint(context.Background(), 1, 100)

	assert.Error(t, err)
	assert.Empty(t, text)
	assert.Zero(t, newXP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PurchaseHint_InsufficientBalanceRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT hint_text, hint_cost FROM stage_hints`).
		WillReturnRows(sqlmock.NewRows([]string{"hint_text", "hint_cost"}).
			AddRow("Look behind the statue", 10))
	mock.ExpectQuery(`SELECT total_xp FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"total_xp"}).AddRow(5))
	mock.ExpectRollback()

	text, newXP, err := repo.PurchaseHint(context.Background(), 1, 100)

	assert.ErrorIs(t, err, ErrInsufficientXP)
	assert.Empty(t, text)
	assert.Zero(t, newXP)
	assert.NoError(t, mock.ExpectationsWereMet())
}
