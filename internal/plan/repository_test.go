// AngelaMos | 2026
// repository_test.go

package plan

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptopay-app/api/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func planRow(id, userID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "plan_type", "investment_amount",
		"expected_return", "roi", "status", "created_at",
	}).AddRow(id, userID, TypeBasic, 500, 2000, 300, status, time.Now())
}

func TestRepository_Activate_CreditsInOneTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(10), StatusActive, StatusPending).
		WillReturnRows(planRow(10, 7, StatusActive))
	mock.ExpectExec("UPDATE users SET wallet_balance").
		WithArgs(int64(7), int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan, err := repo.Activate(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, plan.Status)
	assert.Equal(t, int64(7), plan.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Activate_WrongState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(10), StatusActive, StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT status FROM user_plans").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(StatusActive))
	mock.ExpectRollback()

	_, err := repo.Activate(context.Background(), 10)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Activate_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(99), StatusActive, StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT status FROM user_plans").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	_, err := repo.Activate(context.Background(), 99)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Activate_CreditFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(10), StatusActive, StatusPending).
		WillReturnRows(planRow(10, 7, StatusActive))
	mock.ExpectExec("UPDATE users SET wallet_balance").
		WithArgs(int64(7), int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Activate(context.Background(), 10)
	assert.ErrorIs(t, err, core.ErrPersistFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Complete_CreditsExpectedReturn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(10), StatusCompleted, StatusActive).
		WillReturnRows(planRow(10, 7, StatusCompleted))
	mock.ExpectExec("UPDATE users SET wallet_balance").
		WithArgs(int64(7), int64(2000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan, err := repo.Complete(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, plan.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetStatus_ActiveCreditsInvestment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(10), StatusActive).
		WillReturnRows(planRow(10, 7, StatusActive))
	mock.ExpectExec("UPDATE users SET wallet_balance").
		WithArgs(int64(7), int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan, err := repo.SetStatus(context.Background(), 10, StatusActive)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, plan.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetStatus_NonActiveDoesNotCredit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE user_plans").
		WithArgs(int64(10), StatusCompleted).
		WillReturnRows(planRow(10, 7, StatusCompleted))
	mock.ExpectCommit()

	plan, err := repo.SetStatus(context.Background(), 10, StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, plan.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
