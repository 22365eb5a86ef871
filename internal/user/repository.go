// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/cryptopay-app/api/internal/core"
)

const accountColumns = `id, name, email, password_hash, is_admin,
       phone_prefix, phone_number, wallet_balance, created_at`

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByName(ctx context.Context, name string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Delete(ctx context.Context, id int64) error
	GetWalletBalance(ctx context.Context, id int64) (decimal.Decimal, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO users
			(name, email, password_hash, is_admin, phone_prefix, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, wallet_balance, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.IsAdmin,
		account.PhonePrefix,
		account.PhoneNumber,
	).Scan(&account.ID, &account.WalletBalance, &account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, accountColumns)
	return getOne(ctx, r.db, query, id)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE email = $1`,
		accountColumns,
	)
	return getOne(ctx, r.db, query, email)
}

func (r *repository) GetByName(
	ctx context.Context,
	name string,
) (*Account, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE name = $1 ORDER BY id LIMIT 1`,
		accountColumns,
	)
	return getOne(ctx, r.db, query, name)
}

func getOne(
	ctx context.Context,
	q core.DBTX,
	query string,
	arg any,
) (*Account, error) {
	var account Account
	err := q.GetContext(ctx, &account, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users ORDER BY created_at DESC`,
		accountColumns,
	)

	accounts := []Account{}
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

// Delete removes an account and its plans in one transaction. The plan
// delete is explicit even though the FK cascades, so a partial failure
// can never leave plans behind after the owner is gone.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(
			ctx,
			`DELETE FROM user_plans WHERE user_id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("delete account plans: %w", err)
		}

		result, err := tx.ExecContext(
			ctx,
			`DELETE FROM users WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("account %d: %w", id, core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) GetWalletBalance(
	ctx context.Context,
	id int64,
) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(
		ctx,
		&balance,
		`SELECT wallet_balance FROM users WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("get wallet balance: %w", core.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get wallet balance: %w", err)
	}

	return balance, nil
}

func (r *repository) UpdatePasswordByEmail(
	ctx context.Context,
	email, passwordHash string,
) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE users SET password_hash = $2 WHERE email = $1`,
		email,
		passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %s: %w", email, core.ErrNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
