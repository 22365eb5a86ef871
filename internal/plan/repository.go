// AngelaMos | 2026
// repository.go

package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cryptopay-app/api/internal/core"
)

const planColumns = `id, user_id, plan_type, investment_amount,
       expected_return, roi, status, created_at`

type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id int64) (*Plan, error)
	ListForUser(ctx context.Context, userID int64) ([]Plan, error)
	ListAllWithOwner(ctx context.Context) ([]PlanWithOwner, error)
	Activate(ctx context.Context, planID int64) (*Plan, error)
	Complete(ctx context.Context, planID int64) (*Plan, error)
	SetStatus(ctx context.Context, planID int64, status string) (*Plan, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, plan *Plan) error {
	query := `
		INSERT INTO user_plans
			(user_id, plan_type, investment_amount, expected_return, roi, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.GetContext(ctx, plan, query,
		plan.UserID,
		plan.PlanType,
		plan.InvestmentAmount,
		plan.ExpectedReturn,
		plan.ROI,
		plan.Status,
	)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Plan, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM user_plans WHERE id = $1`,
		planColumns,
	)

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	return &plan, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID int64,
) ([]Plan, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM user_plans WHERE user_id = $1 ORDER BY created_at DESC`,
		planColumns,
	)

	plans := []Plan{}
	if err := r.db.SelectContext(ctx, &plans, query, userID); err != nil {
		return nil, fmt.Errorf("list plans for user: %w", err)
	}

	return plans, nil
}

func (r *repository) ListAllWithOwner(
	ctx context.Context,
) ([]PlanWithOwner, error) {
	query := `
		SELECT p.id, p.user_id, p.plan_type, p.investment_amount,
		       p.expected_return, p.roi, p.status, p.created_at,
		       u.name AS owner_name, u.email AS owner_email
		FROM user_plans p
		LEFT JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows := []PlanWithOwner{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list plans with owner: %w", err)
	}

	return rows, nil
}

// Activate moves a pending plan to active and credits the owner's wallet
// by the investment amount. Both writes share one transaction, so the
// status change and the credit commit or roll back together.
func (r *repository) Activate(
	ctx context.Context,
	planID int64,
) (*Plan, error) {
	return r.transition(
		ctx,
		planID,
		StatusPending,
		StatusActive,
		func(p *Plan) int64 { return p.InvestmentAmount },
	)
}

// Complete moves an active plan to completed and credits the owner's
// wallet by the expected return.
func (r *repository) Complete(
	ctx context.Context,
	planID int64,
) (*Plan, error) {
	return r.transition(
		ctx,
		planID,
		StatusActive,
		StatusCompleted,
		func(p *Plan) int64 { return p.ExpectedReturn },
	)
}

func (r *repository) transition(
	ctx context.Context,
	planID int64,
	from, to string,
	credit func(*Plan) int64,
) (*Plan, error) {
	var plan Plan

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Conditional update: a plan in any other state matches no row,
		// which is how double activation is rejected.
		query := fmt.Sprintf(`
			UPDATE user_plans
			SET status = $2
			WHERE id = $1 AND status = $3
			RETURNING %s`, planColumns)

		err := tx.GetContext(ctx, &plan, query, planID, to, from)
		if errors.Is(err, sql.ErrNoRows) {
			return r.classifyMissedTransition(ctx, tx, planID, from)
		}
		if err != nil {
			return fmt.Errorf("update plan status: %w", err)
		}

		return creditWallet(ctx, tx, plan.UserID, credit(&plan))
	})
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *repository) classifyMissedTransition(
	ctx context.Context,
	tx core.DBTX,
	planID int64,
	want string,
) error {
	var current string
	err := tx.GetContext(
		ctx,
		&current,
		`SELECT status FROM user_plans WHERE id = $1`,
		planID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plan %d: %w", planID, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read plan status: %w", err)
	}

	return fmt.Errorf(
		"plan %d is %s, expected %s: %w",
		planID,
		current,
		want,
		core.ErrConflict,
	)
}

// SetStatus is the raw administrative override: an unconditional status
// write. Setting a plan to active still credits the investment amount,
// matching the trusted-admin payment confirmation semantics.
func (r *repository) SetStatus(
	ctx context.Context,
	planID int64,
	status string,
) (*Plan, error) {
	var plan Plan

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := fmt.Sprintf(`
			UPDATE user_plans
			SET status = $2
			WHERE id = $1
			RETURNING %s`, planColumns)

		err := tx.GetContext(ctx, &plan, query, planID, status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("plan %d: %w", planID, core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("set plan status: %w", err)
		}

		if status == StatusActive {
			return creditWallet(ctx, tx, plan.UserID, plan.InvestmentAmount)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

// creditWallet applies a delta as a single atomic increment; the balance
// is never read and written back separately.
func creditWallet(
	ctx context.Context,
	tx core.DBTX,
	userID, amount int64,
) error {
	result, err := tx.ExecContext(
		ctx,
		`UPDATE users SET wallet_balance = wallet_balance + $2 WHERE id = $1`,
		userID,
		amount,
	)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("credit wallet for user %d: %w", userID, core.ErrPersistFailed)
	}

	return nil
}
