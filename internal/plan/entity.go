// AngelaMos | 2026
// entity.go

package plan

import (
	"time"
)

// Plan statuses form a one-way ladder: pending → active → completed.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Plan struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	PlanType         string    `db:"plan_type"`
	InvestmentAmount int64     `db:"investment_amount"`
	ExpectedReturn   int64     `db:"expected_return"`
	ROI              int64     `db:"roi"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
}

func (p *Plan) IsPending() bool {
	return p.Status == StatusPending
}

func (p *Plan) IsActive() bool {
	return p.Status == StatusActive
}

func (p *Plan) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// PlanWithOwner is a dashboard row: one row per plan, joined with the
// owning account. Owner fields are nullable under the left join, though
// cascading account deletion prevents orphans in practice.
type PlanWithOwner struct {
	Plan
	OwnerName  *string `db:"owner_name"`
	OwnerEmail *string `db:"owner_email"`
}
