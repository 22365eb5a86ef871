// AngelaMos | 2026
// service.go

package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/cryptopay-app/api/internal/core"
)

var (
	ErrInvalidPlanType = errors.New("invalid plan type")
	ErrAlreadyActive   = errors.New("plan already active")
	ErrNotActive       = errors.New("plan not active")
	ErrInvalidStatus   = errors.New("invalid plan status")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Select creates a pending plan from the canonical catalog. No balance
// moves here; crediting happens only when an administrator confirms the
// simulated external payment by activating the plan.
func (s *Service) Select(
	ctx context.Context,
	userID int64,
	planType string,
) (*Plan, error) {
	def, ok := Lookup(planType)
	if !ok {
		return nil, fmt.Errorf("plan type %q: %w", planType, ErrInvalidPlanType)
	}

	plan := &Plan{
		UserID:           userID,
		PlanType:         def.Type,
		InvestmentAmount: def.InvestmentAmount,
		ExpectedReturn:   def.ExpectedReturn,
		ROI:              def.ROI,
		Status:           StatusPending,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *Service) Activate(ctx context.Context, planID int64) (*Plan, error) {
	plan, err := s.repo.Activate(ctx, planID)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("activate plan %d: %w", planID, ErrAlreadyActive)
		}
		return nil, err
	}

	return plan, nil
}

func (s *Service) Complete(ctx context.Context, planID int64) (*Plan, error) {
	plan, err := s.repo.Complete(ctx, planID)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("complete plan %d: %w", planID, ErrNotActive)
		}
		return nil, err
	}

	return plan, nil
}

func (s *Service) SetStatus(
	ctx context.Context,
	planID int64,
	status string,
) (*Plan, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}

	return s.repo.SetStatus(ctx, planID, status)
}

func (s *Service) GetByID(ctx context.Context, planID int64) (*Plan, error) {
	return s.repo.GetByID(ctx, planID)
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID int64,
) ([]Plan, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Dashboard returns one row per plan joined with its owner, for the admin
// view. Accounts holding several plans contribute several rows.
func (s *Service) Dashboard(ctx context.Context) ([]PlanWithOwner, error) {
	return s.repo.ListAllWithOwner(ctx)
}

func isConflict(err error) bool {
	return errors.Is(err, core.ErrConflict)
}
