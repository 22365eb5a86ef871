// AngelaMos | 2026
// service_test.go

package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptopay-app/api/internal/core"
)

// fakeRepo mimics the transactional repository in memory, including the
// conditional-transition rejection and wallet crediting.
type fakeRepo struct {
	plans   map[int64]*Plan
	wallets map[int64]int64
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		plans:   make(map[int64]*Plan),
		wallets: make(map[int64]int64),
		nextID:  1,
	}
}

func (f *fakeRepo) Create(_ context.Context, plan *Plan) error {
	plan.ID = f.nextID
	f.nextID++
	stored := *plan
	f.plans[plan.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %d: %w", id, core.ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (f *fakeRepo) ListForUser(_ context.Context, userID int64) ([]Plan, error) {
	out := []Plan{}
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllWithOwner(_ context.Context) ([]PlanWithOwner, error) {
	out := []PlanWithOwner{}
	for _, p := range f.plans {
		out = append(out, PlanWithOwner{Plan: *p})
	}
	return out, nil
}

func (f *fakeRepo) Activate(_ context.Context, planID int64) (*Plan, error) {
	return f.transition(planID, StatusPending, StatusActive, func(p *Plan) int64 {
		return p.InvestmentAmount
	})
}

func (f *fakeRepo) Complete(_ context.Context, planID int64) (*Plan, error) {
	return f.transition(planID, StatusActive, StatusCompleted, func(p *Plan) int64 {
		return p.ExpectedReturn
	})
}

func (f *fakeRepo) transition(
	planID int64,
	from, to string,
	credit func(*Plan) int64,
) (*Plan, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, fmt.Errorf("plan %d: %w", planID, core.ErrNotFound)
	}
	if p.Status != from {
		return nil, fmt.Errorf(
			"plan %d is %s, expected %s: %w",
			planID, p.Status, from, core.ErrConflict,
		)
	}
	p.Status = to
	f.wallets[p.UserID] += credit(p)
	out := *p
	return &out, nil
}

func (f *fakeRepo) SetStatus(
	_ context.Context,
	planID int64,
	status string,
) (*Plan, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, fmt.Errorf("plan %d: %w", planID, core.ErrNotFound)
	}
	p.Status = status
	if status == StatusActive {
		f.wallets[p.UserID] += p.InvestmentAmount
	}
	out := *p
	return &out, nil
}

func TestService_Select(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Select(ctx, 42, TypeGold)
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, TypeGold, p.PlanType)
	assert.Equal(t, int64(1000), p.InvestmentAmount)
	assert.Equal(t, int64(6500), p.ExpectedReturn)
	assert.Equal(t, int64(550), p.ROI)
	assert.Equal(t, StatusPending, p.Status)

	// No crediting on selection.
	assert.Zero(t, repo.wallets[42])
}

func TestService_Select_UnknownType(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Select(context.Background(), 1, "silver")
	assert.ErrorIs(t, err, ErrInvalidPlanType)
}

func TestService_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Select(ctx, 7, TypeBasic)
	require.NoError(t, err)

	activated, err := svc.Activate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, activated.Status)
	assert.Equal(t, int64(500), repo.wallets[7], "activation credits the investment")

	completed, err := svc.Complete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)
	assert.Equal(t, int64(2500), repo.wallets[7], "completion credits the expected return")
}

func TestService_Activate_Twice(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Select(ctx, 7, TypeDiamond)
	require.NoError(t, err)

	_, err = svc.Activate(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.Activate(ctx, p.ID)
	assert.ErrorIs(t, err, ErrAlreadyActive)

	// Wallet credited exactly once.
	assert.Equal(t, int64(5000), repo.wallets[7])
}

func TestService_Complete_NotActive(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Select(ctx, 7, TypeBasic)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotActive)
	assert.Zero(t, repo.wallets[7])
}

func TestService_Activate_Missing(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Activate(context.Background(), 999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Select(ctx, 3, TypeGold)
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, p.ID, StatusActive)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, updated.Status)
	assert.Equal(t, int64(1000), repo.wallets[3], "forcing active credits the investment")

	_, err = svc.SetStatus(ctx, p.ID, "frozen")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_MultiplePlansPerUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Select(ctx, 9, TypeBasic)
	require.NoError(t, err)
	_, err = svc.Select(ctx, 9, TypeGold)
	require.NoError(t, err)

	plans, err := svc.ListForUser(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}
