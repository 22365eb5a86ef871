// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cryptopay-app/api/internal/auth"
	"github.com/cryptopay-app/api/internal/config"
	"github.com/cryptopay-app/api/internal/core"
	"github.com/cryptopay-app/api/internal/middleware"
	"github.com/cryptopay-app/api/internal/plan"
)

// PlanLister is the slice of the plan service the account views need.
type PlanLister interface {
	ListForUser(ctx context.Context, userID int64) ([]plan.Plan, error)
}

type Service struct {
	repo   Repository
	plans  PlanLister
	logger *slog.Logger
}

var (
	_ auth.AccountProvider       = (*Service)(nil)
	_ middleware.AccountResolver = (*Service)(nil)
)

func NewService(repo Repository, plans PlanLister, logger *slog.Logger) *Service {
	return &Service{repo: repo, plans: plans, logger: logger}
}

func (s *Service) CreateAccount(
	ctx context.Context,
	params auth.CreateAccountParams,
) (*auth.AccountInfo, error) {
	account := &Account{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		PhonePrefix:  params.PhonePrefix,
		PhoneNumber:  params.PhoneNumber,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

func (s *Service) AccountByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toAccountInfo(account), nil
}

func (s *Service) AccountByName(
	ctx context.Context,
	name string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toAccountInfo(account), nil
}

func (s *Service) SetPassword(
	ctx context.Context,
	email, passwordHash string,
) error {
	return s.repo.UpdatePasswordByEmail(ctx, email, passwordHash)
}

func (s *Service) IsAdministrator(
	ctx context.Context,
	userID int64,
) (bool, error) {
	account, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return account.IsAdmin, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) WalletBalance(
	ctx context.Context,
	userID int64,
) (decimal.Decimal, error) {
	return s.repo.GetWalletBalance(ctx, userID)
}

// AccountsWithPlans is the admin roster: every account with its plans
// nested, so the dashboard shows who holds what in one call.
func (s *Service) AccountsWithPlans(
	ctx context.Context,
) ([]AccountWithPlans, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AccountWithPlans, 0, len(accounts))
	for i := range accounts {
		plans, err := s.plans.ListForUser(ctx, accounts[i].ID)
		if err != nil {
			return nil, fmt.Errorf(
				"list plans for account %d: %w",
				accounts[i].ID,
				err,
			)
		}
		out = append(out, AccountWithPlans{
			Account: accounts[i],
			Plans:   plans,
		})
	}

	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// EnsureAdmin seeds the administrator account on startup. A duplicate
// email means the seed already ran, which is the normal case after the
// first boot.
func (s *Service) EnsureAdmin(
	ctx context.Context,
	cfg config.AdminConfig,
) error {
	hash, err := core.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	account := &Account{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: hash,
		IsAdmin:      true,
		PhonePrefix:  cfg.PhonePrefix,
		PhoneNumber:  cfg.PhoneNumber,
	}

	err = s.repo.Create(ctx, account)
	if errors.Is(err, core.ErrDuplicateKey) {
		s.logger.Debug("admin account already seeded", "email", cfg.Email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	s.logger.Info("admin account created", "email", cfg.Email)
	return nil
}

func toAccountInfo(account *Account) *auth.AccountInfo {
	return &auth.AccountInfo{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		IsAdmin:      account.IsAdmin,
	}
}

// AccountWithPlans pairs an account with every plan it holds.
type AccountWithPlans struct {
	Account Account
	Plans   []plan.Plan
}
