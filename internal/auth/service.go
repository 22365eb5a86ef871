// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cryptopay-app/api/internal/core"
	"github.com/cryptopay-app/api/internal/mailer"
	"github.com/cryptopay-app/api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
)

// AccountInfo is the slice of an account the auth flows need: enough to
// verify a password and mint an identity snapshot.
type AccountInfo struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

type AccountProvider interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (*AccountInfo, error)
	AccountByEmail(ctx context.Context, email string) (*AccountInfo, error)
	AccountByName(ctx context.Context, name string) (*AccountInfo, error)
	SetPassword(ctx context.Context, email, passwordHash string) error
}

type CreateAccountParams struct {
	Name         string
	Email        string
	PasswordHash string
	PhonePrefix  string
	PhoneNumber  string
}

type SessionStore interface {
	Create(ctx context.Context, identity *middleware.Identity) (string, error)
	Destroy(ctx context.Context, token string) error
}

type Service struct {
	accounts AccountProvider
	sessions SessionStore
	otps     *OTPStore
	mail     mailer.Sender
	logger   *slog.Logger
}

func NewService(
	accounts AccountProvider,
	sessions SessionStore,
	otps *OTPStore,
	mail mailer.Sender,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		otps:     otps,
		mail:     mail,
		logger:   logger,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*middleware.Identity, string, error) {
	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.CreateAccount(ctx, CreateAccountParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PhonePrefix:  req.PhonePrefix,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}

	identity := identityFor(account)

	token, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	// Welcome mail is best-effort; registration already committed.
	if err := s.mail.Send(
		account.Email,
		"Welcome to CryptoPay",
		welcomeBody(account.Name),
	); err != nil {
		s.logger.Warn("welcome email failed",
			"email", account.Email,
			"error", err,
		)
	}

	return identity, token, nil
}

// Login resolves the identifier as an email first, then as a display
// name. Password verification runs even when no account matched, so the
// two failure paths take the same time.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*middleware.Identity, string, error) {
	account, err := s.accounts.AccountByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return nil, "", err
		}
		account, err = s.accounts.AccountByName(ctx, req.Email)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, "", err
		}
	}

	var storedHash *string
	if account != nil {
		storedHash = &account.PasswordHash
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, storedHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !valid || account == nil {
		return nil, "", ErrInvalidCredentials
	}

	identity := identityFor(account)

	token, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	return identity, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// RequestPasswordReset issues an OTP and mails it. The account lookup
// happens first so codes are never minted for unknown emails, and the
// code is keyed by the stored email, never caller input.
func (s *Service) RequestPasswordReset(
	ctx context.Context,
	email string,
) error {
	account, err := s.accounts.AccountByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.otps.Request(account.Email)
	if err != nil {
		if errors.Is(err, ErrOTPThrottled) {
			return core.RateLimitedError(
				"a code was sent recently, wait before requesting another",
			)
		}
		return err
	}

	if err := s.mail.Send(
		account.Email,
		"Your CryptoPay password reset code",
		otpBody(code),
	); err != nil {
		return core.DeliveryFailedError("could not send the reset code")
	}

	return nil
}

// ResetPassword resolves the account before checking the code, so the
// code is always verified against the bucket of the account being
// reset. A code issued to one account can never reset another.
func (s *Service) ResetPassword(
	ctx context.Context,
	req VerifyOTPRequest,
) error {
	account, err := s.accounts.AccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return err
	}

	if err := s.otps.Verify(account.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, ErrOTPExpired):
			return core.ExpiredError("the code has expired, request a new one")
		case errors.Is(err, ErrOTPInvalid):
			return core.BadRequestError("the code is incorrect")
		default:
			return err
		}
	}

	hash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.accounts.SetPassword(ctx, account.Email, hash); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return core.PersistFailedError("could not update the password")
	}

	return nil
}

func identityFor(account *AccountInfo) *middleware.Identity {
	role := "user"
	if account.IsAdmin {
		role = "admin"
	}

	return &middleware.Identity{
		UserID:  account.ID,
		Name:    account.Name,
		Email:   account.Email,
		IsAdmin: account.IsAdmin,
		Role:    role,
	}
}

func welcomeBody(name string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your CryptoPay account is ready. Pick an investment plan to get started.</p>`,
		name,
	)
}

func otpBody(code string) string {
	return fmt.Sprintf(
		`<p>Your password reset code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>`,
		code,
	)
}
