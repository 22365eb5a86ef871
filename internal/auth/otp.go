// AngelaMos | 2026
// otp.go

package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/cryptopay-app/api/internal/core"
)

const (
	otpTTL        = 10 * time.Minute
	otpResendGate = 60 * time.Second
)

var (
	ErrOTPInvalid   = errors.New("otp does not match")
	ErrOTPExpired   = errors.New("otp expired")
	ErrOTPThrottled = errors.New("otp requested too recently")
)

type otpRecord struct {
	code     string
	issuedAt time.Time
}

// OTPStore holds at most one live reset code per email. Keys are exact
// account emails as stored in the ledger; the store never folds case,
// because the ledger's uniqueness is case-sensitive and two accounts
// must never share a bucket. Codes live in memory only; a restart voids
// outstanding codes, which is acceptable for a ten-minute credential.
type OTPStore struct {
	mu      sync.Mutex
	byEmail map[string]otpRecord
	now     func() time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{
		byEmail: make(map[string]otpRecord),
		now:     time.Now,
	}
}

// Request issues a fresh code for the email, replacing any outstanding
// one. Re-requesting within the resend gate is rejected so the mailer
// cannot be used as a spam relay.
func (s *OTPStore) Request(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if rec, ok := s.byEmail[email]; ok {
		if now.Sub(rec.issuedAt) < otpResendGate {
			return "", ErrOTPThrottled
		}
	}

	code, err := core.GenerateOTP()
	if err != nil {
		return "", err
	}

	s.byEmail[email] = otpRecord{code: code, issuedAt: now}
	return code, nil
}

// Verify checks the submitted code. Match is checked before expiry, so a
// wrong guess against an expired code reads as invalid, not expired. A
// correct-but-expired attempt deletes the record; a mismatch keeps it so
// the real code can still be used.
func (s *OTPStore) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byEmail[email]
	if !ok {
		return ErrOTPInvalid
	}

	if rec.code != code {
		return ErrOTPInvalid
	}

	if s.now().Sub(rec.issuedAt) > otpTTL {
		delete(s.byEmail, email)
		return ErrOTPExpired
	}

	delete(s.byEmail, email)
	return nil
}
