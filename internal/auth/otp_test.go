// AngelaMos | 2026
// otp_test.go

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOTPStore(start time.Time) (*OTPStore, *time.Time) {
	now := start
	store := NewOTPStore()
	store.now = func() time.Time { return now }
	return store, &now
}

func TestOTPStore_RequestAndVerify(t *testing.T) {
	store, _ := newTestOTPStore(time.Now())

	code, err := store.Request("user@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	err = store.Verify("user@example.com", code)
	assert.NoError(t, err)

	// Consumed on success; a replay fails.
	err = store.Verify("user@example.com", code)
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestOTPStore_Mismatch_KeepsRecord(t *testing.T) {
	store, _ := newTestOTPStore(time.Now())

	code, err := store.Request("user@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err = store.Verify("user@example.com", wrong)
	assert.ErrorIs(t, err, ErrOTPInvalid)

	// The real code still works after a failed guess.
	err = store.Verify("user@example.com", code)
	assert.NoError(t, err)
}

func TestOTPStore_Expiry(t *testing.T) {
	store, now := newTestOTPStore(time.Now())

	code, err := store.Request("user@example.com")
	require.NoError(t, err)

	*now = now.Add(otpTTL + time.Second)

	err = store.Verify("user@example.com", code)
	assert.ErrorIs(t, err, ErrOTPExpired)

	// The expired attempt deleted the record.
	err = store.Verify("user@example.com", code)
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestOTPStore_ExpiredMismatch_ReadsAsInvalid(t *testing.T) {
	store, now := newTestOTPStore(time.Now())

	code, err := store.Request("user@example.com")
	require.NoError(t, err)

	*now = now.Add(otpTTL + time.Second)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// Match is checked before expiry, so a wrong guess against an
	// expired code does not reveal that a code ever existed.
	err = store.Verify("user@example.com", wrong)
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestOTPStore_ResendGate(t *testing.T) {
	store, _ := newTestOTPStore(time.Now())

	first, err := store.Request("user@example.com")
	require.NoError(t, err)

	_, err = store.Request("user@example.com")
	assert.ErrorIs(t, err, ErrOTPThrottled)

	// The original code survives the throttled request.
	err = store.Verify("user@example.com", first)
	assert.NoError(t, err)

	// A successful verify consumes the record, gate included; the next
	// request mints a fresh code immediately.
	second, err := store.Request("user@example.com")
	require.NoError(t, err)
	require.Len(t, second, 6)
}

func TestOTPStore_ResendGate_ExpiresWithTime(t *testing.T) {
	store, now := newTestOTPStore(time.Now())

	_, err := store.Request("user@example.com")
	require.NoError(t, err)

	_, err = store.Request("user@example.com")
	assert.ErrorIs(t, err, ErrOTPThrottled)

	*now = now.Add(otpResendGate + time.Second)

	second, err := store.Request("user@example.com")
	require.NoError(t, err)
	require.Len(t, second, 6)
}

func TestOTPStore_ReplacesOutstandingCode(t *testing.T) {
	store, now := newTestOTPStore(time.Now())

	first, err := store.Request("user@example.com")
	require.NoError(t, err)

	*now = now.Add(otpResendGate + time.Second)

	second, err := store.Request("user@example.com")
	require.NoError(t, err)

	if first != second {
		err = store.Verify("user@example.com", first)
		assert.ErrorIs(t, err, ErrOTPInvalid, "old code is void once replaced")
	}

	err = store.Verify("user@example.com", second)
	assert.NoError(t, err)
}

func TestOTPStore_ExactKeying(t *testing.T) {
	store, _ := newTestOTPStore(time.Now())

	code, err := store.Request("Alice@example.com")
	require.NoError(t, err)

	// Case-variant emails are distinct accounts in the ledger, so they
	// must be distinct buckets here too.
	err = store.Verify("alice@example.com", code)
	assert.ErrorIs(t, err, ErrOTPInvalid)

	err = store.Verify("Alice@example.com", code)
	assert.NoError(t, err)
}

func TestOTPStore_UnknownEmail(t *testing.T) {
	store, _ := newTestOTPStore(time.Now())

	err := store.Verify("nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPInvalid)
}
