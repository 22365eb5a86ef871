// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the persisted account row. WalletBalance is a NUMERIC(10,2)
// column; decimal keeps the arithmetic exact on the way in and out.
type Account struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	PasswordHash  string          `db:"password_hash"`
	IsAdmin       bool            `db:"is_admin"`
	PhonePrefix   string          `db:"phone_prefix"`
	PhoneNumber   string          `db:"phone_number"`
	WalletBalance decimal.Decimal `db:"wallet_balance"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Role is derived from the admin flag; it is never stored on its own, so
// the two can never disagree.
func (a *Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
