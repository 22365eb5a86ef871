// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptopay-app/api/internal/plan"
)

type AccountResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	PhonePrefix   string          `json:"phone_prefix"`
	PhoneNumber   string          `json:"phone_number"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

type AccountWithPlansResponse struct {
	AccountResponse
	Plans []plan.PlanResponse `json:"plans"`
}

type WalletResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          a.Role(),
		PhonePrefix:   a.PhonePrefix,
		PhoneNumber:   a.PhoneNumber,
		WalletBalance: a.WalletBalance,
		CreatedAt:     a.CreatedAt,
	}
}

func ToAccountWithPlansResponse(row *AccountWithPlans) AccountWithPlansResponse {
	return AccountWithPlansResponse{
		AccountResponse: ToAccountResponse(&row.Account),
		Plans:           plan.ToPlanResponses(row.Plans),
	}
}

func ToAccountWithPlansResponses(
	rows []AccountWithPlans,
) []AccountWithPlansResponse {
	out := make([]AccountWithPlansResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAccountWithPlansResponse(&rows[i]))
	}
	return out
}
