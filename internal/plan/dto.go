// AngelaMos | 2026
// dto.go

package plan

import (
	"time"
)

type SelectPlanRequest struct {
	PlanType string `json:"plan_type" validate:"required,oneof=basic gold platinum diamond"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active completed"`
}

type PlanResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	PlanType         string    `json:"plan_type"`
	InvestmentAmount int64     `json:"investment_amount"`
	ExpectedReturn   int64     `json:"expected_return"`
	ROI              int64     `json:"roi"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type DashboardRowResponse struct {
	PlanResponse
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

type DefinitionResponse struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	InvestmentAmount int64  `json:"investment_amount"`
	ExpectedReturn   int64  `json:"expected_return"`
	ROI              int64  `json:"roi"`
	DurationDays     int    `json:"duration_days"`
}

func ToPlanResponse(p *Plan) PlanResponse {
	return PlanResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		PlanType:         p.PlanType,
		InvestmentAmount: p.InvestmentAmount,
		ExpectedReturn:   p.ExpectedReturn,
		ROI:              p.ROI,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
	}
}

func ToPlanResponses(plans []Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, ToPlanResponse(&plans[i]))
	}
	return out
}

func ToDashboardRow(row *PlanWithOwner) DashboardRowResponse {
	resp := DashboardRowResponse{
		PlanResponse: ToPlanResponse(&row.Plan),
	}
	if row.OwnerName != nil {
		resp.OwnerName = *row.OwnerName
	}
	if row.OwnerEmail != nil {
		resp.OwnerEmail = *row.OwnerEmail
	}
	return resp
}

func ToDashboardRows(rows []PlanWithOwner) []DashboardRowResponse {
	out := make([]DashboardRowResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToDashboardRow(&rows[i]))
	}
	return out
}

func ToDefinitionResponses(defs []Definition) []DefinitionResponse {
	out := make([]DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, DefinitionResponse{
			Type:             def.Type,
			Name:             def.Name,
			InvestmentAmount: def.InvestmentAmount,
			ExpectedReturn:   def.ExpectedReturn,
			ROI:              def.ROI,
			DurationDays:     def.DurationDays,
		})
	}
	return out
}
