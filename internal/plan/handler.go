// AngelaMos | 2026
// handler.go

package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cryptopay-app/api/internal/core"
	"github.com/cryptopay-app/api/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the account-facing plan routes. The router passed
// in already requires an authenticated session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/plans", h.ListOwn)
	r.Post("/plans", h.Select)
	r.Get("/plans/catalog", h.Catalog)
}

// RegisterAdminRoutes mounts the lifecycle-management routes. The router
// passed in already requires an administrator session.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/plans", h.Dashboard)
	r.Patch("/plans/{planID}/activate", h.Activate)
	r.Patch("/plans/{planID}/complete", h.Complete)
	r.Patch("/plans/{planID}/status", h.SetStatus)
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	plan, err := h.service.Select(r.Context(), middleware.GetUserID(r.Context()), req.PlanType)
	if err != nil {
		if errors.Is(err, ErrInvalidPlanType) {
			core.BadRequest(w, "unknown plan type")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPlanResponse(plan))
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponses(plans))
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	core.OK(w, ToDefinitionResponses(CatalogDefinitions()))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Dashboard(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDashboardRows(rows))
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	planID, ok := planIDParam(w, r)
	if !ok {
		return
	}

	plan, err := h.service.Activate(r.Context(), planID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	planID, ok := planIDParam(w, r)
	if !ok {
		return
	}

	plan, err := h.service.Complete(r.Context(), planID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	planID, ok := planIDParam(w, r)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	plan, err := h.service.SetStatus(r.Context(), planID, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			core.BadRequest(w, "unknown plan status")
			return
		}
		h.writeTransitionError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "plan")
	case errors.Is(err, ErrAlreadyActive):
		core.JSONError(w, core.ConflictError("plan is not pending"))
	case errors.Is(err, ErrNotActive):
		core.JSONError(w, core.ConflictError("plan is not active"))
	case errors.Is(err, core.ErrConflict):
		core.JSONError(w, core.ConflictError("plan is not in the expected state"))
	default:
		core.InternalServerError(w, err)
	}
}

func planIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "planID")

	planID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || planID <= 0 {
		core.BadRequest(w, "invalid plan id")
		return 0, false
	}

	return planID, true
}
