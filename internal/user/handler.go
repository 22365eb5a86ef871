// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cryptopay-app/api/internal/core"
	"github.com/cryptopay-app/api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts account-facing routes; the router already
// requires an authenticated session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.Me)
	r.Get("/wallet", h.Wallet)
}

// RegisterAdminRoutes mounts the account-management routes; the router
// already requires an administrator session.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.List)
	r.Delete("/users/{userID}", h.Delete)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) Wallet(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.WalletBalance(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, WalletResponse{Balance: balance})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.AccountsWithPlans(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountWithPlansResponses(rows))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "userID")

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		core.BadRequest(w, "invalid user id")
		return
	}

	// Self-deletion through the admin surface is a footgun, not a feature.
	if userID == middleware.GetUserID(r.Context()) {
		core.JSONError(w, core.ConflictError("cannot delete your own account"))
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
