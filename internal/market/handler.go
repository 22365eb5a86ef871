// AngelaMos | 2026
// handler.go

package market

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptopay-app/api/internal/core"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/market/bitcoin", h.GetBitcoinQuote)
}

func (h *Handler) GetBitcoinQuote(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.client.BitcoinQuote(r.Context()))
}
