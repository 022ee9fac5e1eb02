package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aguaviva/storefront/internal/domain"
)

// OrderFinder is the persistence side of the order access guard.
type OrderFinder interface {
	FindByIDAndToken(ctx context.Context, id int64, token string) (*domain.Order, error)
}

type Handler struct {
	orders OrderFinder
	logger *slog.Logger
}

func NewHandler(orders OrderFinder, logger *slog.Logger) *Handler {
	return &Handler{
		orders: orders,
		logger: logger,
	}
}

// HandleGet serves an order's status to whoever presents its id together
// with the access token (query parameter `t`). A wrong id, a wrong token,
// and a missing token all get the same not-found answer, so the response
// never reveals which check failed.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("t"))
	if token == "" {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	order, err := h.orders.FindByIDAndToken(r.Context(), id, token)
	if err != nil {
		h.logger.Error("failed to fetch order", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order retrieved", "order_id", order.ID)
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
