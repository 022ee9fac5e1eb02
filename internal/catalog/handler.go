package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aguaviva/storefront/internal/domain"
)

type ProductLister interface {
	ListActiveByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

type Handler struct {
	products ProductLister
	logger   *slog.Logger
}

func NewHandler(products ProductLister, logger *slog.Logger) *Handler {
	return &Handler{
		products: products,
		logger:   logger,
	}
}

type catalogResponse struct {
	Water []domain.Product `json:"water"`
	Milk  []domain.Product `json:"milk"`
}

// HandleCatalog serves the active products grouped by category.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	water, err := h.products.ListActiveByCategory(r.Context(), domain.CategoryWater)
	if err != nil {
		h.logger.Error("failed to list water products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	milk, err := h.products.ListActiveByCategory(r.Context(), domain.CategoryMilk)
	if err != nil {
		h.logger.Error("failed to list milk products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, catalogResponse{Water: water, Milk: milk})
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
