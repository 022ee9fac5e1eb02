package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/aguaviva/storefront/internal/domain"
	"github.com/aguaviva/storefront/internal/pricing"
	"github.com/aguaviva/storefront/internal/session"
)

// ProductGetter fetches a single active product; nil result means the
// product does not exist or is inactive.
type ProductGetter interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Product, error)
}

type Handler struct {
	resolver *Resolver
	products ProductGetter
	logger   *slog.Logger
}

func NewHandler(resolver *Resolver, products ProductGetter, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		products: products,
		logger:   logger,
	}
}

type freeShippingProgress struct {
	Remaining decimal.Decimal `json:"remaining"`
	Percent   int             `json:"percent"`
}

type viewResponse struct {
	Items        []domain.LineItem    `json:"items"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Shipping     decimal.Decimal      `json:"shipping"`
	Total        decimal.Decimal      `json:"total"`
	FreeShipping freeShippingProgress `json:"free_shipping"`
}

func (h *Handler) view(ctx context.Context, sess *session.Session) (*viewResponse, error) {
	items, subtotal, err := h.resolver.Resolve(ctx, Contents(sess))
	if err != nil {
		return nil, err
	}

	shipping := pricing.ShippingCost(subtotal, len(items) > 0)
	remaining, percent := pricing.ProgressToThreshold(subtotal)

	return &viewResponse{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
		FreeShipping: freeShippingProgress{
			Remaining: remaining,
			Percent:   percent,
		},
	}, nil
}

// HandleView renders the priced cart: line items, subtotal, shipping, grand
// total, and progress toward the reduced shipping rate.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp, err := h.view(r.Context(), sess)
	if err != nil {
		h.logger.Error("failed to resolve cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleAdd adds one unit of an active product to the cart. Repeated calls
// keep incrementing the quantity. Unknown and inactive products get the same
// generic not-found answer.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := h.products.GetActiveByID(r.Context(), productID)
	if err != nil {
		h.logger.Error("failed to look up product", "error", err, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	Add(sess, product.ID)
	h.logger.Info("product added to cart", "product_id", product.ID, "session_id", sess.ID())

	resp, err := h.view(r.Context(), sess)
	if err != nil {
		h.logger.Error("failed to resolve cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdate overwrites a product's quantity. A malformed body falls back
// to quantity 1; zero or negative removes the line. The cart is untrusted
// input, so nothing here validates against the catalog.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	req := updateRequest{Quantity: 1}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Quantity = 1
	}

	SetQuantity(sess, productID, req.Quantity)

	resp, err := h.view(r.Context(), sess)
	if err != nil {
		h.logger.Error("failed to resolve cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleRemove drops a product from the cart; removing an absent product
// succeeds quietly.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	Remove(sess, productID)

	resp, err := h.view(r.Context(), sess)
	if err != nil {
		h.logger.Error("failed to resolve cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
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
