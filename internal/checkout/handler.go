package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/aguaviva/storefront/internal/cart"
	"github.com/aguaviva/storefront/internal/domain"
	"github.com/aguaviva/storefront/internal/pricing"
	"github.com/aguaviva/storefront/internal/session"
)

// Delivery windows shown alongside the checkout form and repeated in the
// confirmation message.
var deliveryWindows = map[string]string{
	"weekdays": "Monday to Friday: 4:00 pm to 7:30 pm",
	"weekends": "Saturday and Sunday: 11:00 am to 3:00 pm",
}

type Handler struct {
	svc      *Service
	resolver *cart.Resolver
	logger   *slog.Logger
}

func NewHandler(svc *Service, resolver *cart.Resolver, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		resolver: resolver,
		logger:   logger,
	}
}

type summary struct {
	Items           []domain.LineItem `json:"items"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Shipping        decimal.Decimal   `json:"shipping"`
	Total           decimal.Decimal   `json:"total"`
	DeliveryWindows map[string]string `json:"delivery_windows"`
}

func (h *Handler) summarize(ctx context.Context, sess *session.Session) (*summary, error) {
	items, subtotal, err := h.resolver.Resolve(ctx, cart.Contents(sess))
	if err != nil {
		return nil, err
	}

	shipping := pricing.ShippingCost(subtotal, len(items) > 0)
	return &summary{
		Items:           items,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           subtotal.Add(shipping),
		DeliveryWindows: deliveryWindows,
	}, nil
}

// HandleShow serves the checkout form data: the priced cart plus delivery
// windows. An empty cart bounces back to the catalog.
func (h *Handler) HandleShow(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	sum, err := h.summarize(r.Context(), sess)
	if err != nil {
		h.logger.Error("failed to resolve cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(sum.Items) == 0 {
		http.Redirect(w, r, "/catalog", http.StatusSeeOther)
		return
	}

	h.writeJSON(w, http.StatusOK, sum)
}

type validationResponse struct {
	Error string   `json:"error"`
	Field string   `json:"field"`
	Cart  *summary `json:"cart"`
}

// HandleSubmit runs a checkout submission. Validation failures come back as
// 422 with the offending reason and the unchanged cart totals, so the form
// can be re-rendered for resubmission; an empty cart redirects to the
// catalog; a persistence failure is fatal for this request.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.Checkout(r.Context(), sess, form)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			http.Redirect(w, r, "/catalog", http.StatusSeeOther)
			return
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			sum, sumErr := h.summarize(r.Context(), sess)
			if sumErr != nil {
				h.logger.Error("failed to resolve cart", "error", sumErr)
				h.writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			h.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
				Error: verr.Reason,
				Field: verr.Field,
				Cart:  sum,
			})
			return
		}

		h.logger.Error("checkout failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
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
