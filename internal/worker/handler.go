// Package worker consumes order-confirmed events and sends the customer a
// confirmation text with their private status link. Status transitions after
// CONFIRMED belong to the back office, not this worker.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aguaviva/storefront/internal/domain"
)

const deliveryWindowsText = "Delivery: Mon-Fri 4:00-7:30 pm, Sat-Sun 11:00 am-3:00 pm."

type ConfirmationHandler struct {
	notify        *NotifyClient
	publicBaseURL string
	logger        *slog.Logger
}

func NewConfirmationHandler(notify *NotifyClient, publicBaseURL string, logger *slog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{
		notify:        notify,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

func (h *ConfirmationHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderConfirmedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order confirmed event: %w", err)
	}

	h.logger.Info("processing order confirmed event", "order_id", event.OrderID)

	if err := h.notify.Send(ctx, event.Phone, h.confirmationText(event)); err != nil {
		h.logger.Error("failed to send confirmation", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation for order %d: %w", event.OrderID, err)
	}

	h.logger.Info("confirmation sent", "order_id", event.OrderID)
	return nil
}

func (h *ConfirmationHandler) confirmationText(event domain.OrderConfirmedEvent) string {
	statusURL := fmt.Sprintf("%s/orders/%d?t=%s", h.publicBaseURL, event.OrderID, event.Token)
	return fmt.Sprintf(
		"Hi %s! Your order #%d (%d items, $%s) is confirmed. Track it at %s %s",
		event.CustomerName, event.OrderID, event.ItemCount, event.Total, statusURL, deliveryWindowsText,
	)
}
