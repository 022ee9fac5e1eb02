package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguaviva/storefront/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func confirmedEvent() domain.OrderConfirmedEvent {
	return domain.OrderConfirmedEvent{
		OrderID:      42,
		CustomerName: "Maria Lopez",
		Phone:        "5551234567",
		Total:        "25.00",
		ItemCount:    2,
		Token:        "a3f8c2d91b7e4650a3f8c2d91b7e4650",
		Timestamp:    time.Now().UTC(),
	}
}

func TestConfirmationHandler_Handle(t *testing.T) {
	t.Run("sends_confirmation_text", func(t *testing.T) {
		var got map[string]string
		notifyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/send" {
				t.Errorf("expected /send, got %s", r.URL.Path)
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"sent"}`))
		}))
		defer notifyServer.Close()

		handler := NewConfirmationHandler(
			NewNotifyClient(notifyServer.URL, notifyServer.Client()),
			"https://shop.example.com",
			discardLogger(),
		)

		payload, err := json.Marshal(confirmedEvent())
		require.NoError(t, err)
		require.NoError(t, handler.Handle(context.Background(), payload))

		assert.Equal(t, "5551234567", got["to"])
		assert.Contains(t, got["message"], "order #42")
		assert.Contains(t, got["message"], "$25.00")
		assert.Contains(t, got["message"], "https://shop.example.com/orders/42?t=a3f8c2d91b7e4650a3f8c2d91b7e4650")
	})

	t.Run("notify_failure_propagates", func(t *testing.T) {
		notifyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer notifyServer.Close()

		handler := NewConfirmationHandler(
			NewNotifyClient(notifyServer.URL, notifyServer.Client()),
			"https://shop.example.com",
			discardLogger(),
		)

		payload, err := json.Marshal(confirmedEvent())
		require.NoError(t, err)
		assert.Error(t, handler.Handle(context.Background(), payload))
	})

	t.Run("malformed_payload", func(t *testing.T) {
		handler := NewConfirmationHandler(
			NewNotifyClient("http://unused", http.DefaultClient),
			"https://shop.example.com",
			discardLogger(),
		)

		assert.Error(t, handler.Handle(context.Background(), []byte("{not json")))
	})
}
