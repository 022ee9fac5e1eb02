package orders

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguaviva/storefront/internal/domain"
)

type fakeFinder struct {
	order *domain.Order
	err   error
}

func (f *fakeFinder) FindByIDAndToken(ctx context.Context, id int64, token string) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.order != nil && f.order.ID == id && f.order.Token == token {
		return f.order, nil
	}
	return nil, nil
}

func serveGet(t *testing.T, finder OrderFinder, target string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(finder, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/{id}", handler.HandleGet)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_HandleGet(t *testing.T) {
	stored := &domain.Order{
		ID:           42,
		CustomerName: "Maria Lopez",
		Phone:        "5551234567",
		Total:        decimal.RequireFromString("25.00"),
		Status:       domain.OrderStatusConfirmed,
		Token:        "a3f8c2d91b7e4650a3f8c2d91b7e4650",
	}

	t.Run("matching_id_and_token", func(t *testing.T) {
		rec := serveGet(t, &fakeFinder{order: stored}, "/orders/42?t=a3f8c2d91b7e4650a3f8c2d91b7e4650")

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Order
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, domain.OrderStatusConfirmed, got.Status)
	})

	t.Run("wrong_token", func(t *testing.T) {
		rec := serveGet(t, &fakeFinder{order: stored}, "/orders/42?t=00000000000000000000000000000000")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing_token", func(t *testing.T) {
		rec := serveGet(t, &fakeFinder{order: stored}, "/orders/42")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown_order", func(t *testing.T) {
		rec := serveGet(t, &fakeFinder{order: stored}, "/orders/999?t=a3f8c2d91b7e4650a3f8c2d91b7e4650")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non_numeric_id", func(t *testing.T) {
		rec := serveGet(t, &fakeFinder{order: stored}, "/orders/abc?t=a3f8c2d91b7e4650a3f8c2d91b7e4650")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong_token_and_unknown_order_are_indistinguishable", func(t *testing.T) {
		wrongToken := serveGet(t, &fakeFinder{order: stored}, "/orders/42?t=ffffffffffffffffffffffffffffffff")
		unknownOrder := serveGet(t, &fakeFinder{order: stored}, "/orders/999?t=ffffffffffffffffffffffffffffffff")

		assert.Equal(t, wrongToken.Code, unknownOrder.Code)
		assert.Equal(t, wrongToken.Body.String(), unknownOrder.Body.String())
	})

	t.Run("repository_failure", func(t *testing.T) {
		rec := serveGet(t, &fakeFinder{err: errors.New("connection refused")}, "/orders/42?t=a3f8c2d91b7e4650a3f8c2d91b7e4650")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
