package checkout

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguaviva/storefront/internal/cart"
	"github.com/aguaviva/storefront/internal/domain"
	"github.com/aguaviva/storefront/internal/session"
)

type checkoutClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
	store   *fakeOrderStore
}

func newCheckoutClient(t *testing.T, catalog *fakeCatalog) *checkoutClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := cart.NewResolver(catalog)
	store := &fakeOrderStore{}
	svc := NewService(resolver, store, nil, logger)
	h := NewHandler(svc, resolver, logger)

	cartHandler := cart.NewHandler(resolver, nil, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /checkout", h.HandleShow)
	mux.HandleFunc("POST /checkout", h.HandleSubmit)
	mux.HandleFunc("PUT /cart/items/{productId}", cartHandler.HandleUpdate)

	sessions := session.NewStore(time.Hour)
	return &checkoutClient{t: t, handler: sessions.Middleware(mux), store: store}
}

func (c *checkoutClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	if got := rec.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return rec
}

func (c *checkoutClient) fillCart(productID int64, quantity int) {
	c.t.Helper()
	path := fmt.Sprintf("/cart/items/%d", productID)
	rec := c.do(http.MethodPut, path, fmt.Sprintf(`{"quantity": %d}`, quantity))
	require.Equal(c.t, http.StatusOK, rec.Code)
}

func twoProductCatalog() *fakeCatalog {
	return &fakeCatalog{products: []domain.Product{
		testProduct(1, "Garrafon 20L", "9.50", true),
		testProduct(2, "Leche Entera 1L", "15.00", false),
	}}
}

func TestHandler_HandleShow(t *testing.T) {
	t.Run("empty_cart_redirects_to_catalog", func(t *testing.T) {
		client := newCheckoutClient(t, twoProductCatalog())

		rec := client.do(http.MethodGet, "/checkout", "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/catalog", rec.Header().Get("Location"))
	})

	t.Run("priced_cart_with_delivery_windows", func(t *testing.T) {
		client := newCheckoutClient(t, twoProductCatalog())
		client.fillCart(1, 2)

		rec := client.do(http.MethodGet, "/checkout", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var sum summary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&sum))
		require.Len(t, sum.Items, 1)
		assert.True(t, sum.Subtotal.Equal(decimal.RequireFromString("19.00")))
		assert.True(t, sum.Shipping.Equal(decimal.RequireFromString("6.00")))
		assert.True(t, sum.Total.Equal(decimal.RequireFromString("25.00")))
		assert.NotEmpty(t, sum.DeliveryWindows["weekdays"])
		assert.NotEmpty(t, sum.DeliveryWindows["weekends"])
	})
}

func TestHandler_HandleSubmit(t *testing.T) {
	validBody := `{"name": "Maria Lopez", "phone": "555-123-4567", "address": "Av. Reforma 123"}`

	t.Run("success_creates_order_and_clears_cart", func(t *testing.T) {
		client := newCheckoutClient(t, twoProductCatalog())
		client.fillCart(1, 2)

		rec := client.do(http.MethodPost, "/checkout", validBody)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var order domain.Order
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
		assert.Len(t, order.Token, 32)
		require.Len(t, client.store.created, 1)

		// The cart is empty now, so a second visit to checkout bounces.
		rec = client.do(http.MethodGet, "/checkout", "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("validation_failure_preserves_cart_totals", func(t *testing.T) {
		client := newCheckoutClient(t, twoProductCatalog())
		client.fillCart(1, 2)

		rec := client.do(http.MethodPost, "/checkout", `{"name": "Maria", "phone": "123", "address": "x"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp validationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "phone must have exactly 10 digits", resp.Error)
		assert.Equal(t, "phone", resp.Field)
		require.NotNil(t, resp.Cart)
		require.Len(t, resp.Cart.Items, 1)
		assert.True(t, resp.Cart.Total.Equal(decimal.RequireFromString("25.00")))

		assert.Empty(t, client.store.created)
	})

	t.Run("empty_cart_redirects", func(t *testing.T) {
		client := newCheckoutClient(t, twoProductCatalog())

		rec := client.do(http.MethodPost, "/checkout", validBody)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/catalog", rec.Header().Get("Location"))
	})

	t.Run("malformed_body", func(t *testing.T) {
		client := newCheckoutClient(t, twoProductCatalog())
		client.fillCart(1, 2)

		rec := client.do(http.MethodPost, "/checkout", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
