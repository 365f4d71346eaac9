package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("", zerolog.Nop())
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCartClient_GetCart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/user-1/cart", r.URL.Path)
		json.NewEncoder(w).Encode(domain.CartSummary{
			UserID: "user-1",
			Lines: []domain.CartLine{
				{LineID: "line-1", ProductID: "prod-1", Quantity: 2, UnitPriceCents: 500, SubtotalCents: 1000},
			},
			SubtotalCents: 1000,
			ItemCount:     2,
		})
	}))

	summary, err := NewCartClient(c).GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int32(1000), summary.SubtotalCents)
	assert.False(t, summary.IsEmpty())

	line, ok := summary.LineByProduct("prod-1")
	require.True(t, ok)
	assert.Equal(t, int32(2), line.Quantity)
}

func TestCartClient_AddItemPostsLine(t *testing.T) {
	var got cartItemRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/user-1/cart/items", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := NewCartClient(c).AddItem(context.Background(), "user-1", "prod-7", 3)
	require.NoError(t, err)
	assert.Equal(t, "prod-7", got.ProductID)
	assert.Equal(t, int32(3), got.Quantity)
}

func TestCartClient_RejectsNonPositiveQuantity(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent")
	}))

	cart := NewCartClient(c)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(cart.AddItem(context.Background(), "u", "p", 0)))
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(cart.SetItemQuantity(context.Background(), "u", "p", -1)))
}

func TestClient_MapsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"not_found","message":"Order not found"}}`))
	}))

	_, err := NewOrderClient(c).GetOrder(context.Background(), "ord-404")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, "Order not found", domain.ErrorMessage(err))
}

func TestClient_MapsServerErrorToUnavailable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := NewInventoryClient(c).ReleaseReservation(context.Background(), "ord-1")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

func TestClient_MapsNetworkFaultToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	c, err := New(url, zerolog.Nop())
	require.NoError(t, err)

	_, err = NewCartClient(c).GetCart(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

func TestOrderClient_CreateOrderFromCart(t *testing.T) {
	var got createOrderRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(domain.Order{
			ID:         "ord-1",
			UserID:     got.UserID,
			Status:     domain.OrderStatusPending,
			TotalCents: 2500,
		})
	}))

	order, err := NewOrderClient(c).CreateOrderFromCart(context.Background(), "user-1", "pm_card", "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "tok-abc", got.IdempotencyToken)
}

func TestOrderClient_SetOrderStatus(t *testing.T) {
	var got setStatusRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/ord-1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := NewOrderClient(c).SetOrderStatus(context.Background(), "ord-1", domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, got.Status)
}
