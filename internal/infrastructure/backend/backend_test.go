package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/order"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/infrastructure/config"
)

func newTestBackend(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, APIKey: "test-key"}, zap.NewNop())
}

func TestClient_SendsAPIKey(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		w.Write([]byte(`[]`))
	}))

	var out []orderRow
	err := client.do(context.Background(), request{method: http.MethodGet, path: "/rest/v1/orders"}, &out)
	require.NoError(t, err)
}

func TestClient_MapsErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, shared.ErrUnauthorized},
		{http.StatusForbidden, shared.ErrUnauthorized},
		{http.StatusNotFound, shared.ErrNotFound},
		{http.StatusInternalServerError, shared.ErrNetwork},
	}
	for _, tt := range tests {
		client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		err := client.do(context.Background(), request{method: http.MethodGet, path: "/x"}, nil)
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}
}

func TestAuthProvider_SignIn(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var creds credentialsPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "jane@example.com", creds.Email)

		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "tok-abc",
			ExpiresIn:   3600,
			User:        userPayload{ID: "uid-1", Email: "jane@example.com"},
		})
	}))
	provider := NewAuthProvider(client)

	session, err := provider.SignIn(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", session.AccessToken)
	assert.Equal(t, "uid-1", session.Identity.UserID)
	assert.False(t, session.Expired(time.Now()))
}

func TestAuthProvider_SignIn_MissingToken(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse{User: userPayload{ID: "uid-1"}})
	}))
	provider := NewAuthProvider(client)

	_, err := provider.SignIn(context.Background(), "jane@example.com", "secret123")
	assert.ErrorIs(t, err, shared.ErrIntegration)
}

func TestAuthProvider_CurrentSession(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(userPayload{ID: "uid-1", Email: "jane@example.com"})
	}))
	provider := NewAuthProvider(client)

	session, err := provider.CurrentSession(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", session.Identity.Email)
	assert.Equal(t, "tok-abc", session.AccessToken)
}

func TestAuthProvider_SignOut(t *testing.T) {
	called := false
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	provider := NewAuthProvider(client)

	require.NoError(t, provider.SignOut(context.Background(), "tok-abc"))
	assert.True(t, called)
}

func sampleRow() orderRow {
	return orderRow{
		ID:            7,
		UserEmail:     "jane@example.com",
		TotalPrice:    125.99,
		PaymentStatus: "pending",
		CreatedAt:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Items: []orderItemRow{
			{ProductID: 1, Title: "Backpack", Price: 120.00, Quantity: 1, Image: "https://example.com/1.png"},
		},
	}
}

func TestOrderStore_Create(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/orders", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var row orderRow
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "jane@example.com", row.UserEmail)
		assert.Equal(t, "pending", row.PaymentStatus)
		assert.Zero(t, row.ID, "id assignment belongs to the backend")

		stored := row
		stored.ID = 7
		stored.CreatedAt = time.Now().UTC()
		json.NewEncoder(w).Encode([]orderRow{stored})
	}))
	store := NewOrderStore(client)

	created, err := store.Create(context.Background(), orderFromRow(&orderRow{
		UserEmail:     "jane@example.com",
		TotalPrice:    125.99,
		PaymentStatus: "pending",
		Items:         []orderItemRow{{ProductID: 1, Title: "Backpack", Price: 120.00, Quantity: 1}},
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "125.99", created.TotalPrice.StringFixed(2))
	assert.False(t, created.CreatedAt.IsZero())
}

func TestOrderStore_Create_EmptyRepresentation(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	store := NewOrderStore(client)

	_, err := store.Create(context.Background(), orderFromRow(&orderRow{UserEmail: "jane@example.com"}))
	assert.ErrorIs(t, err, shared.ErrIntegration)
}

func TestOrderStore_ListByEmail(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.jane@example.com", r.URL.Query().Get("user_email"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		json.NewEncoder(w).Encode([]orderRow{sampleRow()})
	}))
	store := NewOrderStore(client)

	orders, err := store.ListByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "120.00", orders[0].Items[0].Price.StringFixed(2))
}

func TestOrderStore_FindByID_NoMatch(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.99", r.URL.Query().Get("id"))
		w.Write([]byte(`[]`))
	}))
	store := NewOrderStore(client)

	o, err := store.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderStore_FindLatestByEmail(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		json.NewEncoder(w).Encode([]orderRow{sampleRow()})
	}))
	store := NewOrderStore(client)

	o, err := store.FindLatestByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, int64(7), o.ID)
}

func TestOrderStore_UpdateStatus(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "success", body["payment_status"])
		w.WriteHeader(http.StatusNoContent)
	}))
	store := NewOrderStore(client)

	require.NoError(t, store.UpdateStatus(context.Background(), 7, order.PaymentStatusSuccess))
}

func TestOrderStore_Delete(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	store := NewOrderStore(client)

	require.NoError(t, store.Delete(context.Background(), 7))
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, order.PaymentStatusSuccess, normalizeStatus("success"))
	assert.Equal(t, order.PaymentStatusPending, normalizeStatus("pending"))
	assert.Equal(t, order.PaymentStatusPending, normalizeStatus("paid"))
	assert.Equal(t, order.PaymentStatusPending, normalizeStatus(""))
}

func TestProfileStore_GetAndUpsert(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "eq.uid-1", r.URL.Query().Get("user_id"))
			json.NewEncoder(w).Encode([]profileRow{{
				UserID:          "uid-1",
				FullName:        "Jane Doe",
				DeliveryAddress: "12 Lilac Lane",
				Phone:           "+31 6 1234 5678",
			}})
		case http.MethodPost:
			assert.Equal(t, "resolution=merge-duplicates", r.Header.Get("Prefer"))
			var row profileRow
			require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
			assert.Equal(t, "uid-1", row.UserID)
			w.WriteHeader(http.StatusCreated)
		}
	}))
	store := NewProfileStore(client)

	p, err := store.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Jane Doe", p.FullName)

	p.Phone = "+31 6 8765 4321"
	require.NoError(t, store.Upsert(context.Background(), p))
}

func TestProfileStore_GetNeverSaved(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	store := NewProfileStore(client)

	p, err := store.Get(context.Background(), "uid-2")
	require.NoError(t, err)
	assert.Nil(t, p)
}
