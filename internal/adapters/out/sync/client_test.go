package sync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/order"
)

func Test_Client_FetchAll_DecodesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","orderNumber":"ORD-240829-7Q2XK","status":"PENDING"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	snapshots, err := client.FetchAll(t.Context())

	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "ORD-240829-7Q2XK", snapshots[0].OrderNumber)
	assert.Equal(t, "PENDING", snapshots[0].Status)
}

func Test_Client_FetchAll_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchAll(t.Context())

	assert.ErrorContains(t, err, "unexpected status 502")
}

func Test_Client_PushAll_SendsFullCollection(t *testing.T) {
	var received []order.Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.PushAll(t.Context(), []order.Snapshot{
		{ID: "a1", OrderNumber: "ORD-240829-7Q2XK", Status: "PENDING"},
		{ID: "b2", OrderNumber: "ORD-240829-M4B9D", Status: "ACKNOWLEDGED"},
	})

	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "ORD-240829-M4B9D", received[1].OrderNumber)
}

func Test_Client_PushAll_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.PushAll(t.Context(), nil)

	assert.ErrorContains(t, err, "unexpected status 500")
}
