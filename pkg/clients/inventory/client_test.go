package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultry-stock/internal/config"
	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

func TestListStock_DecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory-stock", r.URL.Path)
		assert.Equal(t, "2026-10-14", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-10-14", r.URL.Query().Get("endDate"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a1","date":"2026-10-14T00:00:00.000Z","inventoryType":"bird","type":"purchase",
			 "birds":1000,"weight":2000,"rate":100,"amount":200000,"avgWeight":2,"vendorId":"v9","source":"trip"},
			{"id":"a2","date":"2026-10-14","inventoryType":"feed","type":"consume","bags":4,"weight":200,"amount":9000}
		]`))
	}))
	defer srv.Close()

	client := NewClient(config.InventoryAPIConfig{BaseURL: srv.URL + "/", Token: "secret", Timeout: time.Second})
	dayStart := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	records, err := client.ListStock(context.Background(), dayStart, dayStart)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.InventoryBird, records[0].InventoryType)
	assert.Equal(t, models.RecordPurchase, records[0].Type)
	assert.Equal(t, 1000, records[0].Birds)
	assert.Equal(t, "v9", records[0].VendorID)
	assert.True(t, records[0].Date.Equal(dayStart))
	assert.False(t, records[0].Editable())

	assert.Equal(t, 4, records[1].Bags)
	assert.True(t, records[1].Date.Equal(dayStart))
	assert.True(t, records[1].Editable())
}

func TestListStock_OpenRangeOmitsBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("startDate"))
		assert.Empty(t, r.URL.Query().Get("endDate"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(config.InventoryAPIConfig{BaseURL: srv.URL, Timeout: time.Second})

	records, err := client.ListStock(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListStock_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"session expired"}`))
	}))
	defer srv.Close()

	client := NewClient(config.InventoryAPIConfig{BaseURL: srv.URL, Timeout: time.Second})

	_, err := client.ListStock(context.Background(), time.Time{}, time.Time{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, "session expired", statusErr.Message)
}
