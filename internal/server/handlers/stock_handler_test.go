package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
	"github.com/mamadbah2/poultry-stock/internal/service/reporting"
)

type stubStockService struct {
	days     []time.Time
	start    time.Time
	end      time.Time
	computed models.ComputeRequest
	err      error
}

func (s *stubStockService) report(day time.Time) models.DailyStockReport {
	r := models.DailyStockReport{ID: "r1", Date: day, RecordCount: 3}
	r.Reconciliation.Profit.NetProfitLoss = 42
	return r
}

func (s *stubStockService) DailyReport(_ context.Context, day time.Time) (models.DailyStockReport, error) {
	s.days = append(s.days, day)
	if s.err != nil {
		return models.DailyStockReport{}, s.err
	}
	return s.report(day), nil
}

func (s *stubStockService) RangeReport(_ context.Context, start, end time.Time) (models.DailyStockReport, error) {
	s.start, s.end = start, end
	if s.err != nil {
		return models.DailyStockReport{}, s.err
	}
	return s.report(end), nil
}

func (s *stubStockService) Compute(req models.ComputeRequest) models.DailyStockReport {
	s.computed = req
	return s.report(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
}

func (s *stubStockService) CloseDay(ctx context.Context, day time.Time) (models.DailyStockReport, error) {
	return s.DailyReport(ctx, day)
}

func (s *stubStockService) StoredReport(_ context.Context, day time.Time) (models.DailyStockReport, error) {
	s.days = append(s.days, day)
	if s.err != nil {
		return models.DailyStockReport{}, s.err
	}
	return s.report(day), nil
}

func newTestEngine(svc StockService) (*gin.Engine, *StockHandler) {
	gin.SetMode(gin.TestMode)
	h := NewStockHandler(svc, time.UTC, nil)
	h.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/daily", h.Daily)
	r.GET("/range", h.Range)
	r.POST("/compute", h.Compute)
	r.GET("/export", h.Export)
	r.POST("/close", h.Close)
	r.GET("/reports/:date", h.Stored)
	return r, h
}

func serve(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestDaily(t *testing.T) {
	svc := &stubStockService{}
	r, _ := newTestEngine(svc)

	rec := serve(r, http.MethodGet, "/daily?date=2026-10-14", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.DailyStockReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "r1", got.ID)
	assert.InDelta(t, 42, got.Reconciliation.Profit.NetProfitLoss, 1e-9)
	assert.Equal(t, []time.Time{time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)}, svc.days)
}

func TestDaily_DefaultsToToday(t *testing.T) {
	svc := &stubStockService{}
	r, _ := newTestEngine(svc)

	rec := serve(r, http.MethodGet, "/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []time.Time{time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)}, svc.days)
}

func TestDaily_ErrorMapping(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{name: "bad date", query: "?date=14/10/2026", want: http.StatusBadRequest},
		{name: "upstream", query: "?date=2026-10-14", err: fmt.Errorf("%w: timeout", reporting.ErrUpstream), want: http.StatusBadGateway},
		{name: "internal", query: "?date=2026-10-14", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestEngine(&stubStockService{err: tt.err})
			rec := serve(r, http.MethodGet, "/daily"+tt.query, nil)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRange(t *testing.T) {
	svc := &stubStockService{}
	r, _ := newTestEngine(svc)

	rec := serve(r, http.MethodGet, "/range?startDate=2026-10-01&endDate=2026-10-14T10:00:00Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), svc.start)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), svc.end)

	rec = serve(r, http.MethodGet, "/range", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.start.IsZero())
	assert.True(t, svc.end.IsZero())
}

func TestRange_InvalidRange(t *testing.T) {
	r, _ := newTestEngine(&stubStockService{err: reporting.ErrInvalidRange})

	rec := serve(r, http.MethodGet, "/range?startDate=2026-10-14&endDate=2026-10-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompute(t *testing.T) {
	svc := &stubStockService{}
	r, _ := newTestEngine(svc)

	body := []byte(`{"records":[{"id":"p1","date":"2026-10-14","inventoryType":"bird","type":"purchase","birds":10,"weight":20,"amount":2000}],"previousFeedConsumedAmount":150}`)
	rec := serve(r, http.MethodPost, "/compute", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.computed.Records, 1)
	assert.Equal(t, "p1", svc.computed.Records[0].ID)
	assert.InDelta(t, 150, svc.computed.PreviousFeedConsumedAmount, 1e-9)

	rec = serve(r, http.MethodPost, "/compute", []byte(`{"records":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	r, _ := newTestEngine(&stubStockService{})

	rec := serve(r, http.MethodGet, "/export?date=2026-10-14", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "stock-report-2026-10-14.xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Contains(t, f.GetSheetList(), "Stock Report")
}

func TestClose(t *testing.T) {
	svc := &stubStockService{}
	r, _ := newTestEngine(svc)

	rec := serve(r, http.MethodPost, "/close?date=2026-10-14", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, svc.days, 1)
}

func TestStored(t *testing.T) {
	r, _ := newTestEngine(&stubStockService{})
	rec := serve(r, http.MethodGet, "/reports/2026-10-14", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	r, _ = newTestEngine(&stubStockService{err: fmt.Errorf("load report: %w", reporting.ErrReportNotFound)})
	rec = serve(r, http.MethodGet, "/reports/2026-10-14", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(r, http.MethodGet, "/reports/yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
