package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
	"github.com/mamadbah2/poultry-stock/internal/export"
	"github.com/mamadbah2/poultry-stock/internal/service/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrInvalidDate is returned for a date query or path parameter that does not parse.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// StockService is the reporting surface exposed over HTTP.
type StockService interface {
	DailyReport(ctx context.Context, day time.Time) (models.DailyStockReport, error)
	RangeReport(ctx context.Context, start, end time.Time) (models.DailyStockReport, error)
	Compute(req models.ComputeRequest) models.DailyStockReport
	CloseDay(ctx context.Context, day time.Time) (models.DailyStockReport, error)
	StoredReport(ctx context.Context, day time.Time) (models.DailyStockReport, error)
}

// StockHandler serves reconciliation reports.
type StockHandler struct {
	svc      StockService
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter. A missing date
// parameter means today in location.
func NewStockHandler(svc StockService, location *time.Location, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &StockHandler{svc: svc, location: location, now: time.Now, logger: logger}
}

// Daily returns the reconciliation of one day.
func (h *StockHandler) Daily(c *gin.Context) {
	day, err := h.dayParam(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := h.svc.DailyReport(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Range returns the reconciliation of every record between startDate and endDate.
// Both parameters are optional.
func (h *StockHandler) Range(c *gin.Context) {
	start, err := optionalDate(c.Query("startDate"))
	if err != nil {
		h.fail(c, err)
		return
	}
	end, err := optionalDate(c.Query("endDate"))
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := h.svc.RangeReport(c.Request.Context(), start, end)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Compute reconciles the records posted in the body without fetching anything.
func (h *StockHandler) Compute(c *gin.Context) {
	var req models.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid compute payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Compute(req))
}

// Export streams the daily reconciliation as an xlsx attachment.
func (h *StockHandler) Export(c *gin.Context) {
	day, err := h.dayParam(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := h.svc.DailyReport(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, report); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(report)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Close reconciles a day and stores the snapshot.
func (h *StockHandler) Close(c *gin.Context) {
	day, err := h.dayParam(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := h.svc.CloseDay(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// Stored returns a snapshot saved by Close or the scheduler.
func (h *StockHandler) Stored(c *gin.Context) {
	day, err := models.ParseDate(c.Param("date"))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %w", ErrInvalidDate, err))
		return
	}

	report, err := h.svc.StoredReport(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *StockHandler) dayParam(value string) (time.Time, error) {
	if value == "" {
		now := h.now().In(h.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return day, nil
}

func optionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return day, nil
}

func (h *StockHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("stock request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Warn("stock request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidDate), errors.Is(err, reporting.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, reporting.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, reporting.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
