package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
	"github.com/mamadbah2/poultry-stock/internal/export"
	"github.com/mamadbah2/poultry-stock/internal/repository/mongodb"
	"github.com/mamadbah2/poultry-stock/internal/repository/sheets"
	"github.com/mamadbah2/poultry-stock/internal/service/reconciliation"
	"github.com/mamadbah2/poultry-stock/pkg/clients/inventory"
)

// ErrInvalidRange indicates a start date after the end date.
var ErrInvalidRange = errors.New("start date must not be after end date")

// ErrUpstream wraps failures of the inventory API.
var ErrUpstream = errors.New("inventory api unavailable")

// ErrReportNotFound is returned when no snapshot was stored for a day.
var ErrReportNotFound = mongodb.ErrReportNotFound

// Service fetches stock records, runs the reconciliation engine and publishes the result.
type Service struct {
	fetcher    inventory.Client
	store      mongodb.Repository
	publisher  sheets.Repository
	thresholds reconciliation.Thresholds
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewService wires a new reporting service instance. store and publisher may be
// nil; the corresponding operations are then skipped or rejected.
func NewService(fetcher inventory.Client, store mongodb.Repository, publisher sheets.Repository, thresholds reconciliation.Thresholds, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:    fetcher,
		store:      store,
		publisher:  publisher,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// DailyReport reconciles one calendar day. The day's records and the previous
// day's records are fetched concurrently; the previous day's consumed feed
// amount is charged against this day's profit.
func (s *Service) DailyReport(ctx context.Context, day time.Time) (models.DailyStockReport, error) {
	day = startOfDay(day)
	prev := day.AddDate(0, 0, -1)

	var current, previous []models.StockRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.fetcher.ListStock(gctx, day, day)
		if err != nil {
			return fmt.Errorf("fetch records for %s: %w", day.Format(models.DateLayout), err)
		}
		current = records
		return nil
	})
	g.Go(func() error {
		records, err := s.fetcher.ListStock(gctx, prev, prev)
		if err != nil {
			return fmt.Errorf("fetch records for %s: %w", prev.Format(models.DateLayout), err)
		}
		previous = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.DailyStockReport{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	report := s.build(day, day, day, current, reconciliation.FeedConsumedAmount(previous))
	return report, nil
}

// RangeReport reconciles every record dated within [start, end]. Either bound
// may be zero for an open range; with no start there is no previous period and
// no feed carry-forward.
func (s *Service) RangeReport(ctx context.Context, start, end time.Time) (models.DailyStockReport, error) {
	if !start.IsZero() {
		start = startOfDay(start)
	}
	if !end.IsZero() {
		end = startOfDay(end)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return models.DailyStockReport{}, ErrInvalidRange
	}

	var current, previous []models.StockRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.fetcher.ListStock(gctx, start, end)
		if err != nil {
			return fmt.Errorf("fetch records for range: %w", err)
		}
		current = records
		return nil
	})
	if !start.IsZero() {
		prev := start.AddDate(0, 0, -1)
		g.Go(func() error {
			records, err := s.fetcher.ListStock(gctx, prev, prev)
			if err != nil {
				return fmt.Errorf("fetch records for %s: %w", prev.Format(models.DateLayout), err)
			}
			previous = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DailyStockReport{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	date := end
	if date.IsZero() {
		date = startOfDay(s.now())
	}

	return s.build(date, start, end, current, reconciliation.FeedConsumedAmount(previous)), nil
}

// Compute reconciles records the caller already holds. Nothing is fetched or stored.
func (s *Service) Compute(req models.ComputeRequest) models.DailyStockReport {
	date := startOfDay(s.now())
	for _, r := range req.Records {
		if !r.Date.IsZero() && r.Date.After(date) {
			date = startOfDay(r.Date)
		}
	}
	return s.build(date, time.Time{}, time.Time{}, req.Records, req.PreviousFeedConsumedAmount)
}

// CloseDay reconciles day, stores the snapshot and appends it to the report sheet.
// A failed sheet append is logged; the stored snapshot stays authoritative.
func (s *Service) CloseDay(ctx context.Context, day time.Time) (models.DailyStockReport, error) {
	if s.store == nil {
		return models.DailyStockReport{}, errors.New("report store is not configured")
	}

	report, err := s.DailyReport(ctx, day)
	if err != nil {
		return models.DailyStockReport{}, err
	}

	if err := s.store.SaveDailyStockReport(ctx, report); err != nil {
		return models.DailyStockReport{}, fmt.Errorf("store report: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.AppendRows(ctx, export.SheetValues(report)); err != nil {
			s.logger.Error("failed to publish report to sheet", zap.Time("date", report.Date), zap.Error(err))
		}
	}

	s.logger.Info("day closed",
		zap.Time("date", report.Date),
		zap.Int("records", report.RecordCount),
		zap.Float64("net_profit_loss", report.Reconciliation.Profit.NetProfitLoss),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// StoredReport loads the snapshot stored by CloseDay.
func (s *Service) StoredReport(ctx context.Context, day time.Time) (models.DailyStockReport, error) {
	if s.store == nil {
		return models.DailyStockReport{}, ErrReportNotFound
	}

	report, err := s.store.FindDailyStockReport(ctx, startOfDay(day))
	if err != nil {
		return models.DailyStockReport{}, fmt.Errorf("load report for %s: %w", day.Format(models.DateLayout), err)
	}
	return report, nil
}

func (s *Service) build(date, start, end time.Time, records []models.StockRecord, previousFeed float64) models.DailyStockReport {
	// sorted so the first mortality and weight loss record does not depend on API order
	records = models.SortRecords(records)
	rec := reconciliation.Reconcile(reconciliation.Input{
		Records:                    records,
		PreviousFeedConsumedAmount: previousFeed,
	})
	warnings := reconciliation.Check(rec, records, s.thresholds)

	for _, w := range warnings {
		s.logger.Warn("stock reconciliation warning",
			zap.Time("date", date),
			zap.String("code", string(w.Code)),
			zap.String("record_id", w.RecordID),
			zap.String("message", w.Message))
	}

	return models.DailyStockReport{
		ID:                         s.newID(),
		Date:                       date,
		Start:                      start,
		End:                        end,
		RecordCount:                len(records),
		PreviousFeedConsumedAmount: previousFeed,
		Reconciliation:             rec,
		Warnings:                   warnings,
		CreatedAt:                  s.now().UTC(),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
