package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/config"
	"github.com/mamadbah2/poultry-stock/internal/domain/models"
	"github.com/mamadbah2/poultry-stock/internal/service/whatsapp"
)

const closeTimeout = 2 * time.Minute

// DayCloser reconciles and stores a finished day.
type DayCloser interface {
	CloseDay(ctx context.Context, day time.Time) (models.DailyStockReport, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	location *time.Location
	closer   DayCloser
	notifier whatsapp.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance running in the configured
// timezone. notifier may be nil.
func NewScheduler(cfg config.ReportingConfig, closer DayCloser, notifier whatsapp.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		location: loc,
		closer:   closer,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the daily close and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.closePreviousDay); err != nil {
		return fmt.Errorf("schedule daily close %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running close to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// previousDay is yesterday's calendar day in the scheduler's timezone.
func (s *Scheduler) previousDay() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)
}

func (s *Scheduler) closePreviousDay() {
	day := s.previousDay()
	s.logger.Info("closing day", zap.String("date", day.Format(models.DateLayout)))

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	report, err := s.closer.CloseDay(ctx, day)
	if err != nil {
		s.logger.Error("failed to close day", zap.String("date", day.Format(models.DateLayout)), zap.Error(err))
		return
	}

	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyReport(ctx, report); err != nil {
		s.logger.Error("failed to send stock summary", zap.Error(err))
	} else {
		s.logger.Info("stock summary sent", zap.String("date", day.Format(models.DateLayout)))
	}
}
