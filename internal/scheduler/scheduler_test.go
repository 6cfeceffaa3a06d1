package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultry-stock/internal/config"
	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

type stubCloser struct {
	days []time.Time
	err  error
}

func (c *stubCloser) CloseDay(_ context.Context, day time.Time) (models.DailyStockReport, error) {
	c.days = append(c.days, day)
	if c.err != nil {
		return models.DailyStockReport{}, c.err
	}
	return models.DailyStockReport{ID: "r1", Date: day}, nil
}

type stubNotifier struct {
	reports []models.DailyStockReport
}

func (n *stubNotifier) SendOutbound(context.Context, models.OutboundMessageRequest) error {
	return nil
}

func (n *stubNotifier) NotifyReport(_ context.Context, report models.DailyStockReport) error {
	n.reports = append(n.reports, report)
	return nil
}

func reportingConfig() config.ReportingConfig {
	return config.ReportingConfig{CronSchedule: "30 0 * * *", Timezone: "Asia/Kolkata"}
}

func TestClosePreviousDay_UsesConfiguredTimezone(t *testing.T) {
	closer := &stubCloser{}
	notifier := &stubNotifier{}
	s, err := NewScheduler(reportingConfig(), closer, notifier, nil)
	require.NoError(t, err)

	// 19:30 UTC on the 14th is 01:00 on the 15th in Kolkata.
	s.now = func() time.Time { return time.Date(2026, 10, 14, 19, 30, 0, 0, time.UTC) }
	s.closePreviousDay()

	want := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []time.Time{want}, closer.days)
	require.Len(t, notifier.reports, 1)
	assert.Equal(t, want, notifier.reports[0].Date)
}

func TestClosePreviousDay_FailureSkipsNotification(t *testing.T) {
	closer := &stubCloser{err: errors.New("inventory api unavailable")}
	notifier := &stubNotifier{}
	s, err := NewScheduler(reportingConfig(), closer, notifier, nil)
	require.NoError(t, err)

	s.closePreviousDay()

	assert.Len(t, closer.days, 1)
	assert.Empty(t, notifier.reports)
}

func TestClosePreviousDay_WithoutNotifier(t *testing.T) {
	closer := &stubCloser{}
	s, err := NewScheduler(reportingConfig(), closer, nil, nil)
	require.NoError(t, err)

	assert.NotPanics(t, s.closePreviousDay)
	assert.Len(t, closer.days, 1)
}

func TestNewScheduler_InvalidTimezone(t *testing.T) {
	cfg := reportingConfig()
	cfg.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, &stubCloser{}, nil, nil)
	assert.Error(t, err)
}

func TestStart_InvalidSchedule(t *testing.T) {
	cfg := reportingConfig()
	cfg.CronSchedule = "every day"

	s, err := NewScheduler(cfg, &stubCloser{}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}
