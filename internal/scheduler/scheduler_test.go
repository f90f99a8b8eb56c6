package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/barstock/internal/config"
	"github.com/mamadbah2/barstock/pkg/clients/whatsapp"
)

type digestFunc func(time.Time) string

func (f digestFunc) Digest(now time.Time) string { return f(now) }

type recordingClient struct {
	sent []whatsapp.SendTextMessageRequest
	err  error
}

func (c *recordingClient) SendTextMessage(_ context.Context, req whatsapp.SendTextMessageRequest) (*whatsapp.SendTextMessageResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.sent = append(c.sent, req)
	return &whatsapp.SendTextMessageResponse{}, nil
}

func TestSendDigest(t *testing.T) {
	client := &recordingClient{}
	var rendered time.Time
	digester := digestFunc(func(now time.Time) string {
		rendered = now
		return "Stock digest " + now.Format("2006-01-02")
	})

	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 9 * * 1", Timezone: "UTC"}, "5215550000", digester, client, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 3, 9, 9, 0, 0, 0, time.FixedZone("CST", -6*3600)) }

	require.NoError(t, s.SendDigest(context.Background()))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "5215550000", client.sent[0].To)
	assert.Equal(t, "Stock digest 2026-03-09", client.sent[0].Body)
	assert.Equal(t, time.UTC, rendered.Location())
}

func TestSendDigestError(t *testing.T) {
	client := &recordingClient{err: errors.New("unreachable")}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 9 * * 1", Timezone: "UTC"}, "1", digestFunc(func(time.Time) string { return "" }), client, nil)
	require.NoError(t, err)

	assert.ErrorContains(t, s.SendDigest(context.Background()), "deliver digest")
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 9 * * 1", Timezone: "Mars/Olympus"}, "1", nil, nil, nil)
	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every monday", Timezone: "UTC"}, "1", nil, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 9 * * 1", Timezone: "UTC"}, "1", nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
