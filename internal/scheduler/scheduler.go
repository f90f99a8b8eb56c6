package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/config"
	"github.com/mamadbah2/barstock/pkg/clients/whatsapp"
)

// Digester renders the stock digest sent to the manager.
type Digester interface {
	Digest(now time.Time) string
}

// Scheduler delivers the stock digest on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	location  *time.Location
	recipient string
	digester  Digester
	client    whatsapp.Client
	now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler creates a scheduler evaluating cfg.CronSchedule in cfg.Timezone.
func NewScheduler(cfg config.ReportingConfig, recipient string, digester Digester, client whatsapp.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		schedule:  cfg.CronSchedule,
		location:  location,
		recipient: recipient,
		digester:  digester,
		client:    client,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.schedule, err)
	}
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// SendDigest renders and delivers the digest immediately.
func (s *Scheduler) SendDigest(ctx context.Context) error {
	body := s.digester.Digest(s.now().In(s.location))

	resp, err := s.client.SendTextMessage(ctx, whatsapp.SendTextMessageRequest{
		To:   s.recipient,
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("deliver digest: %w", err)
	}

	if resp != nil && len(resp.Messages) > 0 {
		s.logger.Info("digest delivered", zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.SendDigest(ctx); err != nil {
		s.logger.Error("failed to send digest", zap.Error(err))
	}
}
