package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"commontable-alerts/metrics"
)

// DispatchService runs digest sends, either from the daily cron trigger or
// the manual send-daily endpoint. Both paths share Run; overlapping runs are
// allowed since duplicate digests carry no state mutation.
type DispatchService struct {
	registry SubscriberRegistry
	digest   *DigestService
	sender   SMSSender
	log      *zap.Logger
	m        *metrics.Metrics
	cron     *cron.Cron
}

func NewDispatchService(
	registry SubscriberRegistry,
	digest *DigestService,
	sender SMSSender,
	log *zap.Logger,
	m *metrics.Metrics,
	tzName string,
) (*DispatchService, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load schedule timezone %q: %w", tzName, err)
	}
	return &DispatchService{
		registry: registry,
		digest:   digest,
		sender:   sender,
		log:      log.With(zap.String("component", "dispatch")),
		m:        m,
		cron:     cron.New(cron.WithLocation(loc)),
	}, nil
}

// Run sends the digest for day (0=Sun..6=Sat; negative means today) to every
// active subscriber. Delivery is best-effort per recipient: a failed send is
// counted and skipped, never retried, and never touches the registry. The
// returned counts are total subscribers attempted and successful sends. A
// registry read failure aborts the run with zero sends.
func (s *DispatchService) Run(day int) (subscribers, sent int, err error) {
	start := time.Now()
	s.m.DispatchRuns.Inc()

	if day < 0 {
		day = int(time.Now().Weekday())
	}
	log := s.log.With(zap.String("run_id", uuid.NewString()), zap.Int("day", day))

	body := s.digest.BuildDailyMessage(day)

	phones, err := s.registry.ListActiveForDailyDigest()
	if err != nil {
		s.m.DispatchErrors.Inc()
		log.Error("failed to list subscribers", zap.Error(err))
		return 0, 0, err
	}

	for _, phone := range phones {
		if s.sender.Send(phone, body) {
			sent++
			s.m.SMSSent.Inc()
		} else {
			s.m.SMSFailed.Inc()
		}
	}

	dur := time.Since(start)
	s.m.DispatchSeconds.Observe(dur.Seconds())
	log.Info("dispatch run completed",
		zap.Int("subscribers", len(phones)),
		zap.Int("sent", sent),
		zap.Duration("duration", dur),
	)
	return len(phones), sent, nil
}

// Start schedules the recurring daily run at hour:minute in the configured
// time zone.
func (s *DispatchService) Start(hour, minute int) error {
	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	if _, err := s.cron.AddFunc(spec, func() {
		if _, _, err := s.Run(-1); err != nil {
			s.log.Error("scheduled dispatch failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule daily dispatch: %w", err)
	}
	s.cron.Start()
	s.log.Info("daily dispatch scheduled", zap.Int("hour", hour), zap.Int("minute", minute))
	return nil
}

// Stop cancels the recurring trigger and waits for a running job to finish.
func (s *DispatchService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("dispatch scheduler stopped")
}
