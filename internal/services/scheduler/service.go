// Package scheduler runs the background catalog refresh on a cron
// schedule so long-lived sessions do not pay the refresh cost inside a
// search call.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apidex/internal/interfaces"
)

// Service wraps a cron runner around the cache refresh.
type Service struct {
	cache    interfaces.CacheService
	schedule string
	cron     *cron.Cron
	logger   arbor.ILogger
}

// NewService creates a new scheduler service. An empty schedule disables it.
func NewService(cache interfaces.CacheService, schedule string, logger arbor.ILogger) *Service {
	return &Service{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the refresh job and starts the cron runner.
func (s *Service) Start() error {
	if s.schedule == "" {
		s.logger.Debug().Msg("No refresh schedule configured, scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if !s.cache.IsExpired() {
			return
		}
		s.logger.Info().Str("schedule", s.schedule).Msg("Scheduled catalog refresh starting")
		s.cache.RefreshAll(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", s.schedule).Msg("Catalog refresh scheduler started")
	return nil
}

// Stop stops the cron runner, waiting for a running refresh to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
