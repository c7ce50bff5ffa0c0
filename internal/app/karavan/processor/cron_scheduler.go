package processor

import (
	"context"

	"karavan/internal/app/karavan/service"
	"karavan/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler refreshes the exchange rates on a fixed schedule so that
// interactive requests rarely pay the provider round-trip.
type CronScheduler struct {
	cron        *cron.Cron
	exchangeSvc service.ExchangeRateServiceInterface
}

func NewCronScheduler(exchangeSvc service.ExchangeRateServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:        cron.New(),
		exchangeSvc: exchangeSvc,
	}
}

// Start registers the refresh job and warms the snapshot once immediately.
// The initial warm-up goes through GetRates so a dead provider at boot is
// absorbed by the fallback chain instead of failing startup.
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("cron job triggered: updating exchange rates")

		if _, err := s.exchangeSvc.ForceUpdate(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled exchange rate update failed")
			return
		}

		logger.Info().Msg("scheduled exchange rate update completed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	if _, err := s.exchangeSvc.GetRates(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial exchange rate warm-up failed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
