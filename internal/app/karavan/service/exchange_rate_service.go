package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository"
	"karavan/pkg/logger"
	"karavan/pkg/metrics"
)

// ExchangeRateService owns the process-wide exchange-rate snapshot.
//
// GetRates never fails under normal conditions: a fresh in-memory snapshot is
// served within the TTL, then the shared Redis cache is consulted, then the
// provider; on provider failure the last persisted snapshot, and as a final
// resort the hardcoded default rates. ForceUpdate is the one operation that
// surfaces provider errors, since it is an explicit "refresh now" request.
type ExchangeRateService struct {
	snapshotRepo repository.RateSnapshotRepository
	apiClient    ExchangeRateAPIClient
	cache        RateCache // optional shared cache, may be nil
	ttl          time.Duration

	// mu guards current/fetchedAt. The snapshot itself is immutable after
	// publication and always replaced as a whole, so readers can never
	// observe a torn rate table.
	mu        sync.RWMutex
	current   *entity.ExchangeRateSnapshot
	fetchedAt time.Time
}

func NewExchangeRateService(
	snapshotRepo repository.RateSnapshotRepository,
	apiClient ExchangeRateAPIClient,
	cache RateCache,
	ttl time.Duration,
) *ExchangeRateService {
	return &ExchangeRateService{
		snapshotRepo: snapshotRepo,
		apiClient:    apiClient,
		cache:        cache,
		ttl:          ttl,
	}
}

// GetRates returns the current snapshot, refreshing it when the TTL expired.
// Repeated calls within the TTL return the identical snapshot (same UpdatedAt).
func (s *ExchangeRateService) GetRates(ctx context.Context) (*entity.ExchangeRateSnapshot, error) {
	s.mu.RLock()
	if s.current != nil && time.Since(s.fetchedAt) < s.ttl {
		snapshot := s.current
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	// another instance may have refreshed already
	if s.cache != nil {
		if cached, err := s.cache.GetRateSnapshot(ctx); err == nil && cached != nil {
			if time.Since(cached.UpdatedAt) < s.ttl && validateSnapshot(cached) == nil {
				s.store(cached)
				metrics.RecordRateUpdate(metrics.ServiceName, "redis")
				return cached, nil
			}
		}
	}

	snapshot, err := s.refresh(ctx)
	if err == nil {
		return snapshot, nil
	}

	logger.Warn().Err(err).Msg("exchange rate fetch failed, falling back to persisted snapshot")

	persisted, perr := s.snapshotRepo.GetLatest(ctx)
	if perr == nil {
		s.store(persisted)
		metrics.RecordRateUpdate(metrics.ServiceName, "persisted")
		return persisted, nil
	}

	logger.Warn().Err(perr).Msg("no persisted exchange rate snapshot, using default rates")

	fallback := entity.DefaultRateSnapshot()
	s.store(fallback)
	metrics.RecordRateUpdate(metrics.ServiceName, "default")
	return fallback, nil
}

// ForceUpdate bypasses the TTL and always fetches from the provider.
// Unlike GetRates it reports fetch failures to the caller.
func (s *ExchangeRateService) ForceUpdate(ctx context.Context) (*entity.ExchangeRateSnapshot, error) {
	snapshot, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// refresh fetches, validates and publishes a new snapshot.
func (s *ExchangeRateService) refresh(ctx context.Context) (*entity.ExchangeRateSnapshot, error) {
	raw, err := s.apiClient.FetchRates(ctx)
	if err != nil {
		metrics.RecordProviderFailure(metrics.ServiceName)
		return nil, err
	}

	rates, err := normalizeRates(raw)
	if err != nil {
		metrics.RecordProviderFailure(metrics.ServiceName)
		return nil, err
	}

	snapshot := &entity.ExchangeRateSnapshot{
		Rates:     rates,
		UpdatedAt: time.Now(),
	}

	s.store(snapshot)
	metrics.RecordRateUpdate(metrics.ServiceName, "provider")

	// persistence failures must not fail the refresh, the snapshot is
	// already live in memory
	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		logger.Warn().Err(err).Msg("failed to persist exchange rate snapshot")
	}

	if s.cache != nil {
		if err := s.cache.SetRateSnapshot(ctx, snapshot, s.ttl); err != nil {
			logger.Warn().Err(err).Msg("failed to cache exchange rate snapshot")
		}
	}

	logger.Info().
		Time("updated_at", snapshot.UpdatedAt).
		Int("currencies", len(snapshot.Rates)).
		Msg("exchange rates updated")

	return snapshot, nil
}

// store publishes a snapshot with a whole-value swap.
func (s *ExchangeRateService) store(snapshot *entity.ExchangeRateSnapshot) {
	s.mu.Lock()
	s.current = snapshot
	s.fetchedAt = time.Now()
	s.mu.Unlock()
}

// normalizeRates validates the raw provider payload (foreign units per 1 TRY)
// and inverts it into TRY per 1 foreign unit. TRY itself is pinned to 1.
func normalizeRates(raw map[string]float64) (map[string]float64, error) {
	rates := make(map[string]float64, len(entity.SupportedCurrencies))
	rates[entity.CanonicalCurrency] = 1.0

	for _, currency := range entity.SupportedCurrencies {
		if currency == entity.CanonicalCurrency {
			continue
		}

		value, ok := raw[currency]
		if !ok {
			return nil, fmt.Errorf("%w: missing currency %s", ErrMalformedProviderResponse, currency)
		}
		if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: invalid rate %v for %s", ErrMalformedProviderResponse, value, currency)
		}

		rates[currency] = 1 / value
	}

	return rates, nil
}

// validateSnapshot rejects snapshots (e.g. from the shared cache) that are
// missing required currencies or carry non-positive values.
func validateSnapshot(snapshot *entity.ExchangeRateSnapshot) error {
	for _, currency := range entity.SupportedCurrencies {
		value, ok := snapshot.Rates[currency]
		if !ok {
			return fmt.Errorf("%w: missing currency %s", ErrMalformedProviderResponse, currency)
		}
		if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: invalid rate %v for %s", ErrMalformedProviderResponse, value, currency)
		}
	}
	return nil
}
