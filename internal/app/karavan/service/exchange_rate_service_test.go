package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// providerPayload is what the provider returns: foreign units per 1 TRY.
func providerPayload() map[string]float64 {
	return map[string]float64{
		"USD": 0.024,
		"EUR": 0.020,
		"GBP": 0.017,
	}
}

// ===================== GetRates Tests =====================

func TestGetRates_FetchesAndInverts(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(providerPayload(), nil)
	snapshotRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.ExchangeRateSnapshot")).Return(nil)

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1.0, snapshot.Rates["TRY"])
	assert.InDelta(t, 1/0.024, snapshot.Rates["USD"], 0.0001)
	assert.InDelta(t, 1/0.020, snapshot.Rates["EUR"], 0.0001)
	assert.InDelta(t, 1/0.017, snapshot.Rates["GBP"], 0.0001)
	apiClient.AssertExpectations(t)
	snapshotRepo.AssertExpectations(t)
}

func TestGetRates_CachedWithinTTL(t *testing.T) {
	// Within the TTL the provider must be called exactly once and every
	// caller sees the identical snapshot.
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(providerPayload(), nil).Once()
	snapshotRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()

	// Act
	first, err1 := svc.GetRates(ctx)
	second, err2 := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	assert.Equal(t, first.Rates, second.Rates)
	apiClient.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestGetRates_SharedCacheHit(t *testing.T) {
	// A fresh snapshot in the shared cache skips the provider entirely.
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)
	cache := new(mocks.MockRateCache)

	svc := NewExchangeRateService(snapshotRepo, apiClient, cache, 30*time.Minute)

	ctx := context.Background()

	cached := &entity.ExchangeRateSnapshot{
		Rates:     map[string]float64{"TRY": 1.0, "USD": 42.0, "EUR": 49.0, "GBP": 57.0},
		UpdatedAt: time.Now().Add(-time.Minute),
	}
	cache.On("GetRateSnapshot", ctx).Return(cached, nil)

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 42.0, snapshot.Rates["USD"])
	apiClient.AssertNotCalled(t, "FetchRates")
}

func TestGetRates_ProviderDown_FallsBackToPersisted(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	persisted := &entity.ExchangeRateSnapshot{
		Rates:     map[string]float64{"TRY": 1.0, "USD": 40.0, "EUR": 47.0, "GBP": 55.0},
		UpdatedAt: time.Now().Add(-2 * time.Hour),
	}

	apiClient.On("FetchRates", ctx).Return(nil, errors.New("connection refused"))
	snapshotRepo.On("GetLatest", ctx).Return(persisted, nil)

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 40.0, snapshot.Rates["USD"])
}

func TestGetRates_ProviderDownNoSnapshot_UsesDefaults(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(nil, errors.New("connection refused"))
	snapshotRepo.On("GetLatest", ctx).Return(nil, errors.New("no rows"))

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert: GetRates never fails, the hardcoded defaults are the floor
	assert.NoError(t, err)
	assert.Equal(t, entity.DefaultRates["USD"], snapshot.Rates["USD"])
	assert.Equal(t, 1.0, snapshot.Rates["TRY"])
}

func TestGetRates_MalformedPayload_TreatedAsProviderFailure(t *testing.T) {
	// A payload with a missing currency must not poison the snapshot.
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(map[string]float64{"USD": 0.024}, nil)
	snapshotRepo.On("GetLatest", ctx).Return(nil, errors.New("no rows"))

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.DefaultRates["EUR"], snapshot.Rates["EUR"])
	snapshotRepo.AssertNotCalled(t, "Upsert")
}

func TestGetRates_NegativeRate_TreatedAsProviderFailure(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	payload := providerPayload()
	payload["EUR"] = -0.02

	apiClient.On("FetchRates", ctx).Return(payload, nil)
	snapshotRepo.On("GetLatest", ctx).Return(nil, errors.New("no rows"))

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.DefaultRates["EUR"], snapshot.Rates["EUR"])
}

func TestGetRates_PersistFailureDoesNotFailRequest(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(providerPayload(), nil)
	snapshotRepo.On("Upsert", ctx, mock.Anything).Return(errors.New("db down"))

	// Act
	snapshot, err := svc.GetRates(ctx)

	// Assert
	assert.NoError(t, err)
	assert.InDelta(t, 1/0.024, snapshot.Rates["USD"], 0.0001)
}

// ===================== ForceUpdate Tests =====================

func TestForceUpdate_BypassesTTL(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(providerPayload(), nil)
	snapshotRepo.On("Upsert", ctx, mock.Anything).Return(nil)

	// Act: warm the cache, then force
	_, _ = svc.GetRates(ctx)
	_, err := svc.ForceUpdate(ctx)

	// Assert
	assert.NoError(t, err)
	apiClient.AssertNumberOfCalls(t, "FetchRates", 2)
}

func TestForceUpdate_SurfacesProviderError(t *testing.T) {
	// ForceUpdate must not hide failures behind the fallback chain.
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(nil, errors.New("connection refused"))

	// Act
	snapshot, err := svc.ForceUpdate(ctx)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, snapshot)
	snapshotRepo.AssertNotCalled(t, "GetLatest")
}

func TestForceUpdate_KeepsServingOldSnapshotAfterFailure(t *testing.T) {
	// Arrange
	snapshotRepo := new(mocks.MockRateSnapshotRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	svc := NewExchangeRateService(snapshotRepo, apiClient, nil, 30*time.Minute)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(providerPayload(), nil).Once()
	snapshotRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()

	first, err := svc.GetRates(ctx)
	assert.NoError(t, err)

	apiClient.On("FetchRates", ctx).Return(nil, errors.New("connection refused"))

	// Act
	_, forceErr := svc.ForceUpdate(ctx)
	current, getErr := svc.GetRates(ctx)

	// Assert: the failed force left the last good snapshot in place
	assert.Error(t, forceErr)
	assert.NoError(t, getErr)
	assert.Equal(t, first.Rates, current.Rates)
}
