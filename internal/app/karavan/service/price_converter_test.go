package service

import (
	"math"
	"testing"
	"time"

	"karavan/internal/app/karavan/entity"

	"github.com/stretchr/testify/assert"
)

func testSnapshot() *entity.ExchangeRateSnapshot {
	return &entity.ExchangeRateSnapshot{
		Rates: map[string]float64{
			"TRY": 1.0,
			"USD": 41.5,
			"EUR": 48.7,
			"GBP": 56.2,
		},
		UpdatedAt: time.Now(),
	}
}

func TestConvertToTRY_USD(t *testing.T) {
	result, err := ConvertToTRY(100, "USD", testSnapshot())

	assert.NoError(t, err)
	assert.InDelta(t, 4150.0, result, 0.0001)
}

func TestConvertToTRY_TRYPassthrough(t *testing.T) {
	// TRY amounts must come back bit-exact, no arithmetic applied
	amount := 1234.56

	result, err := ConvertToTRY(amount, "TRY", testSnapshot())

	assert.NoError(t, err)
	assert.Equal(t, amount, result)
}

func TestConvertToTRY_UnknownCurrency(t *testing.T) {
	_, err := ConvertToTRY(100, "JPY", testSnapshot())

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestConvertToTRY_InvalidAmounts(t *testing.T) {
	snapshot := testSnapshot()

	for _, amount := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := ConvertToTRY(amount, "USD", snapshot)
		assert.ErrorIs(t, err, ErrConversion)
	}
}

func TestConvertToTRY_OverflowingRate(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Rates["USD"] = math.MaxFloat64

	_, err := ConvertToTRY(math.MaxFloat64, "USD", snapshot)

	assert.ErrorIs(t, err, ErrConversion)
}
