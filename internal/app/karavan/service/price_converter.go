package service

import (
	"fmt"
	"math"

	"karavan/internal/app/karavan/entity"
	"karavan/pkg/metrics"
)

// ConvertToTRY converts amount from the given currency into TRY using the
// provided snapshot. TRY amounts pass through bit-exact without any
// arithmetic. The result is guaranteed finite and positive; anything else
// is an ErrConversion and must not be stored.
func ConvertToTRY(amount float64, currency string, snapshot *entity.ExchangeRateSnapshot) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("%w: invalid amount %v", ErrConversion, amount)
	}

	if currency == entity.CanonicalCurrency {
		metrics.RecordConversion(metrics.ServiceName, currency)
		return amount, nil
	}

	rate, ok := snapshot.Rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}

	result := amount * rate
	if math.IsNaN(result) || math.IsInf(result, 0) || result <= 0 {
		return 0, fmt.Errorf("%w: %v %s at rate %v", ErrConversion, amount, currency, rate)
	}

	metrics.RecordConversion(metrics.ServiceName, currency)
	return result, nil
}
