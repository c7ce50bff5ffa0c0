package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"karavan/internal/app/karavan/entity"
)

// ExchangeRateAPIClientImpl is the HTTP client for the external rate provider.
// It only performs the request and decodes the payload; validation and
// inversion of the rates happen in ExchangeRateService.
type ExchangeRateAPIClientImpl struct {
	apiURL     string
	httpClient *http.Client
}

func NewExchangeRateAPIClient(apiURL string, timeoutSec int) *ExchangeRateAPIClientImpl {
	return &ExchangeRateAPIClientImpl{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// FetchRates performs one GET against the provider.
// Returned values are units of foreign currency per 1 TRY.
func (c *ExchangeRateAPIClientImpl) FetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: provider returned status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrProviderUnavailable, err)
	}

	var apiResponse entity.ExchangeRatesProviderResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProviderResponse, err)
	}

	if len(apiResponse.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data field", ErrMalformedProviderResponse)
	}

	return apiResponse.Data, nil
}
