// Package rateprovider implements the external exchange rate provider client.
package rateprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches live rates from an exchangerate-api compatible endpoint.
// The endpoint serves GET {baseURL}/{base} and responds with the full rate
// table for that base currency.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. A nil httpClient gets a timeout-bounded
// default so a slow provider cannot stall rate resolution indefinitely.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// providerResponse is the wire shape of the provider's rate table.
type providerResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates retrieves the full rate table for a base currency.
func (c *Client) FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate provider request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach rate provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var providerResp providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		return nil, fmt.Errorf("failed to decode rate provider response: %w", err)
	}
	if len(providerResp.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates for base %s", baseCurrency)
	}
	return providerResp.Rates, nil
}
