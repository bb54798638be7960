package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/espinosa98/rifa-backend/config"
)

// ErrRateUnavailable is returned when the upstream API answers without the
// requested currency.
var ErrRateUnavailable = errors.New("conversion rate unavailable")

// ratesPayload mirrors the exchangerate-api v4 response shape.
type ratesPayload struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches currency conversion rates from a third-party API.
type Client struct {
	http     *resty.Client
	apiURL   string
	currency string
}

// NewClient creates a rate client with a request timeout and a single retry.
func NewClient(cfg *config.ExchangeConfig) *Client {
	http := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(1)
	if cfg.APIKey != "" {
		http.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &Client{
		http:     http,
		apiURL:   cfg.APIURL,
		currency: cfg.Currency,
	}
}

// Currency returns the configured target currency code.
func (c *Client) Currency() string {
	return c.currency
}

// Rate fetches the USD conversion rate for the configured currency.
func (c *Client) Rate(ctx context.Context) (float64, error) {
	var payload ratesPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.apiURL)
	if err != nil {
		return 0, fmt.Errorf("fetching conversion rate: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("fetching conversion rate: HTTP %d", resp.StatusCode())
	}

	rate, ok := payload.Rates[c.currency]
	if !ok {
		return 0, ErrRateUnavailable
	}
	return rate, nil
}
