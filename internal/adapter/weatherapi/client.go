// Package weatherapi implements the weather provider port against
// weatherapi.com's current-conditions endpoint.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"envmetrics/internal/domain"
)

// ErrNoAPIKey indicates the client was constructed without an API key.
var ErrNoAPIKey = errors.New("weatherapi key is not configured")

// DefaultBaseURL is weatherapi.com's production endpoint.
const DefaultBaseURL = "http://api.weatherapi.com/v1"

// Client calls weatherapi.com. Every request carries a bounded timeout via the
// underlying http.Client; there is no retry. Repeated upstream failures open a
// circuit breaker so a dead provider fails fast instead of burning the quota.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

var _ domain.WeatherProvider = (*Client)(nil)

// New creates a Client. baseURL defaults to DefaultBaseURL, timeout to 10s.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "weatherapi",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Current fetches current conditions for city.
func (c *Client) Current(ctx context.Context, city string) (domain.WeatherObservation, error) {
	if c.apiKey == "" {
		return domain.WeatherObservation{}, ErrNoAPIKey
	}

	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("q", city)
	u := fmt.Sprintf("%s/current.json?%s", c.baseURL, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WeatherObservation{}, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("weatherapi: unexpected status %d", resp.StatusCode)
		}

		var payload struct {
			Location struct {
				Name string `json:"name"`
			} `json:"location"`
			Current struct {
				TempC      float64 `json:"temp_c"`
				Humidity   float64 `json:"humidity"`
				PressureMb float64 `json:"pressure_mb"`
			} `json:"current"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("weatherapi: decode response: %w", err)
		}

		return domain.WeatherObservation{
			City:       payload.Location.Name,
			TempC:      payload.Current.TempC,
			Humidity:   payload.Current.Humidity,
			PressureMb: payload.Current.PressureMb,
		}, nil
	})
	if err != nil {
		return domain.WeatherObservation{}, err
	}
	return result.(domain.WeatherObservation), nil
}
