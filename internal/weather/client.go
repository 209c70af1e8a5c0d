package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrAPIKeyMissing is returned when the OpenWeather key is not configured.
// This is a hard configuration failure, never a degraded mode.
var ErrAPIKeyMissing = errors.New("openweather api key is not configured")

// ProviderError is a non-2xx response from the weather provider. It carries
// the upstream status code and raw body for diagnostics.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather api error: %d - %s", e.StatusCode, e.Body)
}

// Client fetches current weather from OpenWeatherMap. Every call is a fresh
// network request: no retries (fallback is the orchestrator's job) and no
// caching. A circuit breaker guards the upstream so a flapping provider does
// not hold every turn open for the full timeout.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a weather client using the shared outbound HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		circuit: cb,
	}
}

// Current fetches the current weather for a city and normalizes the payload
// into a Record.
func (c *Client) Current(ctx context.Context, city string) (Record, error) {
	if c.apiKey == "" {
		return Record{}, ErrAPIKeyMissing
	}

	values := url.Values{}
	values.Set("q", strings.TrimSpace(city))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Record{}, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Record{}, fmt.Errorf("weather provider unavailable: %w", err)
		}
		return Record{}, err
	}

	body, ok := result.([]byte)
	if !ok {
		return Record{}, fmt.Errorf("unexpected result type from circuit breaker")
	}

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Visibility *float64 `json:"visibility"` // meters, optional
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return Record{}, fmt.Errorf("decoding weather payload: %w", err)
	}
	if len(payload.Weather) == 0 {
		return Record{}, fmt.Errorf("weather payload missing condition data")
	}

	rec := Record{
		City:        payload.Name,
		Temp:        payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Condition:   payload.Weather[0].Main,
		Description: payload.Weather[0].Description,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}

	if payload.Visibility != nil {
		km := math.Round(*payload.Visibility/1000*10) / 10
		rec.VisibilityKm = &km
	}

	return rec, nil
}
