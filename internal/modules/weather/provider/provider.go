// Package provider fetches forecast and air-quality payloads from OpenWeatherMap.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Ki-Sung/weather-email-service/internal/config"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// Source is what the delivery service needs from the upstream provider.
type Source interface {
	FetchWeather(ctx context.Context) (*types.WeatherPayload, error)
	FetchAirQuality(ctx context.Context) (*types.AirQualityPayload, error)
}

type Client struct {
	apiKey        string
	oneCallURL    string
	airQualityURL string
	lat, lon      float64

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ Source = (*Client)(nil)

func NewClient(cfg config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := cfg.FetchRatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		apiKey:        cfg.OWMAPIKey,
		oneCallURL:    cfg.OWMOneCallURL,
		airQualityURL: cfg.OWMAirPollutionURL,
		lat:           cfg.Latitude,
		lon:           cfg.Longitude,
		httpClient:    &http.Client{Timeout: cfg.FetchTimeout},
		limiter:       rate.NewLimiter(rate.Limit(rps), 2),
		logger:        logger,
	}
}

// FetchWeather requests the One Call forecast (metric units, minutely data excluded).
// Any non-200 response is an error.
func (c *Client) FetchWeather(ctx context.Context) (*types.WeatherPayload, error) {
	q := c.baseQuery()
	q.Set("exclude", "minutely")
	q.Set("units", "metric")

	var out types.WeatherPayload
	status, err := c.getJSON(ctx, c.oneCallURL, q, &out)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch weather: %w: %d", ErrUnexpectedStatus, status)
	}
	return &out, nil
}

// FetchAirQuality requests current air pollution. A non-200 response yields
// (nil, nil) so callers can degrade to an unknown level.
func (c *Client) FetchAirQuality(ctx context.Context) (*types.AirQualityPayload, error) {
	var out types.AirQualityPayload
	status, err := c.getJSON(ctx, c.airQualityURL, c.baseQuery(), &out)
	if err != nil {
		return nil, fmt.Errorf("fetch air quality: %w", err)
	}
	if status != http.StatusOK {
		c.logger.Warn("air quality unavailable", "status", status)
		return nil, nil
	}
	return &out, nil
}

func (c *Client) baseQuery() url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	return q
}

// getJSON decodes the body into out only for 200 responses.
func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("close response body", "error", err)
		}
	}()

	c.logger.Debug("upstream request",
		"host", u.Host,
		"path", u.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
