package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/infrastructure/resilience"
)

// defaultRainfall substitutes when the provider reports no recent rain; the
// crop model expects seasonal rainfall in mm, not an hourly gauge.
const defaultRainfall = 100.0

// Client fetches current conditions from the OpenWeather current-weather API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		executor:   executor,
	}
}

type currentWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

func (c *Client) CurrentWeather(ctx context.Context, location string) (domain.Weather, error) {
	var out domain.Weather
	call := func(ctx context.Context) error {
		weather, err := c.fetch(ctx, location)
		if err != nil {
			return err
		}
		out = weather
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "weather.current", call, nil)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.Weather{}, domain.WrapError(domain.ErrUpstreamUnavailable, "fetch current weather", err)
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, location string) (domain.Weather, error) {
	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+query.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("create weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.Weather{}, fmt.Errorf("weather status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Weather{}, fmt.Errorf("decode weather response: %w", err)
	}

	rainfall := payload.Rain.OneHour
	if rainfall == 0 {
		rainfall = defaultRainfall
	}
	return domain.Weather{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Rainfall:    rainfall,
	}, nil
}
