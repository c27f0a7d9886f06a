package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mittimitra/advisory/internal/core/domain"
)

// Channel rainfall is not instrumented; the aggregate carries a fixed
// seasonal default instead.
const aggregateDefaultRainfall = 100.0

// Client reads a ThingSpeak channel. Field mapping follows the channel
// configuration: field1..field7 = temperature, humidity, moisture, pH, N, P, K.
type Client struct {
	baseURL    string
	channelID  string
	readKey    string
	httpClient *http.Client
}

func New(baseURL, channelID, readKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		channelID:  channelID,
		readKey:    readKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type feedEntry struct {
	EntryID   int64  `json:"entry_id"`
	CreatedAt string `json:"created_at"`
	Field1    string `json:"field1"`
	Field2    string `json:"field2"`
	Field3    string `json:"field3"`
	Field4    string `json:"field4"`
	Field5    string `json:"field5"`
	Field6    string `json:"field6"`
	Field7    string `json:"field7"`
}

// Latest returns the newest channel entry, or nil when the channel is empty.
func (c *Client) Latest(ctx context.Context) (*domain.TelemetryFeed, error) {
	var entry feedEntry
	path := fmt.Sprintf("/channels/%s/feeds/last.json?api_key=%s", c.channelID, url.QueryEscape(c.readKey))
	if err := c.getJSON(ctx, path, &entry); err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, "fetch latest feed", err)
	}
	if entry.EntryID == 0 {
		return nil, nil
	}
	feed := mapFeed(entry)
	return &feed, nil
}

// Aggregate fetches the last N entries and returns column-wise means rounded
// to 2 decimals. Entries with unparsable values contribute only their valid
// columns.
func (c *Client) Aggregate(ctx context.Context, results int) (*domain.TelemetryAggregate, error) {
	if results <= 0 {
		results = 30
	}

	var payload struct {
		Feeds []feedEntry `json:"feeds"`
	}
	path := fmt.Sprintf("/channels/%s/feeds.json?api_key=%s&results=%d", c.channelID, url.QueryEscape(c.readKey), results)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, "fetch feed window", err)
	}
	if len(payload.Feeds) == 0 {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, "fetch feed window",
			fmt.Errorf("channel returned no feeds"))
	}

	sums := make([]float64, 7)
	counts := make([]int, 7)
	for _, entry := range payload.Feeds {
		fields := []string{entry.Field1, entry.Field2, entry.Field3, entry.Field4, entry.Field5, entry.Field6, entry.Field7}
		for i, raw := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			sums[i] += v
			counts[i]++
		}
	}

	mean := func(i int) float64 {
		if counts[i] == 0 {
			return 0
		}
		return math.Round(sums[i]/float64(counts[i])*100) / 100
	}

	return &domain.TelemetryAggregate{
		Temperature: mean(0),
		Humidity:    mean(1),
		Moisture:    mean(2),
		PH:          mean(3),
		N:           mean(4),
		P:           mean(5),
		K:           mean(6),
		Rainfall:    aggregateDefaultRainfall,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("feed status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode feed response: %w", err)
	}
	return nil
}

func mapFeed(entry feedEntry) domain.TelemetryFeed {
	parse := func(raw string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0
		}
		return v
	}
	createdAt, _ := time.Parse(time.RFC3339, entry.CreatedAt)
	return domain.TelemetryFeed{
		EntryID:     entry.EntryID,
		CreatedAt:   createdAt,
		Temperature: parse(entry.Field1),
		Humidity:    parse(entry.Field2),
		Moisture:    parse(entry.Field3),
		SoilPH:      parse(entry.Field4),
		Nitrogen:    parse(entry.Field5),
		Phosphorus:  parse(entry.Field6),
		Potassium:   parse(entry.Field7),
	}
}
