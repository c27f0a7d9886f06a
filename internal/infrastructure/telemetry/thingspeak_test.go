package telemetry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

func TestLatestMapsChannelFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/12345/feeds/last.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"entry_id": 42,
			"created_at": "2026-03-01T10:00:00Z",
			"field1": "27.5", "field2": "68", "field3": "41.2",
			"field4": "6.4", "field5": "82", "field6": "38", "field7": "44"
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "12345", "readkey")
	feed, err := client.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if feed == nil {
		t.Fatal("expected a feed entry")
	}
	if feed.EntryID != 42 {
		t.Errorf("EntryID = %d, want 42", feed.EntryID)
	}
	if feed.Temperature != 27.5 || feed.Humidity != 68 || feed.Moisture != 41.2 {
		t.Errorf("environment fields mismatched: %+v", feed)
	}
	if feed.SoilPH != 6.4 || feed.Nitrogen != 82 || feed.Phosphorus != 38 || feed.Potassium != 44 {
		t.Errorf("soil fields mismatched: %+v", feed)
	}
}

func TestLatestEmptyChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`-1`))
	}))
	defer server.Close()

	client := New(server.URL, "12345", "readkey")
	feed, err := client.Latest(context.Background())
	if err == nil && feed != nil {
		t.Fatalf("expected nil feed for empty channel, got %+v", feed)
	}
}

func TestAggregateComputesColumnMeans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("results"); got != "30" {
			t.Errorf("results = %q, want 30", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"feeds": [
			{"entry_id": 1, "field1": "20", "field2": "60", "field3": "40", "field4": "6.0", "field5": "80", "field6": "30", "field7": "40"},
			{"entry_id": 2, "field1": "30", "field2": "70", "field3": "50", "field4": "7.0", "field5": "90", "field6": "50", "field7": "44"},
			{"entry_id": 3, "field1": "not-a-number", "field2": "", "field3": "45", "field4": "6.5", "field5": "85", "field6": "40", "field7": "42"}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, "12345", "readkey")
	agg, err := client.Aggregate(context.Background(), 30)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	// Unparsable values drop out of their column only.
	if agg.Temperature != 25 {
		t.Errorf("Temperature = %v, want 25", agg.Temperature)
	}
	if agg.Humidity != 65 {
		t.Errorf("Humidity = %v, want 65", agg.Humidity)
	}
	if agg.Moisture != 45 || agg.PH != 6.5 || agg.N != 85 || agg.P != 40 || agg.K != 42 {
		t.Errorf("soil means mismatched: %+v", agg)
	}
	if agg.Rainfall != 100 {
		t.Errorf("Rainfall = %v, want the 100 default", agg.Rainfall)
	}
}

func TestAggregateEmptyWindowIsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"feeds": []}`))
	}))
	defer server.Close()

	client := New(server.URL, "12345", "readkey")
	if _, err := client.Aggregate(context.Background(), 30); !domain.IsKind(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

type pollerSourceFake struct {
	feeds []*domain.TelemetryFeed
	errs  []error
	calls int
}

func (f *pollerSourceFake) Latest(context.Context) (*domain.TelemetryFeed, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var feed *domain.TelemetryFeed
	if i < len(f.feeds) {
		feed = f.feeds[i]
	}
	return feed, err
}

func (f *pollerSourceFake) Aggregate(context.Context, int) (*domain.TelemetryAggregate, error) {
	return nil, nil
}

type pollerQueueFake struct {
	published []domain.SensorReading
}

func (f *pollerQueueFake) PublishSensorReading(_ context.Context, reading domain.SensorReading) error {
	f.published = append(f.published, reading)
	return nil
}

func (f *pollerQueueFake) SubscribeSensorReadings(context.Context, func(context.Context, domain.SensorReading) error) error {
	return nil
}

func TestPollerDeduplicatesByEntryID(t *testing.T) {
	source := &pollerSourceFake{feeds: []*domain.TelemetryFeed{
		{EntryID: 10, Temperature: 26, Nitrogen: 81},
		{EntryID: 10, Temperature: 26, Nitrogen: 81},
		{EntryID: 11, Temperature: 27, Nitrogen: 83},
	}}
	queue := &pollerQueueFake{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	poller := NewPoller(source, queue, metrics.NewWorkerMetrics("test"), "test", defaultPollInterval, logger)

	for i := 0; i < 3; i++ {
		poller.poll(context.Background())
	}

	if len(queue.published) != 2 {
		t.Fatalf("expected 2 published readings, got %d", len(queue.published))
	}
	if queue.published[0].Nitrogen != 81 || queue.published[1].Nitrogen != 83 {
		t.Errorf("published wrong readings: %+v", queue.published)
	}
	for _, reading := range queue.published {
		if reading.DeviceID != pollerDeviceID {
			t.Errorf("DeviceID = %q, want %q", reading.DeviceID, pollerDeviceID)
		}
		if reading.ID == "" || reading.CreatedAt.IsZero() {
			t.Errorf("reading missing id or timestamp: %+v", reading)
		}
	}
}
