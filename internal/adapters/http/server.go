package http

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

// Consumer-side views of the use cases, narrow enough to fake in tests.

type Recommender interface {
	Recommend(ctx context.Context, req domain.RecommendRequest) (*domain.RecommendationSet, error)
}

type RecoveryPlanner interface {
	Plan(ctx context.Context, req domain.RecoveryRequest) (*domain.RecoveryPlan, error)
}

type SensorService interface {
	Ingest(ctx context.Context, reading domain.SensorReading) (domain.SensorReading, error)
	Latest(ctx context.Context) (*domain.SensorReading, error)
	Aggregate(ctx context.Context) (*domain.TelemetryAggregate, error)
}

type PredictionQueries interface {
	Recent(ctx context.Context, deviceID string, limit int) ([]domain.StoredPrediction, error)
	Statistics(ctx context.Context, days int) (map[string]int, error)
}

// Server wires the advisory use cases to HTTP.
type Server struct {
	recommend   Recommender
	recovery    RecoveryPlanner
	sensors     SensorService
	predictions PredictionQueries
	sms         ports.SMSGateway
	metrics     *metrics.HTTPServerMetrics
	service     string
	logger      *slog.Logger
	limiter     *rate.Limiter
}

func NewServer(
	recommend Recommender,
	recovery RecoveryPlanner,
	sensors SensorService,
	predictions PredictionQueries,
	sms ports.SMSGateway,
	m *metrics.HTTPServerMetrics,
	service string,
	logger *slog.Logger,
	requestsPerSecond float64,
	burst int,
) *Server {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 50
	}
	if burst <= 0 {
		burst = 100
	}
	return &Server{
		recommend:   recommend,
		recovery:    recovery,
		sensors:     sensors,
		predictions: predictions,
		sms:         sms,
		metrics:     m,
		service:     service,
		logger:      logger,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/predict/recommend", s.handleRecommend)
	mux.HandleFunc("GET /api/predict/recent", s.handleRecentPredictions)
	mux.HandleFunc("GET /api/predict/stats", s.handlePredictionStats)
	mux.HandleFunc("POST /api/recovery/predict", s.handleRecovery)
	mux.HandleFunc("POST /api/sensor/data", s.handleSensorIngest)
	mux.HandleFunc("GET /api/sensor/latest", s.handleSensorLatest)
	mux.HandleFunc("GET /api/sensor/aggregate", s.handleSensorAggregate)
	mux.HandleFunc("POST /api/disease/aggregate", s.handleDiseaseAggregate)
	mux.HandleFunc("POST /api/sms/send", s.handleSendSMS)
	mux.Handle("GET /metrics", s.metrics.Handler())

	var handler http.Handler = mux
	handler = s.metrics.Middleware(s.service, handler)
	handler = s.rateLimitMiddleware(handler)
	handler = s.accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}
