package bootstrap

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "github.com/mittimitra/advisory/internal/adapters/http"
	"github.com/mittimitra/advisory/internal/config"
	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/core/predictor"
	"github.com/mittimitra/advisory/internal/core/rules"
	"github.com/mittimitra/advisory/internal/core/usecase"
	"github.com/mittimitra/advisory/internal/infrastructure/artifacts"
	"github.com/mittimitra/advisory/internal/infrastructure/narrative"
	natsqueue "github.com/mittimitra/advisory/internal/infrastructure/queue/nats"
	"github.com/mittimitra/advisory/internal/infrastructure/repository/postgres"
	"github.com/mittimitra/advisory/internal/infrastructure/resilience"
	"github.com/mittimitra/advisory/internal/infrastructure/sms"
	"github.com/mittimitra/advisory/internal/infrastructure/telemetry"
	"github.com/mittimitra/advisory/internal/infrastructure/translate"
	"github.com/mittimitra/advisory/internal/infrastructure/weather"
	"github.com/mittimitra/advisory/internal/observability/logging"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

// API bundles everything the api binary owns and must tear down.
type API struct {
	Config  config.Config
	Logger  *slog.Logger
	Handler http.Handler

	db    *sql.DB
	queue *natsqueue.Queue
}

func NewAPI(ctx context.Context, cfg config.Config) (*API, error) {
	logger := logging.New(cfg.Service, "api", cfg.LogLevel)
	httpMetrics := metrics.NewHTTPServerMetrics(cfg.Service)
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	db, err := postgres.OpenDB(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	predictionRepo := postgres.NewPredictionRepository(db)
	sensorRepo := postgres.NewSensorRepository(db)
	if err := predictionRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure prediction schema: %w", err)
	}
	if err := sensorRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure sensor schema: %w", err)
	}

	queue, err := natsqueue.NewWithOptions(cfg.NATS.URL, cfg.NATS.Subject, natsqueue.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect queue: %w", err)
	}

	modelDir := artifacts.NewDir(cfg.Models.Dir)
	translator := translate.NewStaticTranslator()
	crops := predictor.NewCropPredictor(modelDir, translator, logger)
	fertilizer := predictor.NewFertilizerRecommender(modelDir, translator, logger)
	yield := predictor.NewYieldPredictor(modelDir, logger)
	recoveryModel := predictor.NewRecoveryModel(modelDir, logger)

	weatherClient := weather.New(cfg.Weather.BaseURL, cfg.Weather.APIKey, executor)
	telemetryClient := telemetry.New(cfg.Telemetry.BaseURL, cfg.Telemetry.ChannelID, cfg.Telemetry.ReadKey)

	var narrator ports.NarrativeGenerator
	narrator, err = narrative.New(cfg.Narrative.BaseURL, cfg.Narrative.APIKey, cfg.Narrative.Model)
	if err != nil {
		logger.Warn("narrative generation disabled, recovery plans use the templated explanation", "error", err)
		narrator = disabledNarrative{}
	}

	var gateway ports.SMSGateway
	gateway, err = sms.New(cfg.SMS.Endpoint, cfg.SMS.APIKey)
	if err != nil {
		logger.Warn("sms relay disabled", "error", err)
		gateway = disabledSMS{}
	}

	resolver := usecase.NewFeatureResolver(weatherClient, telemetryClient, logger)
	recommendUC := usecase.NewRecommendUseCase(resolver, crops, fertilizer, yield, predictionRepo, httpMetrics, cfg.Service, logger)
	recoveryUC := usecase.NewRecoveryUseCase(recoveryModel, rules.NewSchemeService(cfg.Models.SchemesPath, logger), narrator, httpMetrics, cfg.Service, logger)
	sensorUC := usecase.NewSensorUseCase(queue, sensorRepo, telemetryClient)
	predictionUC := usecase.NewPredictionQueryUseCase(predictionRepo)

	server := httpadapter.NewServer(
		recommendUC, recoveryUC, sensorUC, predictionUC, gateway,
		httpMetrics, cfg.Service, logger,
		cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst,
	)

	return &API{
		Config:  cfg,
		Logger:  logger,
		Handler: server.Handler(),
		db:      db,
		queue:   queue,
	}, nil
}

func (a *API) Close() {
	if a.queue != nil {
		a.queue.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

type disabledNarrative struct{}

func (disabledNarrative) GenerateExplanation(context.Context, domain.RecoveryPlan) (string, error) {
	return "", fmt.Errorf("narrative generation disabled: no API key configured")
}

type disabledSMS struct{}

func (disabledSMS) Send(context.Context, string, string) (json.RawMessage, int, error) {
	return nil, 0, fmt.Errorf("sms relay disabled: no API key configured")
}
