package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mittimitra/advisory/internal/core/disease"
	"github.com/mittimitra/advisory/internal/core/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps semantic error kinds to HTTP statuses. Internal detail
// stays in the server log; only invalid-input causes reach the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logAttrs := []any{"request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err}

	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": domain.CauseMessage(err)})
	case domain.IsKind(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case domain.IsKind(err, domain.ErrUpstreamUnavailable), domain.IsKind(err, domain.ErrTemporary):
		s.logger.Warn("upstream failure", logAttrs...)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "upstream service unavailable"})
	case domain.IsKind(err, domain.ErrPredictionEmpty):
		s.logger.Error("prediction pipeline returned nothing", logAttrs...)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Crop prediction failed"})
	default:
		s.logger.Error("request failed", logAttrs...)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": s.service})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	set, err := s.recommend.Recommend(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleRecentPredictions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	predictions, err := s.predictions.Recent(r.Context(), r.URL.Query().Get("device_id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if predictions == nil {
		predictions = []domain.StoredPrediction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":       len(predictions),
		"predictions": predictions,
	})
}

func (s *Server) handlePredictionStats(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 0)
	stats, err := s.predictions.Statistics(r.Context(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"crop_counts": stats})
}

func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	var req domain.RecoveryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	plan, err := s.recovery.Plan(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleSensorIngest(w http.ResponseWriter, r *http.Request) {
	var reading domain.SensorReading
	if !decodeBody(w, r, &reading) {
		return
	}
	accepted, err := s.sensors.Ingest(r.Context(), reading)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":  "accepted",
		"reading": accepted,
	})
}

func (s *Server) handleSensorLatest(w http.ResponseWriter, r *http.Request) {
	reading, err := s.sensors.Latest(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (s *Server) handleSensorAggregate(w http.ResponseWriter, r *http.Request) {
	agg, err := s.sensors.Aggregate(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleDiseaseAggregate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Predictions []domain.DiseaseVote `json:"predictions"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	verdict, err := disease.Aggregate(req.Predictions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleSendSMS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Phone == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "phone and message are required"})
		return
	}

	body, status, err := s.sms.Send(r.Context(), req.Phone, req.Message)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("send sms: %w: %w", domain.ErrUpstreamUnavailable, err))
		return
	}
	// Provider status and body pass through untouched.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
