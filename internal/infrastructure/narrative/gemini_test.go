package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mittimitra/advisory/internal/core/domain"
)

func TestGenerateExplanation(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("missing api key in query")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "**Situation Analysis**: heavy damage..."}]}}]}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "secret", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	plan := domain.RecoveryPlan{
		Decision:   domain.DecisionFinancialRelief,
		Reason:     "Override: Damage > 75% and insufficient time for recovery.",
		Confidence: 0.95,
		EcoAdvisory: []domain.AdvisoryNote{
			{Issue: "Low Nitrogen", Solution: "Use organic compost", Type: "eco"},
		},
		Schemes: []domain.Scheme{
			{SchemeName: "PMFBY (Pradhan Mantri Fasal Bima Yojana)", Benefit: "Insurance payout"},
		},
	}
	text, err := client.GenerateExplanation(context.Background(), plan)
	if err != nil {
		t.Fatalf("GenerateExplanation() error = %v", err)
	}
	if !strings.Contains(text, "Situation Analysis") {
		t.Errorf("unexpected narrative: %q", text)
	}

	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", captured)
	}
	prompt := captured.Contents[0].Parts[0].Text
	for _, want := range []string{plan.Decision, plan.Reason, "Use organic compost", "PMFBY"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateExplanationNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "secret", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.GenerateExplanation(context.Background(), domain.RecoveryPlan{}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("http://localhost", "", ""); err == nil {
		t.Fatal("expected error for missing key")
	}
}
