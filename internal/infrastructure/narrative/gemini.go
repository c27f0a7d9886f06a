package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mittimitra/advisory/internal/core/domain"
)

const defaultModel = "gemini-2.0-flash"

// Client turns a recovery plan into a farmer-facing narrative via the Gemini
// generateContent API. Callers fall back to a local template when generation
// fails, so every error path here is non-fatal downstream.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func New(baseURL, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("narrative: missing API key")
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) GenerateExplanation(ctx context.Context, plan domain.RecoveryPlan) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(plan)}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal narrative request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create narrative request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("narrative status %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode narrative response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("narrative response has no candidates")
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("narrative response is empty")
	}
	return text, nil
}

func buildPrompt(plan domain.RecoveryPlan) string {
	var b strings.Builder
	b.WriteString("You are an agricultural advisor helping an Indian farmer recover from crop damage.\n")
	b.WriteString("Write a clear, encouraging explanation in under 200 words with exactly these sections:\n")
	b.WriteString("**Situation Analysis**, **Recommended Action**, **Eco-Friendly Tip**, **Support Available**.\n\n")
	fmt.Fprintf(&b, "Decision: %s\n", plan.Decision)
	fmt.Fprintf(&b, "Reason: %s\n", plan.Reason)
	fmt.Fprintf(&b, "Confidence: %.2f\n", plan.Confidence)

	if len(plan.EcoAdvisory) > 0 {
		b.WriteString("Eco advisory:\n")
		for _, note := range plan.EcoAdvisory {
			fmt.Fprintf(&b, "- %s: %s\n", note.Issue, note.Solution)
		}
	}
	if len(plan.Schemes) > 0 {
		b.WriteString("Eligible government schemes:\n")
		for _, scheme := range plan.Schemes {
			fmt.Fprintf(&b, "- %s: %s\n", scheme.SchemeName, scheme.Benefit)
		}
	}
	return b.String()
}
