package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://www.fast2sms.com/dev/bulkV2"

// Gateway relays advisory messages to farmers through the Fast2SMS bulk API.
// Provider status and body pass through to the caller untouched so the relay
// endpoint can surface delivery diagnostics.
type Gateway struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func New(endpoint, apiKey string) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sms: missing API key")
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Gateway{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (g *Gateway) Send(ctx context.Context, phone, message string) (json.RawMessage, int, error) {
	form := url.Values{}
	form.Set("message", message)
	form.Set("language", "english")
	form.Set("route", "q")
	form.Set("numbers", phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("sms request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read sms response: %w", err)
	}
	if !json.Valid(body) {
		body, _ = json.Marshal(map[string]string{"raw": string(body)})
	}
	return json.RawMessage(body), resp.StatusCode, nil
}
