package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendPassesThroughProviderResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "api-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("numbers") != "9999999999" || r.PostForm.Get("route") != "q" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		if r.PostForm.Get("language") != "english" {
			t.Errorf("language = %q", r.PostForm.Get("language"))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"return": true, "request_id": "abc123"}`))
	}))
	defer server.Close()

	gateway, err := New(server.URL, "api-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	body, status, err := gateway.Send(context.Background(), "9999999999", "Your crop advisory is ready")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if !strings.Contains(string(body), "abc123") {
		t.Errorf("body = %s", body)
	}
}

func TestSendWrapsNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	gateway, err := New(server.URL, "api-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	body, status, err := gateway.Send(context.Background(), "9999999999", "hi")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if status != http.StatusBadGateway {
		t.Errorf("status = %d", status)
	}
	if !strings.Contains(string(body), "upstream exploded") {
		t.Errorf("body = %s", body)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for missing key")
	}
}
