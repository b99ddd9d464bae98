package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookSMSSender_Send(t *testing.T) {
	var got struct {
		To   string `json:"to"`
		Body string `json:"body"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewWebhookSMSSender(srv.URL, "secret-token")
	if err := sender.Send(context.Background(), "+33612345678", "your repair is booked"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.To != "+33612345678" || got.Body != "your repair is booked" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if auth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header: %q", auth)
	}
}

func TestWebhookSMSSender_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewWebhookSMSSender(srv.URL, "")
	if err := sender.Send(context.Background(), "+33612345678", "hello"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestWebhookSMSSender_MissingURL(t *testing.T) {
	sender := NewWebhookSMSSender("", "")
	if err := sender.Send(context.Background(), "+33612345678", "hello"); err == nil {
		t.Fatal("expected error when webhook url is not configured")
	}
}
