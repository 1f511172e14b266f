package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecognizePassesThroughResult(t *testing.T) {
	var gotSecret, gotData string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-OCR-SECRET")
		var req struct {
			Images []struct {
				Data string `json:"data"`
			} `json:"images"`
			RequestID string `json:"requestId"`
			Version   string `json:"version"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(req.Images) != 1 || req.Version != "V2" || req.RequestID == "" {
			t.Fatalf("malformed CLOVA payload: %+v", req)
		}
		gotData = req.Images[0].Data
		_, _ = w.Write([]byte(`{"images":[{"fields":[{"inferText":"hello"}]}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, Secret: "s3cret"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	result, err := client.Recognize(context.Background(), "base64-image-data")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if gotSecret != "s3cret" {
		t.Errorf("secret header = %q", gotSecret)
	}
	if gotData != "base64-image-data" {
		t.Errorf("image not forwarded: %q", gotData)
	}
	if !strings.Contains(string(result), "inferText") {
		t.Errorf("result not passed through: %s", result)
	}
}

func TestRecognizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid secret"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, Secret: "bad"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Recognize(context.Background(), "data")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Status != http.StatusForbidden {
		t.Fatalf("expected 403 upstream error, got %v", err)
	}
	if !strings.Contains(upstream.Body, "invalid secret") {
		t.Errorf("body not preserved: %q", upstream.Body)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{Secret: "x"}); err == nil {
		t.Error("expected error for missing endpoint")
	}
	if _, err := NewClient(Config{Endpoint: "http://x"}); err == nil {
		t.Error("expected error for missing secret")
	}
}
