package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request carried no User-Agent header")
		}
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewHTTPClient(5 * time.Second)
	body, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("Get() = %q, want %q", body, "hello")
	}
}

func TestHTTPClientGetBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(5 * time.Second)
	if _, err := client.Get(context.Background(), server.URL); err == nil {
		t.Fatal("Get() expected error for 503 response")
	}
}

func TestHTTPClientGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"cairo","count":3}`))
	}))
	defer server.Close()

	var payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	client := NewHTTPClient(5 * time.Second)
	if err := client.GetJSON(context.Background(), server.URL, &payload); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if payload.Name != "cairo" || payload.Count != 3 {
		t.Errorf("GetJSON() decoded %+v, want name=cairo count=3", payload)
	}
}

func TestHTTPClientGetJSONMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	var payload map[string]string
	client := NewHTTPClient(5 * time.Second)
	err := client.GetJSON(context.Background(), server.URL, &payload)
	if err == nil {
		t.Fatal("GetJSON() expected decode error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("GetJSON() error = %v, want decode failure", err)
	}
}

func TestHTTPClientBreakerOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(5 * time.Second)
	for i := 0; i < 5; i++ {
		if _, err := client.Get(context.Background(), server.URL); err == nil {
			t.Fatalf("Get() call %d expected error", i)
		}
	}

	_, err := client.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Get() expected error with breaker open")
	}
	if !strings.Contains(err.Error(), "circuit breaker is open") {
		t.Errorf("Get() error = %v, want open-breaker rejection", err)
	}
}
