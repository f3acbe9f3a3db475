package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, rateLimit float64) *Client {
	t.Helper()
	c, err := NewClient(ClientOptions{Timeout: time.Second, Concurrency: 1, RateLimit: rateLimit})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestClient_Do_Retry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req, _ := http.NewRequest("GET", server.URL, nil)
	resp, err := newTestClient(t, 0).Do(req)
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestClient_Do_ContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, "GET", server.URL, nil)

	if _, err := newTestClient(t, 0).Do(req); err == nil {
		t.Fatal("Expected error due to context cancellation, got nil")
	}
}

func TestClient_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fact.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "Text/JavaScript; charset=utf-8")
		w.Write([]byte("function fact(n) { return n; }"))
	})
	mux.HandleFunc("/moved.js", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/fact.js", http.StatusFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, 0)
	tests := []struct {
		name       string
		path       string
		wantBody   string
		wantStatus int
	}{
		{name: "Source", path: "/fact.js", wantBody: "function fact(n) { return n; }"},
		{name: "Redirect Followed", path: "/moved.js", wantBody: "function fact(n) { return n; }"},
		{name: "Not Found", path: "/missing.js", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, mediaType, err := c.Fetch(context.Background(), server.URL+tt.path)
			if tt.wantStatus != 0 {
				var se *StatusError
				if !errors.As(err, &se) || se.StatusCode != tt.wantStatus {
					t.Fatalf("Fetch() error = %v, want status %d", err, tt.wantStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if string(body) != tt.wantBody || mediaType != "text/javascript" {
				t.Errorf("Fetch() = %q, %q", body, mediaType)
			}
		})
	}
}

func TestClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// 1 fetch per second, initial burst of 1.
	c := newTestClient(t, 1)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, _, err := c.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Errorf("Rate limiting too fast: %v", elapsed)
	}
}

func TestNewClient_InvalidProxy(t *testing.T) {
	if _, err := NewClient(ClientOptions{Proxy: "://bad"}); err == nil {
		t.Error("expected an error for an invalid proxy")
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/app.js": true,
		"HTTP://example.com":         true,
		"src/app.js":                 false,
		"-":                          false,
		"ftp://example.com/a.js":     false,
	}
	for in, want := range tests {
		if got := IsRemote(in); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", in, got, want)
		}
	}
}
