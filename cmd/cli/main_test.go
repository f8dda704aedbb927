package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestGetPrintsPrettyJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"NFLX","price":"181.17"}`))
	}))
	defer srv.Close()

	baseURL = srv.URL
	timeout = time.Second
	token = ""

	out := captureOutput(t, func() {
		get("/api/v1/quote/NFLX")
	})

	if !strings.Contains(out, "\"symbol\": \"NFLX\"") {
		t.Fatalf("expected indented json output, got %q", out)
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	baseURL = srv.URL
	timeout = time.Second
	token = "token-123"

	captureOutput(t, func() {
		get("/api/v1/portfolio")
	})

	if gotAuth != "Bearer token-123" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
}
