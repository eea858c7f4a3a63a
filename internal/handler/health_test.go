// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// stubPinger returns a fixed error.
type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthStatus {
	t.Helper()
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return status
}

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler(stubPinger{}, nil, "1.2.3", false)

	req := httptest.NewRequest(http.MethodGet, RouteHealth, nil)
	w := httptest.NewRecorder()
	handler.Health(w, req)

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q; want application/json", ct)
	}

	status := decodeHealth(t, w)
	if status.Status != "healthy" {
		t.Errorf("status = %q; want healthy", status.Status)
	}
	if status.Version != "1.2.3" {
		t.Errorf("version = %q; want 1.2.3", status.Version)
	}
	if status.Checks["backend"].Status != "healthy" {
		t.Errorf("backend check = %+v", status.Checks["backend"])
	}
	if status.Checks["state_store"].Message != "In memory" {
		t.Errorf("state_store check = %+v", status.Checks["state_store"])
	}
	if status.System != nil {
		t.Error("system info should be omitted without verbose")
	}
}

func TestHealthHandler_Health_Degraded(t *testing.T) {
	tests := []struct {
		name    string
		backend Pinger
		store   Pinger
		failing string
	}{
		{"backend down", stubPinger{err: errors.New("connection refused")}, nil, "backend"},
		{"redis down", stubPinger{}, stubPinger{err: errors.New("redis: nil")}, "state_store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.backend, tt.store, "dev", false)
			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

			assertStatus(t, w.Code, http.StatusServiceUnavailable)
			status := decodeHealth(t, w)
			if status.Status != "degraded" {
				t.Errorf("status = %q; want degraded", status.Status)
			}
			if status.Checks[tt.failing].Status != "unhealthy" {
				t.Errorf("%s check = %+v", tt.failing, status.Checks[tt.failing])
			}
		})
	}
}

func TestHealthHandler_Health_Verbose(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, RouteHealth+"?verbose=true", nil)

	w := httptest.NewRecorder()
	NewHealthHandler(stubPinger{}, nil, "dev", false).Health(w, req)
	if decodeHealth(t, w).System != nil {
		t.Error("system info must not be exposed when verbose is not allowed")
	}

	w = httptest.NewRecorder()
	NewHealthHandler(stubPinger{}, nil, "dev", true).Health(w, req)
	sys := decodeHealth(t, w).System
	if sys == nil || sys.GoVersion == "" || sys.NumCPU == 0 {
		t.Errorf("system info = %+v", sys)
	}
}

func testHealthProbe(t *testing.T, path string, handlerFn func(http.ResponseWriter, *http.Request), wantCode int, wantStatus string) map[string]string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handlerFn(w, req)

	assertStatus(t, w.Code, wantCode)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != wantStatus {
		t.Errorf("status = %q; want %q", resp["status"], wantStatus)
	}
	return resp
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(stubPinger{err: errors.New("down")}, nil, "dev", false)
	testHealthProbe(t, RouteHealthLive, handler.Liveness, http.StatusOK, "alive")
}

func TestHealthHandler_Readiness(t *testing.T) {
	handler := NewHealthHandler(stubPinger{}, nil, "dev", false)
	testHealthProbe(t, RouteHealthReady, handler.Readiness, http.StatusOK, "ready")
}

func TestHealthHandler_Readiness_NotReady(t *testing.T) {
	handler := NewHealthHandler(stubPinger{err: errors.New("connection refused")}, nil, "dev", false)
	resp := testHealthProbe(t, RouteHealthReady, handler.Readiness, http.StatusServiceUnavailable, "not_ready")
	if resp["message"] != "connection refused" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestNewHealthHandler(t *testing.T) {
	before := time.Now()
	handler := NewHealthHandler(stubPinger{}, nil, "dev", false)
	if handler.StartTime().Before(before) {
		t.Error("start time should be set at construction")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{1073741824, "1.00 GB"},
		{1610612736, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q; want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
