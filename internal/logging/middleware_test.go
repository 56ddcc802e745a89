package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_LogsRequest(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	handler := middleware.RequestID(Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	// Act
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Assert
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("expected warn level for 4xx, got %v", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["path"] != "/dashboard" {
		t.Errorf("expected path field, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", fields["status"])
	}
	if fields["request_id"] == nil || fields["request_id"] == "" {
		t.Error("expected request id field")
	}
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("expected one info entry, got %+v", entries)
	}
	if entries[0].ContextMap()["status"] != int64(http.StatusOK) {
		t.Errorf("expected status 200, got %v", entries[0].ContextMap()["status"])
	}
}
