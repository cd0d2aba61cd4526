package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		redisErr   error
		wantStatus int
		wantChecks map[string]string
	}{
		{"all reachable", nil, nil, http.StatusOK, map[string]string{"database": "ok", "redis": "ok"}},
		{"database down", context.DeadlineExceeded, nil, http.StatusServiceUnavailable, map[string]string{"database": "unavailable", "redis": "ok"}},
		{"redis down", nil, errors.New("connection refused"), http.StatusServiceUnavailable, map[string]string{"database": "ok", "redis": "unavailable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &MockDBPool{}
			db.On("Ping", mock.Anything).Return(tt.dbErr)
			redisErr := tt.redisErr

			w := httptest.NewRecorder()
			HandleReadyz(
				ReadinessCheck{Name: "database", Ping: db.Ping},
				ReadinessCheck{Name: "redis", Ping: func(ctx context.Context) error { return redisErr }},
			).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantChecks, resp.Checks)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, StatusUnavailable, resp.Status)
				assert.NotEmpty(t, resp.Message)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestHandleReadyz_PingHasDeadline(t *testing.T) {
	var hasDeadline bool
	w := httptest.NewRecorder()
	HandleReadyz(ReadinessCheck{Name: "database", Ping: func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasDeadline)
}

func TestHandleVersion(t *testing.T) {
	prev := Version
	Version = "2.3.0"
	t.Cleanup(func() { Version = prev })

	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "2.3.0", info.Version)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}
