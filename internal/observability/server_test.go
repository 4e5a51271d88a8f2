package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/sym-jshint/internal/metrics"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		status string
		code   int
	}{
		{"up", "up", http.StatusOK},
		{"down", "down", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(":0", func(context.Context) HealthStatus {
				return HealthStatus{Status: tt.status, Engine: "jshint", ProjectRoot: "/p", ConfigLoaded: true}
			}, nil)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
			var body HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, "jshint", body.Engine)
		})
	}
}

func TestMetrics(t *testing.T) {
	metrics.ConfigInvalidationsTotal.Inc()

	srv := NewServer(":0", func(context.Context) HealthStatus { return HealthStatus{Status: "up"} }, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "symjshint_config_invalidations_total")
}

func TestStopWithoutStart(t *testing.T) {
	srv := NewServer(":0", nil, nil)
	assert.NoError(t, srv.Stop(context.Background()))
}
