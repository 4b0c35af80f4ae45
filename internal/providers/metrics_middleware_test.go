package providers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu        sync.Mutex
	endpoints []string
	statuses  []int
	durations int
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endpoints = append(m.endpoints, endpoint)
	m.statuses = append(m.statuses, status)
}

func (m *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *recordingMetrics) IncCacheHits()                        {}
func (m *recordingMetrics) IncCacheMisses()                      {}
func (m *recordingMetrics) IncProbesTotal(_ string)              {}
func (m *recordingMetrics) ObserveProbeDuration(_ time.Duration) {}
func (m *recordingMetrics) SetSitesTotal(_ int)                  {}
func (m *recordingMetrics) ObserveSweepDuration(_ time.Duration) {}

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sites", nil))

	require.Len(t, metrics.statuses, 1)
	assert.Equal(t, http.StatusNotFound, metrics.statuses[0])
	assert.Equal(t, "/api/sites", metrics.endpoints[0])
	assert.Equal(t, 1, metrics.durations)
}

func TestMetricsMiddleware_DefaultsTo200(t *testing.T) {
	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // implicit 200
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, metrics.statuses, 1)
	assert.Equal(t, http.StatusOK, metrics.statuses[0])
}
