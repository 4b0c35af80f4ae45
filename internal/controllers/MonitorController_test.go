package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sentinel/internal/models"
	"sentinel/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrchestrator implements monitor.OrchestratorInterface.
type stubOrchestrator struct {
	mu     sync.Mutex
	report models.CheckReport
	calls  []string
}

func (s *stubOrchestrator) CheckURL(_ context.Context, url string) models.CheckReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, url)
	return s.report
}

func (s *stubOrchestrator) CheckSite(_ context.Context, site models.Site) models.CheckReport {
	r := s.CheckURL(context.Background(), site.URL)
	r.SiteID = site.ID
	return r
}

func (s *stubOrchestrator) Sweep(_ context.Context) {}

func newTestMonitorController(orch *stubOrchestrator) (*MonitorController, *testutil.MockCache, *testutil.MockMetrics) {
	cache := &testutil.MockCache{}
	metrics := &testutil.MockMetrics{}
	mc := NewMonitorController(&testutil.MockLogger{}, orch, cache, metrics)
	return mc, cache, metrics
}

func TestCheck_ProbesAndCaches(t *testing.T) {
	latency := int64(30)
	orch := &stubOrchestrator{report: models.CheckReport{
		Status:      models.StatusOnline,
		LastChecked: time.Now().UnixMilli(),
		Latency:     &latency,
	}}
	mc, cache, metrics := newTestMonitorController(orch)

	req := httptest.NewRequest(http.MethodPost, "/api/monitor/check", jsonBody(t, map[string]string{"url": "https://example.com"}))
	rr := httptest.NewRecorder()
	mc.Check(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var report models.CheckReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, models.StatusOnline, report.Status)
	require.NotNil(t, report.Latency)
	assert.Equal(t, latency, *report.Latency)

	assert.Equal(t, 1, metrics.CacheMisses)
	assert.Equal(t, 1, cache.Sets)
}

func TestCheck_ServesFromCache(t *testing.T) {
	orch := &stubOrchestrator{report: models.CheckReport{Status: models.StatusOnline}}
	mc, _, metrics := newTestMonitorController(orch)

	body := func() *bytes.Reader { return jsonBody(t, map[string]string{"url": "https://example.com"}) }

	rr := httptest.NewRecorder()
	mc.Check(rr, httptest.NewRequest(http.MethodPost, "/api/monitor/check", body()))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mc.Check(rr, httptest.NewRequest(http.MethodPost, "/api/monitor/check", body()))
	require.Equal(t, http.StatusOK, rr.Code)

	// Second request was answered from the cache; the prober ran once.
	assert.Len(t, orch.calls, 1)
	assert.Equal(t, 1, metrics.CacheHits)
	assert.Equal(t, 1, metrics.CacheMisses)
}

func TestCheck_NormalizesURLForCacheKey(t *testing.T) {
	orch := &stubOrchestrator{report: models.CheckReport{Status: models.StatusOffline}}
	mc, _, _ := newTestMonitorController(orch)

	rr := httptest.NewRecorder()
	mc.Check(rr, httptest.NewRequest(http.MethodPost, "/api/monitor/check", jsonBody(t, map[string]string{"url": "example.com"})))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mc.Check(rr, httptest.NewRequest(http.MethodPost, "/api/monitor/check", jsonBody(t, map[string]string{"url": "https://example.com"})))
	require.Equal(t, http.StatusOK, rr.Code)

	// Both spellings normalize to the same URL, so one probe suffices.
	assert.Len(t, orch.calls, 1)
	assert.Equal(t, "https://example.com", orch.calls[0])
}

func TestCheck_MissingURL(t *testing.T) {
	mc, _, _ := newTestMonitorController(&stubOrchestrator{})

	req := httptest.NewRequest(http.MethodPost, "/api/monitor/check", jsonBody(t, map[string]string{}))
	rr := httptest.NewRecorder()
	mc.Check(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheck_BadJSON(t *testing.T) {
	mc, _, _ := newTestMonitorController(&stubOrchestrator{})

	req := httptest.NewRequest(http.MethodPost, "/api/monitor/check", bytes.NewReader([]byte("nope")))
	rr := httptest.NewRecorder()
	mc.Check(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
