package controllers

import (
	"net/http"
	"sentinel/internal/models"
	"sentinel/internal/monitor"
	"sentinel/internal/providers"
	"sentinel/internal/services"

	json "github.com/goccy/go-json"
)

type MonitorController struct {
	logger       providers.Logger
	orchestrator monitor.OrchestratorInterface
	cache        providers.CacheProviderInterface
	metrics      providers.MetricsProviderInterface
}

func NewMonitorController(logger providers.Logger, orchestrator monitor.OrchestratorInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *MonitorController {
	return &MonitorController{
		logger:       logger,
		orchestrator: orchestrator,
		cache:        cache,
		metrics:      metrics,
	}
}

type checkRequest struct {
	URL string `json:"url"`
}

// Check probes a URL on demand. The endpoint is public, so fresh results
// are cached per URL and replayed to repeat callers instead of re-probing.
func (mc *MonitorController) Check(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload checkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.URL == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	url := services.NormalizeURL(payload.URL)
	cacheKey := "probe:" + url
	if data, ok := mc.cache.Get(cacheKey); ok {
		mc.metrics.IncCacheHits()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	mc.metrics.IncCacheMisses()

	report := mc.orchestrator.CheckURL(r.Context(), url)
	resp := models.CheckReport{
		Status:      report.Status,
		LastChecked: report.LastChecked,
		Latency:     report.Latency,
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	mc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
