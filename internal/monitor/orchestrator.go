package monitor

import (
	"context"
	"sentinel/internal/models"
	"sentinel/internal/providers"
	"sentinel/internal/storage"
	"sync"
	"time"
)

type OrchestratorInterface interface {
	CheckSite(ctx context.Context, site models.Site) models.CheckReport
	CheckURL(ctx context.Context, url string) models.CheckReport
	Sweep(ctx context.Context)
}

// Orchestrator bridges the store and the prober. Single-site checks only
// report; persisting the result is the caller's decision, so anonymous
// viewers can trigger checks without write access. Sweeps persist their
// reports back through the store.
type Orchestrator struct {
	store   storage.Store
	prober  ProberInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewOrchestrator(store storage.Store, prober ProberInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) OrchestratorInterface {
	return &Orchestrator{
		store:   store,
		prober:  prober,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckURL probes a bare URL that may not correspond to a stored site.
func (o *Orchestrator) CheckURL(ctx context.Context, url string) models.CheckReport {
	start := time.Now()
	result := o.prober.Probe(ctx, url)
	o.metrics.IncProbesTotal(string(result.Status))
	o.metrics.ObserveProbeDuration(time.Since(start))

	return models.CheckReport{
		Status:      result.Status,
		LastChecked: time.Now().UnixMilli(),
		Latency:     result.Latency,
	}
}

func (o *Orchestrator) CheckSite(ctx context.Context, site models.Site) models.CheckReport {
	report := o.CheckURL(ctx, site.URL)
	report.SiteID = site.ID
	return report
}

// Sweep probes every site once, each on its own goroutine, and persists the
// reports. Per-site checks are independent and order-insensitive; a store
// failure for one site is logged and does not abort the rest.
func (o *Orchestrator) Sweep(ctx context.Context) {
	start := time.Now()
	sites, err := o.store.ListSites(ctx)
	if err != nil {
		o.logger.Errorf(providers.TypeMonitor, "Sweep aborted, cannot list sites: %s", err)
		return
	}
	o.metrics.SetSitesTotal(len(sites))

	var wg sync.WaitGroup
	for _, site := range sites {
		wg.Add(1)
		go func(site models.Site) {
			defer wg.Done()
			report := o.CheckSite(ctx, site)
			patch := models.SitePatch{
				Status:      &report.Status,
				LastChecked: &report.LastChecked,
				Latency:     report.Latency,
			}
			if _, err := o.store.UpdateSite(ctx, site.ID, patch); err != nil {
				o.logger.Errorf(providers.TypeMonitor, "Sweep: persisting result for %s failed: %s", site.ID, err)
			}
		}(site)
	}
	wg.Wait()

	o.metrics.ObserveSweepDuration(time.Since(start))
	o.logger.Infof(providers.TypeMonitor, "Sweep finished: %d sites in %s", len(sites), time.Since(start))
}
