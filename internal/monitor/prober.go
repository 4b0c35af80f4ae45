// Package monitor determines site reachability and coordinates periodic
// sweeps over the persisted site list.
package monitor

import (
	"context"
	"net/http"
	"sentinel/internal/models"
	"sentinel/internal/structures"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; SentinelNav/1.0; +http://localhost)"

// Result is the outcome of a single probe. Network failure is a normal
// result, never an error: Status is offline and Latency is nil.
type Result struct {
	Status  models.SiteStatus
	Latency *int64 // wall-clock ms of the request that succeeded
}

type ProberInterface interface {
	Probe(ctx context.Context, url string) Result
}

// Prober issues a HEAD request bounded by the timeout budget and falls back
// to a single GET when HEAD fails, is rejected, or times out. Safe for
// concurrent use; each call is independent.
type Prober struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewProber(conf *structures.Config) ProberInterface {
	timeout := conf.Monitor.ProbeTimeout
	userAgent := conf.Monitor.UserAgent
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Prober{
		// Timeouts are enforced per attempt via context so an in-flight
		// request is hard-cancelled at the budget.
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

func (p *Prober) Probe(ctx context.Context, url string) Result {
	if latency, ok := p.attempt(ctx, http.MethodHead, url); ok {
		return Result{Status: models.StatusOnline, Latency: &latency}
	}
	if latency, ok := p.attempt(ctx, http.MethodGet, url); ok {
		return Result{Status: models.StatusOnline, Latency: &latency}
	}
	return Result{Status: models.StatusOffline}
}

// attempt runs one request with a fresh timeout budget. ok is true only for
// a success-range status code.
func (p *Prober) attempt(ctx context.Context, method, url string) (latencyMs int64, ok bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, method, url, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("User-Agent", p.userAgent)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, false
	}
	return time.Since(start).Milliseconds(), true
}
