package testutil

import (
	"context"
	"sentinel/internal/models"
	"sentinel/internal/providers"
	"strconv"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a snapshot of the recorded log calls.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockStore implements storage.Store with in-memory data and per-method
// error injection. Zero value is usable.
type MockStore struct {
	mu         sync.Mutex
	Sites      []models.Site
	Categories []models.Category
	Theme      models.Theme

	Err struct {
		ListSites  error
		CreateSite error
		UpdateSite error
		DeleteSite error
		Categories error
		Theme      error
	}

	UpdateCalls []UpdateSiteCall
	nextID      int
}

type UpdateSiteCall struct {
	ID    string
	Patch models.SitePatch
}

func (m *MockStore) ListSites(_ context.Context) ([]models.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.ListSites != nil {
		return nil, m.Err.ListSites
	}
	out := make([]models.Site, len(m.Sites))
	copy(out, m.Sites)
	return out, nil
}

func (m *MockStore) CreateSite(_ context.Context, in models.SiteInput) (*models.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.CreateSite != nil {
		return nil, m.Err.CreateSite
	}
	m.nextID++
	site := models.Site{
		ID:          "site-" + strconv.Itoa(m.nextID),
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		IconURL:     in.IconURL,
		Status:      models.StatusUnknown,
		CategoryID:  in.CategoryID,
	}
	if site.CategoryID == "" {
		site.CategoryID = models.DefaultCategoryID
	}
	m.Sites = append(m.Sites, site)
	return &site, nil
}

func (m *MockStore) UpdateSite(_ context.Context, id string, patch models.SitePatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.UpdateSite != nil {
		return false, m.Err.UpdateSite
	}
	m.UpdateCalls = append(m.UpdateCalls, UpdateSiteCall{ID: id, Patch: patch})
	for i := range m.Sites {
		if m.Sites[i].ID == id {
			patch.Apply(&m.Sites[i])
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) DeleteSite(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.DeleteSite != nil {
		return false, m.Err.DeleteSite
	}
	for i := range m.Sites {
		if m.Sites[i].ID == id {
			m.Sites = append(m.Sites[:i], m.Sites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.Categories != nil {
		return nil, m.Err.Categories
	}
	out := make([]models.Category, len(m.Categories))
	copy(out, m.Categories)
	return out, nil
}

func (m *MockStore) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.Categories != nil {
		return nil, m.Err.Categories
	}
	m.nextID++
	cat := models.Category{ID: "cat-" + strconv.Itoa(m.nextID), Name: name}
	m.Categories = append(m.Categories, cat)
	return &cat, nil
}

func (m *MockStore) RenameCategory(_ context.Context, id, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.Categories != nil {
		return false, m.Err.Categories
	}
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories[i].Name = name
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) DeleteCategory(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.Categories != nil {
		return false, m.Err.Categories
	}
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) GetTheme(_ context.Context) (models.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.Theme != nil {
		return "", m.Err.Theme
	}
	if m.Theme == "" {
		return models.ThemeMinimal, nil
	}
	return m.Theme, nil
}

func (m *MockStore) SetTheme(_ context.Context, theme models.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err.Theme != nil {
		return m.Err.Theme
	}
	m.Theme = theme
	return nil
}

func (m *MockStore) Close() error { return nil }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	Requests       int
	CacheHits      int
	CacheMisses    int
	Probes         map[string]int
	ProbeDurations int
	SitesTotal     int
	Sweeps         int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncProbesTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Probes == nil {
		m.Probes = make(map[string]int)
	}
	m.Probes[outcome]++
}

func (m *MockMetrics) ObserveProbeDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeDurations++
}

func (m *MockMetrics) SetSitesTotal(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SitesTotal = n
}

func (m *MockMetrics) ObserveSweepDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sweeps++
}

// MockCache implements providers.CacheProviderInterface over a plain map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Sets int
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Data == nil {
		m.Data = make(map[string][]byte)
	}
	m.Data[key] = value
	m.Sets++
}

