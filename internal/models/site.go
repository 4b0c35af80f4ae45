package models

// SiteStatus is the last known reachability of a monitored site.
type SiteStatus string

const (
	StatusOnline   SiteStatus = "online"
	StatusOffline  SiteStatus = "offline"
	StatusChecking SiteStatus = "checking"
	StatusUnknown  SiteStatus = "unknown"
)

// DefaultCategoryID is the id of the seeded category that must exist in
// every store at all times.
const DefaultCategoryID = "default"

// DefaultCategoryName is the seeded name of the default category.
const DefaultCategoryName = "General"

// Site is a monitored external URL with its display metadata and the last
// recorded probe result.
type Site struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	IconURL     string     `json:"iconUrl,omitempty"`
	Status      SiteStatus `json:"status"`
	LastChecked int64      `json:"lastChecked"` // unix ms, 0 = never
	Latency     *int64     `json:"latency,omitempty"`
	CategoryID  string     `json:"categoryId"`
}

// Category groups sites for display.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SiteInput carries the fields accepted when creating a site.
type SiteInput struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	CategoryID  string `json:"categoryId"`
}

// SitePatch is a partial update: nil fields are left untouched.
type SitePatch struct {
	Title       *string     `json:"title,omitempty"`
	URL         *string     `json:"url,omitempty"`
	Description *string     `json:"description,omitempty"`
	IconURL     *string     `json:"iconUrl,omitempty"`
	Status      *SiteStatus `json:"status,omitempty"`
	LastChecked *int64      `json:"lastChecked,omitempty"`
	Latency     *int64      `json:"latency,omitempty"`
	CategoryID  *string     `json:"categoryId,omitempty"`
}

// Apply copies the non-nil patch fields onto the site.
func (p *SitePatch) Apply(s *Site) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.IconURL != nil {
		s.IconURL = *p.IconURL
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.LastChecked != nil {
		s.LastChecked = *p.LastChecked
	}
	if p.Latency != nil {
		s.Latency = p.Latency
	}
	if p.CategoryID != nil {
		s.CategoryID = *p.CategoryID
	}
}

// CheckReport is the outcome of probing one site, reported to whoever
// triggered the check. Persisting it is the caller's decision.
type CheckReport struct {
	SiteID      string     `json:"siteId,omitempty"`
	Status      SiteStatus `json:"status"`
	LastChecked int64      `json:"lastChecked"`
	Latency     *int64     `json:"latency,omitempty"`
}
