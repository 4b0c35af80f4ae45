package services

import (
	"context"
	"net/url"
	"sentinel/internal/models"
	"sentinel/internal/providers"
	"sentinel/internal/storage"
	"strings"

	"github.com/gookit/validate"
)

const faviconPlaceholder = "https://via.placeholder.com/48?text=WEB"

type SiteServiceInterface interface {
	ListSites(ctx context.Context) ([]models.Site, error)
	CreateSite(ctx context.Context, in models.SiteInput) (*models.Site, error)
	UpdateSite(ctx context.Context, id string, patch models.SitePatch) (bool, error)
	DeleteSite(ctx context.Context, id string) (bool, error)
	ImportSites(ctx context.Context, entries []models.ImportEntry) (int, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, id, name string) (bool, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
	GetTheme(ctx context.Context) (models.Theme, error)
	SetTheme(ctx context.Context, theme models.Theme) error
	SeedSites(ctx context.Context, seeds []models.SiteInput) error
}

// SiteService wraps the store with input validation, URL normalization and
// icon derivation, so every backend receives identical, already-clean data.
type SiteService struct {
	store  storage.Store
	logger providers.Logger
}

func NewSiteService(store storage.Store, logger providers.Logger) SiteServiceInterface {
	return &SiteService{store: store, logger: logger}
}

// NormalizeURL prefixes https:// when no scheme is present.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

// FaviconURL derives the conventional favicon location from a site URL.
func FaviconURL(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return faviconPlaceholder
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}

func (s *SiteService) ListSites(ctx context.Context) ([]models.Site, error) {
	return s.store.ListSites(ctx)
}

func (s *SiteService) CreateSite(ctx context.Context, in models.SiteInput) (*models.Site, error) {
	v := validate.Struct(&in)
	if !v.Validate() {
		return nil, storage.ErrValidation
	}
	in.URL = NormalizeURL(in.URL)
	if in.IconURL == "" {
		in.IconURL = FaviconURL(in.URL)
	}
	return s.store.CreateSite(ctx, in)
}

func (s *SiteService) UpdateSite(ctx context.Context, id string, patch models.SitePatch) (bool, error) {
	if patch.URL != nil {
		normalized := NormalizeURL(*patch.URL)
		if normalized == "" {
			return false, storage.ErrValidation
		}
		patch.URL = &normalized
	}
	if patch.Title != nil && *patch.Title == "" {
		return false, storage.ErrValidation
	}
	return s.store.UpdateSite(ctx, id, patch)
}

func (s *SiteService) DeleteSite(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteSite(ctx, id)
}

// ImportSites bulk-creates sites. Entries missing title or url are skipped.
// A categoryName is matched case-insensitively against existing categories
// and a new category is created on miss — the one place the store schema
// grows implicitly during a write.
func (s *SiteService) ImportSites(ctx context.Context, entries []models.ImportEntry) (int, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		// First occurrence wins when pre-existing data holds two
		// categories whose names differ only by case.
		key := strings.ToLower(c.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = c.ID
		}
	}

	imported := 0
	for _, entry := range entries {
		if entry.Title == "" || entry.URL == "" {
			continue
		}

		categoryID := entry.CategoryID
		if categoryID == "" && entry.CategoryName != "" {
			key := strings.ToLower(entry.CategoryName)
			if id, ok := byName[key]; ok {
				categoryID = id
			} else {
				cat, err := s.store.CreateCategory(ctx, entry.CategoryName)
				if err != nil {
					return imported, err
				}
				byName[key] = cat.ID
				categoryID = cat.ID
			}
		}

		in := models.SiteInput{
			Title:       entry.Title,
			URL:         NormalizeURL(entry.URL),
			Description: entry.Description,
			IconURL:     entry.IconURL,
			CategoryID:  categoryID,
		}
		if in.IconURL == "" {
			in.IconURL = FaviconURL(in.URL)
		}
		if _, err := s.store.CreateSite(ctx, in); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (s *SiteService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *SiteService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, storage.ErrValidation
	}
	return s.store.CreateCategory(ctx, name)
}

func (s *SiteService) RenameCategory(ctx context.Context, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, storage.ErrValidation
	}
	return s.store.RenameCategory(ctx, id, name)
}

func (s *SiteService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteCategory(ctx, id)
}

func (s *SiteService) GetTheme(ctx context.Context) (models.Theme, error) {
	return s.store.GetTheme(ctx)
}

func (s *SiteService) SetTheme(ctx context.Context, theme models.Theme) error {
	return s.store.SetTheme(ctx, theme)
}

// SeedSites inserts the configured default sites on first run. A store that
// already holds sites is left alone.
func (s *SiteService) SeedSites(ctx context.Context, seeds []models.SiteInput) error {
	if len(seeds) == 0 {
		return nil
	}
	existing, err := s.store.ListSites(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, seed := range seeds {
		if _, err := s.CreateSite(ctx, seed); err != nil {
			s.logger.Warnf(providers.TypeStore, "Seeding site %q failed: %s", seed.Title, err)
		}
	}
	return nil
}
