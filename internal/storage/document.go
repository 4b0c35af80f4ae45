package storage

import (
	"context"
	"sentinel/internal/models"
	"sync"

	"github.com/google/uuid"
)

// document is the whole-store state shared by every backend that persists
// as a single unit (memory, file, redis, blob). Mutating it and writing it
// back as one piece is what keeps the category cascade invisible to readers
// on backends without transactions.
type document struct {
	Sites      []models.Site     `json:"websites"`
	Categories []models.Category `json:"categories"`
	Theme      models.Theme      `json:"theme"`
}

func newDocument() *document {
	return &document{
		Sites: []models.Site{},
		Categories: []models.Category{
			{ID: models.DefaultCategoryID, Name: models.DefaultCategoryName},
		},
		Theme: models.ThemeMinimal,
	}
}

// normalize repairs a loaded document so the store invariants hold even for
// data written by older versions: at least one category, no dangling site
// references, a known theme.
func (d *document) normalize() {
	if len(d.Categories) == 0 {
		d.Categories = []models.Category{
			{ID: models.DefaultCategoryID, Name: models.DefaultCategoryName},
		}
	}
	for i := range d.Sites {
		if !d.hasCategory(d.Sites[i].CategoryID) {
			d.Sites[i].CategoryID = d.Categories[0].ID
		}
	}
	if !models.ValidTheme(d.Theme) {
		d.Theme = models.ThemeMinimal
	}
}

func (d *document) hasCategory(id string) bool {
	for _, c := range d.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (d *document) createSite(in models.SiteInput) (*models.Site, error) {
	if in.Title == "" || in.URL == "" {
		return nil, ErrValidation
	}
	categoryID := in.CategoryID
	if !d.hasCategory(categoryID) {
		categoryID = d.Categories[0].ID
	}
	site := models.Site{
		ID:          uuid.NewString(),
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		IconURL:     in.IconURL,
		Status:      models.StatusUnknown,
		LastChecked: 0,
		CategoryID:  categoryID,
	}
	d.Sites = append(d.Sites, site)
	return &site, nil
}

func (d *document) updateSite(id string, patch models.SitePatch) bool {
	for i := range d.Sites {
		if d.Sites[i].ID == id {
			patch.Apply(&d.Sites[i])
			return true
		}
	}
	return false
}

func (d *document) deleteSite(id string) bool {
	for i := range d.Sites {
		if d.Sites[i].ID == id {
			d.Sites = append(d.Sites[:i], d.Sites[i+1:]...)
			return true
		}
	}
	return false
}

func (d *document) createCategory(name string) (*models.Category, error) {
	if name == "" {
		return nil, ErrValidation
	}
	cat := models.Category{ID: uuid.NewString(), Name: name}
	d.Categories = append(d.Categories, cat)
	return &cat, nil
}

func (d *document) renameCategory(id, name string) (bool, error) {
	if name == "" {
		return false, ErrValidation
	}
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			d.Categories[i].Name = name
			return true, nil
		}
	}
	return false, nil
}

// deleteCategory reassigns every site of the deleted category to the first
// remaining one, then removes the category. The last category is kept.
func (d *document) deleteCategory(id string) (bool, error) {
	idx := -1
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	if len(d.Categories) == 1 {
		return false, ErrLastCategory
	}

	fallback := ""
	for _, c := range d.Categories {
		if c.ID != id {
			fallback = c.ID
			break
		}
	}
	for i := range d.Sites {
		if d.Sites[i].CategoryID == id {
			d.Sites[i].CategoryID = fallback
		}
	}
	d.Categories = append(d.Categories[:idx], d.Categories[idx+1:]...)
	return true, nil
}

// docBackend loads and saves the document as one unit.
type docBackend interface {
	Load(ctx context.Context) (*document, error) // nil means not yet written
	Save(ctx context.Context, doc *document) error
	Close() error
}

// docStore implements Store on top of a docBackend. A single mutex
// serializes every read-modify-write so no reader can observe a
// half-applied category cascade.
type docStore struct {
	mu      sync.Mutex
	backend docBackend
}

func newDocStore(backend docBackend) *docStore {
	return &docStore{backend: backend}
}

func (s *docStore) load(ctx context.Context) (*document, error) {
	doc, err := s.backend.Load(ctx)
	if err != nil {
		return nil, unavailable("load", err)
	}
	if doc == nil {
		doc = newDocument()
	} else {
		doc.normalize()
	}
	return doc, nil
}

func (s *docStore) save(ctx context.Context, doc *document) error {
	if err := s.backend.Save(ctx, doc); err != nil {
		return unavailable("save", err)
	}
	return nil
}

func (s *docStore) ListSites(ctx context.Context) ([]models.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sites := make([]models.Site, len(doc.Sites))
	copy(sites, doc.Sites)
	return sites, nil
}

func (s *docStore) CreateSite(ctx context.Context, in models.SiteInput) (*models.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	site, err := doc.createSite(in)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *docStore) UpdateSite(ctx context.Context, id string, patch models.SitePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if !doc.updateSite(id, patch) {
		return false, nil
	}
	if err := s.save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *docStore) DeleteSite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if !doc.deleteSite(id) {
		return false, nil
	}
	if err := s.save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *docStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	cats := make([]models.Category, len(doc.Categories))
	copy(cats, doc.Categories)
	return cats, nil
}

func (s *docStore) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := doc.createCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *docStore) RenameCategory(ctx context.Context, id, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	ok, err := doc.renameCategory(id, name)
	if err != nil || !ok {
		return false, err
	}
	if err := s.save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *docStore) DeleteCategory(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	ok, err := doc.deleteCategory(id)
	if err != nil || !ok {
		return false, err
	}
	if err := s.save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *docStore) GetTheme(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return doc.Theme, nil
}

func (s *docStore) SetTheme(ctx context.Context, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidTheme(theme) {
		return ErrValidation
	}
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	doc.Theme = theme
	return s.save(ctx, doc)
}

func (s *docStore) Close() error {
	return s.backend.Close()
}
