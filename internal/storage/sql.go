package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sentinel/internal/models"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// siteModel maps the `websites` table for bun queries.
type siteModel struct {
	bun.BaseModel `bun:"table:websites"`
	ID            string         `bun:"id,pk"`
	Title         string         `bun:"title,notnull"`
	URL           string         `bun:"url,notnull"`
	Description   string         `bun:"description"`
	IconURL       string         `bun:"icon_url"`
	Status        string         `bun:"status,notnull,default:'unknown'"`
	LastChecked   int64          `bun:"last_checked,notnull,default:0"`
	Latency       sql.NullInt64  `bun:"latency"`
	CategoryID    string         `bun:"category_id,notnull"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// categoryModel maps the `categories` table.
type categoryModel struct {
	bun.BaseModel `bun:"table:categories"`
	ID            string `bun:"id,pk"`
	Name          string `bun:"name,notnull"`
	Position      int64  `bun:"position,notnull,default:0"`
}

// configModel maps the `config` key/value table (theme lives here).
type configModel struct {
	bun.BaseModel `bun:"table:config"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value,notnull"`
}

const themeKey = "theme"

// SQLStore is the relational implementation of Store. The category cascade
// runs inside a single transaction; readers never see a site pointing at a
// deleted category.
type SQLStore struct {
	db *bun.DB
}

// NewSQLStore opens the database for the given driver (sqlite, postgres,
// mysql), creates the schema if needed and seeds the default category.
func NewSQLStore(driver, dsn string) (Store, error) {
	driverName := driver
	// The pgx stdlib registers driver name "pgx"; map "postgres" to it.
	if driver == "postgres" {
		driverName = "pgx"
	}
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, unavailable("open", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	var bdb *bun.DB
	switch driver {
	case "sqlite":
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	default:
		sqlDB.Close()
		return nil, fmt.Errorf("unknown sql driver %q", driver)
	}

	s := &SQLStore{db: bdb}
	if err := s.migrate(context.Background()); err != nil {
		bdb.Close()
		return nil, unavailable("migrate", err)
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, model := range []interface{}{(*categoryModel)(nil), (*siteModel)(nil), (*configModel)(nil)} {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	// Seed the default category once.
	count, err := s.db.NewSelect().Model((*categoryModel)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		_, err = s.db.NewInsert().Model(&categoryModel{
			ID:       models.DefaultCategoryID,
			Name:     models.DefaultCategoryName,
			Position: 0,
		}).Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func siteModelToSite(m siteModel) models.Site {
	site := models.Site{
		ID:          m.ID,
		Title:       m.Title,
		URL:         m.URL,
		Description: m.Description,
		IconURL:     m.IconURL,
		Status:      models.SiteStatus(m.Status),
		LastChecked: m.LastChecked,
		CategoryID:  m.CategoryID,
	}
	if m.Latency.Valid {
		v := m.Latency.Int64
		site.Latency = &v
	}
	return site
}

func (s *SQLStore) ListSites(ctx context.Context) ([]models.Site, error) {
	var rows []siteModel
	if err := s.db.NewSelect().Model(&rows).Order("created_at ASC", "id ASC").Scan(ctx); err != nil {
		return nil, unavailable("list sites", err)
	}
	sites := make([]models.Site, 0, len(rows))
	for _, m := range rows {
		sites = append(sites, siteModelToSite(m))
	}
	return sites, nil
}

func (s *SQLStore) CreateSite(ctx context.Context, in models.SiteInput) (*models.Site, error) {
	if in.Title == "" || in.URL == "" {
		return nil, ErrValidation
	}

	categoryID := in.CategoryID
	if categoryID != "" {
		exists, err := s.db.NewSelect().Model((*categoryModel)(nil)).Where("id = ?", categoryID).Exists(ctx)
		if err != nil {
			return nil, unavailable("create site", err)
		}
		if !exists {
			categoryID = ""
		}
	}
	if categoryID == "" {
		var fallback categoryModel
		err := s.db.NewSelect().Model(&fallback).Order("position ASC", "id ASC").Limit(1).Scan(ctx)
		if err != nil {
			return nil, unavailable("create site", err)
		}
		categoryID = fallback.ID
	}

	row := siteModel{
		ID:          uuid.NewString(),
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		IconURL:     in.IconURL,
		Status:      string(models.StatusUnknown),
		LastChecked: 0,
		CategoryID:  categoryID,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return nil, unavailable("create site", err)
	}
	site := siteModelToSite(row)
	return &site, nil
}

func (s *SQLStore) UpdateSite(ctx context.Context, id string, patch models.SitePatch) (bool, error) {
	q := s.db.NewUpdate().Model((*siteModel)(nil)).Where("id = ?", id)

	touched := false
	set := func(column string, value interface{}) {
		q = q.Set(column+" = ?", value)
		touched = true
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.URL != nil {
		set("url", *patch.URL)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.IconURL != nil {
		set("icon_url", *patch.IconURL)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.LastChecked != nil {
		set("last_checked", *patch.LastChecked)
	}
	if patch.Latency != nil {
		set("latency", *patch.Latency)
	}
	if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}
	if !touched {
		// Nothing to change; report whether the row exists.
		exists, err := s.db.NewSelect().Model((*siteModel)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return false, unavailable("update site", err)
		}
		return exists, nil
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, unavailable("update site", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("update site", err)
	}
	return n > 0, nil
}

func (s *SQLStore) DeleteSite(ctx context.Context, id string) (bool, error) {
	res, err := s.db.NewDelete().Model((*siteModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, unavailable("delete site", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("delete site", err)
	}
	return n > 0, nil
}

func (s *SQLStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []categoryModel
	if err := s.db.NewSelect().Model(&rows).Order("position ASC", "id ASC").Scan(ctx); err != nil {
		return nil, unavailable("list categories", err)
	}
	cats := make([]models.Category, 0, len(rows))
	for _, m := range rows {
		cats = append(cats, models.Category{ID: m.ID, Name: m.Name})
	}
	return cats, nil
}

func (s *SQLStore) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, ErrValidation
	}
	row := categoryModel{
		ID:       uuid.NewString(),
		Name:     name,
		Position: time.Now().UnixNano(),
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return nil, unavailable("create category", err)
	}
	return &models.Category{ID: row.ID, Name: row.Name}, nil
}

func (s *SQLStore) RenameCategory(ctx context.Context, id, name string) (bool, error) {
	if name == "" {
		return false, ErrValidation
	}
	res, err := s.db.NewUpdate().Model((*categoryModel)(nil)).
		Set("name = ?", name).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, unavailable("rename category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("rename category", err)
	}
	return n > 0, nil
}

func (s *SQLStore) DeleteCategory(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, unavailable("delete category", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := tx.NewSelect().Model((*categoryModel)(nil)).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return false, unavailable("delete category", err)
	}
	if !exists {
		return false, nil
	}

	count, err := tx.NewSelect().Model((*categoryModel)(nil)).Count(ctx)
	if err != nil {
		return false, unavailable("delete category", err)
	}
	if count <= 1 {
		return false, ErrLastCategory
	}

	var fallback categoryModel
	err = tx.NewSelect().Model(&fallback).
		Where("id != ?", id).
		Order("position ASC", "id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return false, unavailable("delete category", err)
	}

	if _, err := tx.NewUpdate().Model((*siteModel)(nil)).
		Set("category_id = ?", fallback.ID).
		Where("category_id = ?", id).
		Exec(ctx); err != nil {
		return false, unavailable("delete category", err)
	}

	if _, err := tx.NewDelete().Model((*categoryModel)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return false, unavailable("delete category", err)
	}

	if err := tx.Commit(); err != nil {
		return false, unavailable("delete category", err)
	}
	return true, nil
}

func (s *SQLStore) GetTheme(ctx context.Context) (models.Theme, error) {
	var row configModel
	err := s.db.NewSelect().Model(&row).Where("? = ?", bun.Ident("key"), themeKey).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ThemeMinimal, nil
		}
		return "", unavailable("get theme", err)
	}
	theme := models.Theme(row.Value)
	if !models.ValidTheme(theme) {
		return models.ThemeMinimal, nil
	}
	return theme, nil
}

func (s *SQLStore) SetTheme(ctx context.Context, theme models.Theme) error {
	if !models.ValidTheme(theme) {
		return ErrValidation
	}
	// Update-then-insert keeps the statement portable across all three
	// dialects (MySQL has no ON CONFLICT clause).
	res, err := s.db.NewUpdate().Model((*configModel)(nil)).
		Set("value = ?", string(theme)).
		Where("? = ?", bun.Ident("key"), themeKey).
		Exec(ctx)
	if err != nil {
		return unavailable("set theme", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	row := configModel{Key: themeKey, Value: string(theme)}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		// MySQL reports zero affected rows when the update left the value
		// unchanged, which sends us here; the duplicate insert is harmless.
		if isDuplicate(err) {
			return nil
		}
		return unavailable("set theme", err)
	}
	return nil
}

// isDuplicate inspects low-level driver errors for unique-constraint
// violations. String-based to avoid importing driver packages here.
func isDuplicate(err error) bool {
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "duplicate") || strings.Contains(le, "unique") ||
		strings.Contains(le, "23505") || strings.Contains(le, "1062")
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
