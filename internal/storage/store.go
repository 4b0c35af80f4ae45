// Package storage defines the persistence contract for sites, categories
// and the theme setting, plus one implementation per backend. All backends
// expose identical semantics; callers never branch on backend identity.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sentinel/internal/models"
	"sentinel/internal/providers"
	"sentinel/internal/structures"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	// The store is left unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrLastCategory is returned when deleting the only remaining category.
	ErrLastCategory = errors.New("cannot delete the last category")

	// ErrUnavailable wraps backend I/O failures. Operations are never retried
	// by the store; retry policy belongs to the caller.
	ErrUnavailable = errors.New("store unavailable")
)

type Store interface {
	ListSites(ctx context.Context) ([]models.Site, error)
	CreateSite(ctx context.Context, in models.SiteInput) (*models.Site, error)
	UpdateSite(ctx context.Context, id string, patch models.SitePatch) (bool, error)
	DeleteSite(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, id, name string) (bool, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	GetTheme(ctx context.Context) (models.Theme, error)
	SetTheme(ctx context.Context, theme models.Theme) error

	Close() error
}

// New selects the backend implementation from config. Seeding of the default
// category happens inside each constructor, once, at startup.
func New(conf *structures.Config, logger providers.Logger) (Store, error) {
	st := conf.Storage
	logger.Infof(providers.TypeStore, "Initializing %s storage backend", st.Backend)

	switch st.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(st.FilePath, st.Backups, logger)
	case "sql":
		return NewSQLStore(st.Driver, st.DSN)
	case "redis":
		return NewRedisStore(st.RedisAddr, st.RedisPassword, st.RedisDB, st.RedisKey)
	case "blob":
		return NewBlobStore(st)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
