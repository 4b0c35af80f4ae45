package storage

import (
	"context"
	"fmt"
	"os"
	"sentinel/internal/providers"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// fileBackend persists the document as a JSON file. Writes go through a
// temp file with fsync + rename so a crash never leaves a torn document.
// Before each overwrite the previous snapshot is kept as a rotating
// zstd-compressed backup (<path>.1.zst .. <path>.N.zst).
type fileBackend struct {
	path    string
	backups int
	encoder *zstd.Encoder
	logger  providers.Logger
}

// NewFileStore opens (or creates) the JSON document at path. backups is the
// number of compressed snapshot generations to keep; 0 disables backups.
func NewFileStore(path string, backups int, logger providers.Logger) (Store, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	b := &fileBackend{
		path:    path,
		backups: backups,
		encoder: encoder,
		logger:  logger,
	}

	// Seed the document on first open so the default category exists
	// durably before any request is served.
	doc, err := b.Load(context.Background())
	if err != nil {
		return nil, unavailable("open", err)
	}
	if doc == nil {
		if err := b.Save(context.Background(), newDocument()); err != nil {
			return nil, unavailable("seed", err)
		}
	}
	return newDocStore(b), nil
}

func (b *fileBackend) Load(_ context.Context) (*document, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt store file %s: %w", b.path, err)
	}
	return &doc, nil
}

func (b *fileBackend) Save(_ context.Context, doc *document) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	b.rotateBackups()

	tmpFile := b.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, b.path)
}

// rotateBackups compresses the current snapshot into <path>.1.zst and shifts
// older generations up. Backup failures are logged, never fatal: the live
// document write must not be blocked by backup housekeeping.
func (b *fileBackend) rotateBackups() {
	if b.backups <= 0 {
		return
	}
	current, err := os.ReadFile(b.path)
	if err != nil {
		return
	}

	for i := b.backups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d.zst", b.path, i)
		to := fmt.Sprintf("%s.%d.zst", b.path, i+1)
		if _, err := os.Stat(from); err == nil {
			_ = os.Rename(from, to)
		}
	}

	compressed := b.encoder.EncodeAll(current, make([]byte, 0, len(current)/2))
	target := fmt.Sprintf("%s.1.zst", b.path)
	if err := os.WriteFile(target, compressed, 0644); err != nil {
		b.logger.Warnf(providers.TypeStore, "Snapshot backup failed: %s", err)
	}
}

func (b *fileBackend) Close() error {
	b.encoder.Close()
	return nil
}
