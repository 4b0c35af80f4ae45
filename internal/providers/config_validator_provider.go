package providers

import (
	"errors"
	"fmt"
	"sentinel/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	return cv.validateBackend()
}

// validateBackend enforces the per-backend settings the struct tags cannot
// express (tags apply regardless of which backend is selected).
func (cv *CnfValidator) validateBackend() error {
	st := cv.conf.Storage
	switch st.Backend {
	case "file":
		if st.FilePath == "" {
			return fmt.Errorf("storage backend %q requires storage.filePath", st.Backend)
		}
	case "sql":
		if st.Driver == "" || st.DSN == "" {
			return fmt.Errorf("storage backend %q requires storage.driver and storage.dsn", st.Backend)
		}
	case "redis":
		if st.RedisAddr == "" {
			return fmt.Errorf("storage backend %q requires storage.redisAddr", st.Backend)
		}
	case "blob":
		if st.BlobEndpoint == "" || st.BlobBucket == "" {
			return fmt.Errorf("storage backend %q requires storage.blobEndpoint and storage.blobBucket", st.Backend)
		}
	}
	return nil
}
