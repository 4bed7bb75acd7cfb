package export

import (
	"os"

	"github.com/smallbiznis/portal/internal/config"
)

// osTempFileStore creates per-operation temp files under the configured
// directory. os.CreateTemp guarantees a unique path per call, so concurrent
// exports never share an archive file.
type osTempFileStore struct {
	dir string
}

func NewTempFileStore(cfg config.Config) TempFileStore {
	return &osTempFileStore{dir: cfg.Export.TempDir}
}

func (s *osTempFileStore) Create(pattern string) (*os.File, error) {
	return os.CreateTemp(s.dir, pattern)
}

func (s *osTempFileStore) Remove(name string) error {
	return os.Remove(name)
}
