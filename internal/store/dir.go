package store

import (
	"os"
	"path/filepath"
)

// Dir implements domain.BlobStore as one JSON file per store id inside a
// directory. The files are exactly the persisted documents, so external
// tooling can inspect and diff them directly.
type Dir struct {
	dir string
}

// OpenDir creates the directory if needed and returns the store.
func OpenDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Dir{dir: dir}, nil
}

func (s *Dir) Load(storeID string) ([]byte, bool) {
	data, err := os.ReadFile(s.file(storeID))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Dir) Save(storeID string, data []byte) error {
	// Write-then-rename so a crash mid-write never truncates the store.
	tmp := s.file(storeID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.file(storeID))
}

func (s *Dir) Close() error {
	return nil
}

func (s *Dir) file(storeID string) string {
	return filepath.Join(s.dir, storeID+".json")
}
