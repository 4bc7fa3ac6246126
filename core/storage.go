package core

import (
	"errors"
	"io/fs"
	"os"
)

// Storage persists buffer content. Writes are full overwrites.
type Storage interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Exists(path string) (bool, error)
}

// FileStorage is the os-backed Storage.
type FileStorage struct {
	Perm fs.FileMode // zero means 0644
}

func (s FileStorage) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s FileStorage) WriteFile(path string, data []byte) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0644
	}
	return os.WriteFile(path, data, perm)
}

func (s FileStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
