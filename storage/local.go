// Package storage implements blob storage on the local filesystem.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/researchhub/researchhub/errors"
)

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("could not create storage directory", errors.WithCause(err))
	}
	return &LocalStore{dir: dir}, nil
}

// Store writes the reader to a fresh file and returns its key. Keys
// are random, the original file name never reaches the disk.
func (s *LocalStore) Store(r io.Reader, ext string) (string, error) {
	key := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", errors.New("could not create file", errors.WithCause(err))
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", errors.New("could not write file", errors.WithCause(err))
	}
	return key, nil
}

func (s *LocalStore) Delete(key string) error {
	// The key is user-visible data. Keep it inside the root.
	if filepath.Base(key) != key {
		return errors.New("invalid key", errors.BadRequest())
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return errors.New("could not delete file", errors.WithCause(err))
	}
	return nil
}
