package inmem

import (
	"fmt"
	"io"
	"io/ioutil"
	"sync"
)

// FileStore keeps file contents in memory, keyed by a counter.
type FileStore struct {
	mu    sync.Locker
	files map[string][]byte
	next  int
}

func NewFileStore() *FileStore {
	return &FileStore{
		mu:    &sync.Mutex{},
		files: make(map[string][]byte),
	}
}

func (s *FileStore) Store(r io.Reader, ext string) (string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	key := fmt.Sprintf("file-%d%s", s.next, ext)
	s.files[key] = data
	return key, nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, key)
	return nil
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.files[key]
	return data, ok
}
