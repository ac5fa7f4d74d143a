package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps every key in one JSON snapshot file. Each write
// rewrites and fsyncs the whole file.
type FileStore struct {
	mu   sync.RWMutex
	file *os.File
	data map[string]json.RawMessage
	path string
}

// OpenFileStore opens or creates the snapshot at path
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	fs := &FileStore{file: f, path: path}
	if err := fs.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return fs, nil
}

// Close releases the snapshot file
func (s *FileStore) Close() error { return s.file.Close() }

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		s.data = make(map[string]json.RawMessage)
		return s.flushLocked()
	}
	var data map[string]json.RawMessage
	if err := json.NewDecoder(s.file).Decode(&data); err != nil {
		return err
	}
	if data == nil {
		data = make(map[string]json.RawMessage)
	}
	s.data = data
	return nil
}

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := json.NewEncoder(s.file).Encode(s.data); err != nil {
		return err
	}
	// truncate in case new content is shorter
	pos, _ := s.file.Seek(0, io.SeekCurrent)
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *FileStore) withWrite(ctx context.Context, fn func(map[string]json.RawMessage)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	fn(s.data)
	return s.flushLocked()
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key. The value must be valid JSON.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	v := make(json.RawMessage, len(value))
	copy(v, value)
	if !json.Valid(v) {
		return fmt.Errorf("localstore: value for %s is not JSON", key)
	}
	return s.withWrite(ctx, func(data map[string]json.RawMessage) {
		data[key] = v
	})
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.withWrite(ctx, func(data map[string]json.RawMessage) {
		delete(data, key)
	})
}

func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
