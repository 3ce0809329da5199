package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileFormatVersion = 1

// fileDocument is the on-disk YAML layout
type fileDocument struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

// FileStore persists the leaderboard as a YAML document
// Update serializes read-modify-write cycles within the process
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at path; the file is created on first Save
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.path
}

// Load implements Store; a missing file is an empty leaderboard
func (f *FileStore) Load(ctx context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

// Save implements Store; the file is replaced atomically via rename
func (f *FileStore) Save(ctx context.Context, entries []Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(ctx, entries)
}

// Update implements Updater; fn sees the list on disk and the file is
// left untouched when it cannot be read
func (f *FileStore) Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	next := fn(current)
	if err := f.save(ctx, next); err != nil {
		return nil, err
	}
	return append([]Entry(nil), next...), nil
}

func (f *FileStore) load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode leaderboard %s: %w", f.path, err)
	}
	if doc.Version > fileFormatVersion {
		return nil, fmt.Errorf("leaderboard %s: unsupported version %d", f.path, doc.Version)
	}
	return doc.Entries, nil
}

func (f *FileStore) save(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create leaderboard dir: %w", err)
	}

	data, err := yaml.Marshal(fileDocument{Version: fileFormatVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".leaderboard-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp leaderboard: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close leaderboard: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace leaderboard: %w", err)
	}
	return nil
}
