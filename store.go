package positions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultStoragePath is where the storage file lives unless configured.
const DefaultStoragePath = "./storage.json"

// Store persists a Book as a single JSON file, rewritten wholesale on every
// save.
type Store struct {
	// Path of the storage file.
	Path string
	// Currency is used for new files and for documents that do not record one.
	Currency string
	// SortBy is the sorting preference of new files.
	SortBy SortBy
}

// Init creates an empty storage file if none exists. It reports whether the
// file was created.
func (s *Store) Init() (created bool, err error) {
	_, err = os.Stat(s.Path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to access storage file %q: %w", s.Path, err)
	}
	b := NewBook(s.Currency)
	b.SortBy = s.SortBy
	if err := s.Save(b); err != nil {
		return false, fmt.Errorf("failed to write initial storage file: %w", err)
	}
	slog.Info("created storage file", "path", s.Path)
	return true, nil
}

// Load reads the whole book from the storage file.
func (s *Store) Load() (*Book, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %q: %w", s.Path, err)
	}
	defer f.Close()

	b, err := DecodeBook(f, s.Currency, s.SortBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	slog.Debug("loaded storage", "path", s.Path, "positions", b.Len())
	return b, nil
}

// Save overwrites the storage file with the whole book.
func (s *Store) Save(b *Book) error {
	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save positions to storage file %q: %w", s.Path, err)
	}
	slog.Debug("saved storage", "path", s.Path, "positions", b.Len())
	return nil
}

// Query evaluates a JSONPath expression against the raw storage document.
func (s *Store) Query(path string) (any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %q: %w", s.Path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode storage: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return v, nil
}
