package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	BooksFile      = "books.json"
	CategoriesFile = "categories.json"
	BooksCSVFile   = "books.csv"
	UsersFile      = "users.json"
)

type Config struct {
	Dir string
}

func DefaultConfig() Config {
	if d := os.Getenv("BOOKHUB_DATA_DIR"); d != "" {
		return Config{Dir: d}
	}
	return Config{Dir: "data"}
}

func (c Config) BooksPath() string      { return filepath.Join(c.Dir, BooksFile) }
func (c Config) CategoriesPath() string { return filepath.Join(c.Dir, CategoriesFile) }
func (c Config) BooksCSVPath() string   { return filepath.Join(c.Dir, BooksCSVFile) }
func (c Config) UsersPath() string      { return filepath.Join(c.Dir, UsersFile) }

func EnsureDataDir(cfg Config) error {
	return os.MkdirAll(cfg.Dir, 0o755)
}

// LoadJSON decodes a JSON array file. A missing file is an empty collection.
func LoadJSON[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// ModTime reports the last modification time of path; ok is false when the
// file does not exist.
func ModTime(path string) (t time.Time, ok bool, err error) {
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("stat %s: %w", path, err)
	}
	return fi.ModTime(), true, nil
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic writes through a temp file in the target directory and
// renames it over path, so readers see either the old or the new content.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// WriteJSON atomically replaces path with the indented JSON encoding of v.
func WriteJSON(path string, v any) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	})
}
