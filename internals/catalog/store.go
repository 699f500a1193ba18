package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Store reads catalog entries from the content directory
type Store struct {
	ManifestsDir string
	categories   []Category
}

// Entry is one loaded catalog entry with its category context
type Entry struct {
	Category Category
	ID       string
	Path     string
	Manifest *Manifest
}

// NewStore returns a store over manifestsDir. Categories come from a
// categories.yaml inside that directory when present.
func NewStore(manifestsDir string) (*Store, error) {
	categories, err := LoadCategories(filepath.Join(manifestsDir, "categories.yaml"))
	if err != nil {
		return nil, err
	}
	return &Store{ManifestsDir: manifestsDir, categories: categories}, nil
}

// Categories returns the configured category set
func (s *Store) Categories() []Category {
	return s.categories
}

// CategoryDir returns the directory holding a category's manifests
func (s *Store) CategoryDir(category Category) string {
	return filepath.Join(s.ManifestsDir, category.Dir)
}

// Files lists the manifest files of a category, sorted by name. A
// missing category directory is an error, there is nothing useful to
// do without it.
func (s *Store) Files(category Category) ([]string, error) {
	dir := s.CategoryDir(category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read category directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// IDs lists the entry ids of a category (filename stems)
func (s *Store) IDs(category Category) ([]string, error) {
	files, err := s.Files(category)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(files))
	for i, file := range files {
		ids[i] = Stem(file)
	}
	return ids, nil
}

// Load reads one entry into its typed view
func (s *Store) Load(category Category, id string) (*Manifest, error) {
	path := filepath.Join(s.CategoryDir(category), id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}

	manifest := Manifest{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", path)
	}
	return &manifest, nil
}

// All loads every entry of every category, in category then id order
func (s *Store) All() ([]Entry, error) {
	var all []Entry
	for _, category := range s.categories {
		ids, err := s.IDs(category)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			manifest, err := s.Load(category, id)
			if err != nil {
				return nil, err
			}
			all = append(all, Entry{
				Category: category,
				ID:       id,
				Path:     filepath.Join(s.CategoryDir(category), id+".json"),
				Manifest: manifest,
			})
		}
	}
	return all, nil
}

// Stem returns the filename without directory and .json extension
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}
