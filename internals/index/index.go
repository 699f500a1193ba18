// Package index derives the build artifacts the site consumes: a flat
// search index and a sitemap of localized page URLs.
package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/aicodingstack/stackctl/internals/stars"
	"github.com/pkg/errors"
)

// Entry is one search index record
type Entry struct {
	Category    string `json:"category"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Vendor      string `json:"vendor,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Stars       *int   `json:"stars"`
}

// Build flattens the catalog into index entries, joining star counts
// from the stars file. Order is stable: category declaration order,
// then id.
func Build(entries []catalog.Entry, starsFile stars.File) []Entry {
	index := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		index = append(index, Entry{
			Category:    entry.Category.Dir,
			ID:          entry.ID,
			Name:        entry.Manifest.Name,
			Vendor:      entry.Manifest.Vendor,
			Summary:     entry.Manifest.Summary,
			Description: entry.Manifest.Description,
			Stars:       starsFile[entry.Category.Dir][entry.ID],
		})
	}

	sort.SliceStable(index, func(i, j int) bool {
		if index[i].Category != index[j].Category {
			return false // keep category declaration order
		}
		return index[i].ID < index[j].ID
	})
	return index
}

// WriteIndex persists the search index as index.json
func WriteIndex(index []Entry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
