// Package stars maintains data/github-stars.json, the derived star
// counts the rendering layer joins onto catalog entries.
package stars

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/pkg/errors"
)

// Filename is the stars file name inside the data directory
const Filename = "github-stars.json"

// File maps category → entry id → star count. A null count means the
// entry has no GitHub repository, which keeps it distinguishable from
// an entry that was never fetched.
type File map[string]map[string]*int

// Load reads a stars file. A missing file yields an empty one.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	file := File{}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return file, nil
}

// Write persists the file, 2 space indented with a trailing newline.
// Map keys marshal sorted, so output is deterministic.
func (f File) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create data directory")
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Set records a count for an entry
func (f File) Set(category, id string, count *int) {
	if f[category] == nil {
		f[category] = map[string]*int{}
	}
	f[category][id] = count
}

// Check cross validates the stars file against the loaded catalog:
// entries in the file without a manifest are orphaned, manifests
// without an entry are missing. Both come back as problems with
// remediation hints.
func Check(file File, entries []catalog.Entry) catalog.Problems {
	problems := catalog.Problems{}

	present := map[string]map[string]bool{}
	for _, entry := range entries {
		if present[entry.Category.Dir] == nil {
			present[entry.Category.Dir] = map[string]bool{}
		}
		present[entry.Category.Dir][entry.ID] = true

		if _, ok := file[entry.Category.Dir][entry.ID]; !ok {
			problems = append(problems, catalog.Problem{
				File:    Filename,
				Path:    "/" + entry.Category.Dir + "/" + entry.ID,
				Kind:    catalog.KindStarsMissing,
				Message: fmt.Sprintf("no entry for manifest %s, run `stackctl stars fetch`", entry.Path),
			})
		}
	}

	for category, ids := range file {
		for id := range ids {
			if !present[category][id] {
				problems = append(problems, catalog.Problem{
					File:    Filename,
					Path:    "/" + category + "/" + id,
					Kind:    catalog.KindStarsOrphaned,
					Message: fmt.Sprintf("no manifest %s/%s.json, remove the entry or restore the manifest", category, id),
				})
			}
		}
	}

	return problems
}
