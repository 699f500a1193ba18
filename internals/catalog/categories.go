// Package catalog knows the layout of the content directory: one
// manifest JSON file per entry, grouped in category directories, each
// category described by a JSON Schema.
package catalog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Category is one group of catalog entries
type Category struct {
	// Dir is the directory name under manifests/
	Dir string `yaml:"dir"`
	// Schema is the schema filename under schemas/
	Schema string `yaml:"schema"`
	// Title is the human readable category name
	Title string `yaml:"title"`
}

// DefaultCategories covers the stock catalog layout. A categories.yaml
// next to the manifests can override it.
var DefaultCategories = []Category{
	{Dir: "ides", Schema: "ide.schema.json", Title: "IDEs"},
	{Dir: "clis", Schema: "cli.schema.json", Title: "CLI Tools"},
	{Dir: "extensions", Schema: "extension.schema.json", Title: "Extensions"},
	{Dir: "models", Schema: "model.schema.json", Title: "Models"},
	{Dir: "providers", Schema: "provider.schema.json", Title: "Providers"},
	{Dir: "vendors", Schema: "vendor.schema.json", Title: "Vendors"},
}

// LoadCategories reads a categories.yaml file. A missing file is fine
// and yields the default set.
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCategories, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var categories []Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if len(categories) == 0 {
		return nil, errors.Errorf("%s declares no categories", path)
	}
	return categories, nil
}

// Pick returns the categories matching the given directory names, or
// all categories when names is empty. Unknown names are an error.
func Pick(categories []Category, names []string) ([]Category, error) {
	if len(names) == 0 {
		return categories, nil
	}

	picked := make([]Category, 0, len(names))
	for _, name := range names {
		found := false
		for _, category := range categories {
			if category.Dir == name {
				picked = append(picked, category)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("unknown category %q", name)
		}
	}
	return picked, nil
}
