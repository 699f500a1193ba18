package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/aicodingstack/stackctl/internals/schema"
	"github.com/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/language"
)

// Kind classifies a diagnostic
type Kind string

const (
	KindParse      Kind = "parse"
	KindRequired   Kind = "required"
	KindAdditional Kind = "additionalProperties"
	KindEnum       Kind = "enum"
	KindFormat     Kind = "format"
	KindFilename   Kind = "filenameMismatch"
	KindVersion    Kind = "version"
	KindI18n       Kind = "i18n"
	KindSchema     Kind = "schema"

	// cross file findings from the stars check
	KindStarsOrphaned Kind = "starsOrphaned"
	KindStarsMissing  Kind = "starsMissing"
)

// Problem is one diagnostic for one file. Problems never abort a batch,
// they accumulate and decide the exit code at the end.
type Problem struct {
	File    string
	Path    string
	Kind    Kind
	Message string
}

func (p Problem) String() string {
	if p.Path == "" || p.Path == "/" {
		return fmt.Sprintf("%s: [%s] %s", p.File, p.Kind, p.Message)
	}
	return fmt.Sprintf("%s: [%s] %s: %s", p.File, p.Kind, p.Path, p.Message)
}

// Problems is an accumulated diagnostic list
type Problems []Problem

// Linter validates manifest files against their category schema
type Linter struct {
	registry *schema.Registry
}

// NewLinter returns a linter backed by the given schema registry
func NewLinter(registry *schema.Registry) *Linter {
	return &Linter{registry: registry}
}

// LintCategory validates every manifest file of a category. The
// returned error is fatal (missing schema, unreadable directory); all
// per file findings land in the problem list instead.
func (l *Linter) LintCategory(store *Store, category Category) (Problems, error) {
	compiled, err := l.registry.Compile(category.Schema)
	if err != nil {
		return nil, err
	}

	files, err := store.Files(category)
	if err != nil {
		return nil, err
	}

	problems := Problems{}
	for _, file := range files {
		problems = append(problems, l.LintFile(compiled, file)...)
	}
	return problems, nil
}

// LintFile validates a single manifest file
func (l *Linter) LintFile(compiled *jsonschema.Schema, path string) Problems {
	problems := Problems{}

	data, err := os.ReadFile(path)
	if err != nil {
		return append(problems, Problem{File: path, Kind: KindParse, Message: err.Error()})
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return append(problems, Problem{File: path, Kind: KindParse, Message: err.Error()})
	}

	if err := compiled.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			problems = append(problems, classify(path, validationErr)...)
		} else {
			problems = append(problems, Problem{File: path, Kind: KindSchema, Message: err.Error()})
		}
	}

	if obj, ok := doc.(map[string]any); ok {
		problems = append(problems, lintIdentity(path, obj)...)
		problems = append(problems, lintVersion(path, obj)...)
		problems = append(problems, lintTranslations(path, obj)...)
	}

	return problems
}

// lintIdentity checks the id == filename invariant, which JSON Schema
// alone cannot express
func lintIdentity(path string, doc map[string]any) Problems {
	id, _ := doc["id"].(string)
	if stem := Stem(path); id != stem {
		return Problems{{
			File:    path,
			Path:    "/id",
			Kind:    KindFilename,
			Message: fmt.Sprintf("id %q does not match filename, expected %q", id, stem),
		}}
	}
	return nil
}

func lintVersion(path string, doc map[string]any) Problems {
	version, ok := doc["version"].(string)
	if !ok || version == "" {
		return nil
	}
	if _, err := semver.NewVersion(version); err != nil {
		return Problems{{
			File:    path,
			Path:    "/version",
			Kind:    KindVersion,
			Message: fmt.Sprintf("version %q is not a valid semver version", version),
		}}
	}
	return nil
}

// lintTranslations checks that i18n overrides use valid locale tags
// and only touch translatable fields
func lintTranslations(path string, doc map[string]any) Problems {
	overrides, ok := doc["i18n"].(map[string]any)
	if !ok {
		return nil
	}

	problems := Problems{}
	for locale, override := range overrides {
		if _, err := language.Parse(locale); err != nil {
			problems = append(problems, Problem{
				File:    path,
				Path:    "/i18n/" + locale,
				Kind:    KindI18n,
				Message: fmt.Sprintf("%q is not a valid locale tag", locale),
			})
		}

		fields, ok := override.(map[string]any)
		if !ok {
			problems = append(problems, Problem{
				File:    path,
				Path:    "/i18n/" + locale,
				Kind:    KindI18n,
				Message: "override must be an object",
			})
			continue
		}
		for field := range fields {
			if !isTranslatable(field) {
				problems = append(problems, Problem{
					File:    path,
					Path:    "/i18n/" + locale + "/" + field,
					Kind:    KindI18n,
					Message: fmt.Sprintf("%q is not a translatable field", field),
				})
			}
		}
	}
	return problems
}

func isTranslatable(field string) bool {
	for _, allowed := range TranslatableFields {
		if field == allowed {
			return true
		}
	}
	return false
}

// classify flattens a validation error tree into leaf diagnostics,
// keyed by the failing keyword
func classify(path string, err *jsonschema.ValidationError) Problems {
	if len(err.Causes) == 0 {
		return Problems{{
			File:    path,
			Path:    err.InstanceLocation,
			Kind:    keywordKind(err.KeywordLocation),
			Message: err.Message,
		}}
	}

	problems := Problems{}
	for _, cause := range err.Causes {
		problems = append(problems, classify(path, cause)...)
	}
	return problems
}

func keywordKind(keywordLocation string) Kind {
	keyword := keywordLocation
	if i := strings.LastIndexByte(keyword, '/'); i >= 0 {
		keyword = keyword[i+1:]
	}

	switch keyword {
	case "required":
		return KindRequired
	case "additionalProperties":
		return KindAdditional
	case "enum":
		return KindEnum
	case "format":
		return KindFormat
	default:
		return KindSchema
	}
}
