// Package i18n checks the locale message files the rendering layer
// resolves at request time. The toolchain only validates them, it
// never renders a message.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Store reads locale message files from a directory, one
// `<tag>.json` per locale, flat or nested string maps.
type Store struct {
	Dir           string
	DefaultLocale string
}

// NewStore returns a store over the locales directory
func NewStore(dir, defaultLocale string) *Store {
	return &Store{Dir: dir, DefaultLocale: defaultLocale}
}

// Locales lists the locale tags present in the directory, sorted. A
// missing directory is fatal, the site cannot build without it.
func (s *Store) Locales() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read locales directory %s", s.Dir)
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		locales = append(locales, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(locales)
	return locales, nil
}

// Messages loads one locale file flattened to dot separated keys
func (s *Store) Messages(locale string) (map[string]string, error) {
	path := filepath.Join(s.Dir, locale+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read locale file %s", path)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse locale file %s", path)
	}

	flat := map[string]string{}
	flatten("", raw, flat)
	return flat, nil
}

// Check validates every locale file: the tag must parse, the file must
// parse, and every non default locale is compared against the default
// locale's key set. Findings accumulate, only a missing directory or
// default locale aborts.
func (s *Store) Check() (catalog.Problems, error) {
	locales, err := s.Locales()
	if err != nil {
		return nil, err
	}

	base, err := s.Messages(s.DefaultLocale)
	if err != nil {
		return nil, errors.Wrapf(err, "default locale %q", s.DefaultLocale)
	}

	problems := catalog.Problems{}
	for _, locale := range locales {
		file := locale + ".json"

		if _, err := language.Parse(locale); err != nil {
			problems = append(problems, catalog.Problem{
				File:    file,
				Kind:    catalog.KindI18n,
				Message: fmt.Sprintf("%q is not a valid locale tag", locale),
			})
		}

		if locale == s.DefaultLocale {
			continue
		}

		messages, err := s.Messages(locale)
		if err != nil {
			problems = append(problems, catalog.Problem{
				File:    file,
				Kind:    catalog.KindParse,
				Message: err.Error(),
			})
			continue
		}

		for _, key := range sortedKeys(base) {
			if _, ok := messages[key]; !ok {
				problems = append(problems, catalog.Problem{
					File:    file,
					Path:    key,
					Kind:    catalog.KindI18n,
					Message: fmt.Sprintf("missing message %q (present in %s)", key, s.DefaultLocale),
				})
			}
		}
		for _, key := range sortedKeys(messages) {
			if _, ok := base[key]; !ok {
				problems = append(problems, catalog.Problem{
					File:    file,
					Path:    key,
					Kind:    catalog.KindI18n,
					Message: fmt.Sprintf("extra message %q (not in %s)", key, s.DefaultLocale),
				})
			}
		}
	}

	return problems, nil
}

func flatten(prefix string, value any, out map[string]string) {
	switch value := value.(type) {
	case map[string]any:
		for key, nested := range value {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flatten(path, nested, out)
		}
	case string:
		out[prefix] = value
	default:
		// numbers or other scalars still count as a message slot
		out[prefix] = fmt.Sprintf("%v", value)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
