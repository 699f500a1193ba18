package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocales(t *testing.T, files map[string]string) *Store {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return NewStore(dir, "en")
}

func TestMessagesFlattensNestedKeys(t *testing.T) {
	store := writeLocales(t, map[string]string{
		"en.json": `{"nav": {"home": "Home", "tools": "Tools"}, "title": "AI Coding Stack"}`,
	})

	messages, err := store.Messages("en")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"nav.home":  "Home",
		"nav.tools": "Tools",
		"title":     "AI Coding Stack",
	}, messages)
}

func TestCheckReportsMissingAndExtraKeys(t *testing.T) {
	store := writeLocales(t, map[string]string{
		"en.json":    `{"title": "Hello", "nav": {"home": "Home"}}`,
		"zh-CN.json": `{"title": "你好", "nav": {"about": "关于"}}`,
	})

	problems, err := store.Check()
	require.NoError(t, err)

	var missing, extra []string
	for _, p := range problems {
		require.Equal(t, catalog.KindI18n, p.Kind)
		switch {
		case p.Path == "nav.home":
			missing = append(missing, p.File)
		case p.Path == "nav.about":
			extra = append(extra, p.File)
		}
	}
	assert.Equal(t, []string{"zh-CN.json"}, missing)
	assert.Equal(t, []string{"zh-CN.json"}, extra)
}

func TestCheckReportsInvalidLocaleTag(t *testing.T) {
	store := writeLocales(t, map[string]string{
		"en.json":       `{"title": "Hello"}`,
		"not a tag.json": `{"title": "Hello"}`,
	})

	problems, err := store.Check()
	require.NoError(t, err)
	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0].Message, "not a valid locale tag")
}

func TestCheckMissingDirectoryIsFatal(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"), "en")
	_, err := store.Check()
	assert.Error(t, err)
}

func TestCheckMissingDefaultLocaleIsFatal(t *testing.T) {
	store := writeLocales(t, map[string]string{
		"de.json": `{"title": "Hallo"}`,
	})
	_, err := store.Check()
	assert.Error(t, err)
}
