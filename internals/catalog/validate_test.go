package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aicodingstack/stackctl/internals/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lintSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string"},
		"license": {"type": "string"},
		"kind": {"enum": ["ide", "cli"]},
		"homepage": {"type": "string", "format": "uri"}
	},
	"required": ["id", "name", "license"],
	"additionalProperties": false
}`

func lintOne(t *testing.T, manifest, filename string) Problems {
	t.Helper()
	reg := testRegistry(t, map[string]string{"tool.schema.json": lintSchema})
	compiled, err := reg.Compile("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

	return NewLinter(reg).LintFile(compiled, path)
}

func kinds(problems Problems) []Kind {
	out := make([]Kind, len(problems))
	for i, p := range problems {
		out[i] = p.Kind
	}
	return out
}

func TestLintValidManifest(t *testing.T) {
	problems := lintOne(t, `{"id":"foo","name":"Foo","license":"MIT","kind":"cli"}`, "foo.json")
	assert.Empty(t, problems)
}

func TestLintMissingRequiredField(t *testing.T) {
	problems := lintOne(t, `{"id":"foo","name":"Foo"}`, "foo.json")
	require.NotEmpty(t, problems)
	assert.Contains(t, kinds(problems), KindRequired)
	assert.Contains(t, problems[0].Message, "license")
}

func TestLintAdditionalProperty(t *testing.T) {
	problems := lintOne(t, `{"id":"foo","name":"Foo","license":"MIT","bogus":1}`, "foo.json")
	assert.Contains(t, kinds(problems), KindAdditional)
}

func TestLintEnumMismatch(t *testing.T) {
	problems := lintOne(t, `{"id":"foo","name":"Foo","license":"MIT","kind":"gui"}`, "foo.json")
	require.Contains(t, kinds(problems), KindEnum)
}

func TestLintFilenameMismatch(t *testing.T) {
	problems := lintOne(t, `{"id":"bar","name":"Bar","license":"MIT"}`, "foo.json")
	require.Contains(t, kinds(problems), KindFilename)
	for _, p := range problems {
		if p.Kind == KindFilename {
			assert.Contains(t, p.Message, `expected "foo"`)
			assert.Contains(t, p.Message, `"bar"`)
		}
	}
}

func TestLintParseError(t *testing.T) {
	problems := lintOne(t, `{"id": "foo",`, "foo.json")
	require.Len(t, problems, 1)
	assert.Equal(t, KindParse, problems[0].Kind)
}

func TestLintInvalidSemverVersion(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": `{
		"type": "object",
		"properties": {"id": {}, "name": {}, "license": {}, "version": {"type": "string"}}
	}`})
	compiled, err := reg.Compile("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "foo.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"foo","name":"Foo","license":"MIT","version":"not.a.version"}`), 0644))

	problems := NewLinter(reg).LintFile(compiled, path)
	assert.Contains(t, kinds(problems), KindVersion)
}

func TestLintTranslationOverrides(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": `{"type": "object"}`})
	compiled, err := reg.Compile("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "foo.json")
	manifest := `{
		"id": "foo",
		"i18n": {
			"zh-CN": {"name": "Foo 中文"},
			"not a tag": {"name": "x"},
			"de": {"homepage": "https://foo.de"}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

	problems := NewLinter(reg).LintFile(compiled, path)

	found := map[string]bool{}
	for _, p := range problems {
		if p.Kind == KindI18n {
			found[p.Path] = true
		}
	}
	assert.True(t, found["/i18n/not a tag"], "invalid locale tag should be reported")
	assert.True(t, found["/i18n/de/homepage"], "non translatable field should be reported")
	assert.False(t, found["/i18n/zh-CN"], "valid override should pass")
}

func TestLintCategoryAccumulatesAcrossFiles(t *testing.T) {
	schemasDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(schemasDir, "cli.schema.json"), []byte(lintSchema), 0644))

	manifestsDir := t.TempDir()
	cliDir := filepath.Join(manifestsDir, "clis")
	require.NoError(t, os.MkdirAll(cliDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cliDir, "good.json"),
		[]byte(`{"id":"good","name":"Good","license":"MIT"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cliDir, "broken.json"),
		[]byte(`{"id":"broken"`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cliDir, "renamed.json"),
		[]byte(`{"id":"other","name":"Renamed","license":"MIT"}`), 0644))

	store, err := NewStore(manifestsDir)
	require.NoError(t, err)

	reg := schema.NewRegistry(schemasDir)
	problems, err := NewLinter(reg).LintCategory(store, Category{Dir: "clis", Schema: "cli.schema.json"})
	require.NoError(t, err)

	// broken.json parse error and renamed.json filename mismatch, the
	// batch never stops early
	assert.Contains(t, kinds(problems), KindParse)
	assert.Contains(t, kinds(problems), KindFilename)
}
