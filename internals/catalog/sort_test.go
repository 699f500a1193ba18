package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aicodingstack/stackctl/internals/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, files map[string]string) *schema.Registry {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return schema.NewRegistry(dir)
}

const sortSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"id": {"type": "string"},
		"vendor": {"type": "string"},
		"resourceUrls": {
			"type": "object",
			"properties": {"homepage": {}, "github": {}}
		},
		"pricing": {
			"type": "object",
			"properties": {
				"model": {},
				"items": {
					"type": "array",
					"items": {"type": "object", "properties": {"tier": {}, "price": {}}}
				}
			}
		}
	}
}`

func TestSortFileAppliesSchemaOrder(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": sortSchema})
	orders, err := reg.Extract("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vendor":"Acme","id":"x","name":"X"}`), 0644))

	changed, err := SortFile(path, orders, true)
	require.NoError(t, err)
	assert.True(t, changed)

	sorted, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"X\",\n  \"id\": \"x\",\n  \"vendor\": \"Acme\"\n}\n", string(sorted))
}

func TestSortFileIsIdempotent(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": sortSchema})
	orders, err := reg.Extract("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vendor":"Acme","id":"x","name":"X"}`), 0644))

	_, err = SortFile(path, orders, true)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := SortFile(path, orders, true)
	require.NoError(t, err)
	assert.False(t, changed)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSortFileCheckModeLeavesFileAlone(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": sortSchema})
	orders, err := reg.Extract("tool.schema.json")
	require.NoError(t, err)

	original := `{"vendor":"Acme","id":"x","name":"X"}`
	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	changed, err := SortFile(path, orders, false)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestSortKeysNestedAndArrays(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": sortSchema})
	orders, err := reg.Extract("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "x.json")
	manifest := `{
		"pricing": {"items": [{"price": 0, "tier": "free"}, {"price": 20, "tier": "pro"}], "model": "freemium"},
		"resourceUrls": {"github": "https://github.com/acme/x", "homepage": "https://x.dev"},
		"id": "x",
		"name": "X"
	}`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

	_, err = SortFile(path, orders, true)
	require.NoError(t, err)

	sorted, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := `{
  "name": "X",
  "id": "x",
  "resourceUrls": {
    "homepage": "https://x.dev",
    "github": "https://github.com/acme/x"
  },
  "pricing": {
    "model": "freemium",
    "items": [
      {
        "tier": "free",
        "price": 0
      },
      {
        "tier": "pro",
        "price": 20
      }
    ]
  }
}
`
	assert.Equal(t, expected, string(sorted))
}

func TestSortKeysKeepsUnknownKeysInOriginalOrder(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": sortSchema})
	orders, err := reg.Extract("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zzz":1,"id":"x","aaa":2,"name":"X"}`), 0644))

	_, err = SortFile(path, orders, true)
	require.NoError(t, err)

	sorted, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"X\",\n  \"id\": \"x\",\n  \"zzz\": 1,\n  \"aaa\": 2\n}\n", string(sorted))
}

func TestSortKeepsValidationResult(t *testing.T) {
	reg := testRegistry(t, map[string]string{"tool.schema.json": `{
		"type": "object",
		"properties": {"name": {"type": "string"}, "id": {"type": "string"}},
		"required": ["id", "name"],
		"additionalProperties": false
	}`})
	orders, err := reg.Extract("tool.schema.json")
	require.NoError(t, err)
	compiled, err := reg.Compile("tool.schema.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x","name":"X"}`), 0644))

	linter := NewLinter(reg)
	require.Empty(t, linter.LintFile(compiled, path))

	_, err = SortFile(path, orders, true)
	require.NoError(t, err)
	assert.Empty(t, linter.LintFile(compiled, path))
}
