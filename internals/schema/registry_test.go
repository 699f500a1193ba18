package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aicodingstack/stackctl/internals/ojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIsCached(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"cli.schema.json": `{"properties": {"id": {}}}`,
	})

	first, err := reg.Load("cli.schema.json")
	require.NoError(t, err)

	// deleting the file must not matter, the second load comes from
	// the cache
	require.NoError(t, os.Remove(filepath.Join(reg.Dir(), "cli.schema.json")))

	second, err := reg.Load("cli.schema.json")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadRewritesRelativeRefs(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"product.schema.json": `{"properties": {"id": {}}}`,
		"ide.schema.json":     `{"allOf": [{"$ref": "./product.schema.json"}]}`,
	})

	doc, err := reg.Load("ide.schema.json")
	require.NoError(t, err)

	branches, _ := doc.Get("allOf")
	branch, ok := branches.([]any)[0].(*ojson.Object)
	require.True(t, ok)
	ref, _ := branch.GetString("$ref")
	assert.Equal(t, "product.schema.json", ref)
}

func TestLoadFailsOnMissingRefTarget(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"ide.schema.json": `{"allOf": [{"$ref": "./nope.schema.json"}]}`,
	})

	_, err := reg.Load("ide.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.schema.json")
}

func TestCompileValidates(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"product.schema.json": `{
			"type": "object",
			"properties": {"id": {"type": "string"}},
			"required": ["id"]
		}`,
		"cli.schema.json": `{
			"allOf": [{"$ref": "./product.schema.json"}],
			"properties": {"shell": {"type": "boolean"}}
		}`,
	})

	compiled, err := reg.Compile("cli.schema.json")
	require.NoError(t, err)

	assert.NoError(t, compiled.Validate(map[string]any{"id": "x", "shell": true}))
	assert.Error(t, compiled.Validate(map[string]any{"shell": true}))

	// compiling again returns the cached schema
	again, err := reg.Compile("cli.schema.json")
	require.NoError(t, err)
	assert.Same(t, compiled, again)
}
