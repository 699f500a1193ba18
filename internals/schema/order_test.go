package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchemas(t *testing.T, files map[string]string) *Registry {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return NewRegistry(dir)
}

func TestExtractOwnProperties(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"vendor.schema.json": `{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type": "object",
			"properties": {"name": {"type": "string"}, "id": {"type": "string"}, "vendor": {"type": "string"}}
		}`,
	})

	orders, err := reg.Extract("vendor.schema.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id", "vendor"}, orders.Top)
}

func TestExtractAllOfFlattening(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"product.schema.json": `{
			"type": "object",
			"properties": {"id": {"type": "string"}, "name": {"type": "string"}}
		}`,
		"cli.schema.json": `{
			"allOf": [{"$ref": "./product.schema.json"}],
			"properties": {"install": {"type": "string"}, "name": {"type": "string"}, "shell": {"type": "string"}}
		}`,
	})

	orders, err := reg.Extract("cli.schema.json")
	require.NoError(t, err)
	// base first, own fields appended, redeclared "name" keeps its
	// base position
	assert.Equal(t, []string{"id", "name", "install", "shell"}, orders.Top)
}

func TestExtractRootRef(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"base.schema.json": `{"properties": {"a": {}, "b": {}}}`,
		"alias.schema.json": `{
			"$ref": "./base.schema.json",
			"properties": {"c": {}}
		}`,
	})

	orders, err := reg.Extract("alias.schema.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, orders.Top)
}

func TestExtractNestedOrders(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"ide.schema.json": `{
			"type": "object",
			"properties": {
				"id": {"type": "string"},
				"resourceUrls": {
					"type": "object",
					"properties": {"homepage": {}, "github": {}, "docs": {}}
				},
				"pricing": {
					"type": "object",
					"properties": {
						"model": {"type": "string"},
						"items": {
							"type": "array",
							"items": {
								"type": "object",
								"properties": {"tier": {}, "price": {}}
							}
						}
					}
				}
			}
		}`,
	})

	orders, err := reg.Extract("ide.schema.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"homepage", "github", "docs"}, orders.Nested["resourceUrls"])
	assert.Equal(t, []string{"model", "items"}, orders.Nested["pricing"])
	// array element objects register under the array property's path
	assert.Equal(t, []string{"tier", "price"}, orders.Nested["pricing.items"])
}

func TestExtractNestedOrdersThroughDefsRef(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"product.schema.json": `{
			"properties": {
				"resourceUrls": {"$ref": "#/$defs/urlMap"},
				"communityUrls": {"$ref": "#/$defs/urlMap"}
			},
			"$defs": {
				"urlMap": {
					"type": "object",
					"properties": {"homepage": {}, "github": {}}
				}
			}
		}`,
	})

	orders, err := reg.Extract("product.schema.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"resourceUrls", "communityUrls"}, orders.Top)
	assert.Equal(t, []string{"homepage", "github"}, orders.Nested["resourceUrls"])
	assert.Equal(t, []string{"homepage", "github"}, orders.Nested["communityUrls"])
}

func TestExtractInheritedNestedOrders(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"product.schema.json": `{
			"properties": {
				"links": {"type": "object", "properties": {"homepage": {}, "github": {}}}
			}
		}`,
		"model.schema.json": `{
			"allOf": [{"$ref": "./product.schema.json"}],
			"properties": {"contextWindow": {}}
		}`,
	})

	orders, err := reg.Extract("model.schema.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"links", "contextWindow"}, orders.Top)
	assert.Equal(t, []string{"homepage", "github"}, orders.Nested["links"])
}

func TestExtractSurvivesCircularRefs(t *testing.T) {
	reg := writeSchemas(t, map[string]string{
		"a.schema.json": `{
			"properties": {"one": {}, "child": {"$ref": "./b.schema.json"}}
		}`,
		"b.schema.json": `{
			"properties": {"two": {}, "parent": {"$ref": "./a.schema.json"}}
		}`,
	})

	orders, err := reg.Extract("a.schema.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "child"}, orders.Top)
	assert.Equal(t, []string{"two", "parent"}, orders.Nested["child"])
}

func TestAtFallsBackToTop(t *testing.T) {
	orders := &Orders{Top: []string{"a"}, Nested: map[string][]string{"x": {"b"}}}
	assert.Equal(t, []string{"a"}, orders.At(""))
	assert.Equal(t, []string{"b"}, orders.At("x"))
	assert.Nil(t, orders.At("unknown"))
}
