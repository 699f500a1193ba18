package catalog

import (
	"bytes"
	"os"

	"github.com/aicodingstack/stackctl/internals/ojson"
	"github.com/aicodingstack/stackctl/internals/schema"
	"github.com/pkg/errors"
)

// SortKeys reorders every object's keys in v to the schema declared
// order. Keys the schema does not declare keep their original relative
// order and land after all declared keys. Arrays keep their element
// order, only the keys inside element objects move.
func SortKeys(v any, orders *schema.Orders) any {
	return sortValue(v, "", orders)
}

// SortFile rewrites a manifest file in schema order, 2 space indented
// with a trailing newline. Returns whether the file changed. With
// write=false the file is left alone, the caller only learns whether
// it would change.
func SortFile(path string, orders *schema.Orders, write bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "read manifest %s", path)
	}

	parsed, err := ojson.Decode(data)
	if err != nil {
		return false, errors.Wrapf(err, "parse manifest %s", path)
	}

	sorted, err := ojson.Encode(SortKeys(parsed, orders))
	if err != nil {
		return false, errors.Wrapf(err, "encode manifest %s", path)
	}

	if bytes.Equal(data, sorted) {
		return false, nil
	}
	if !write {
		return true, nil
	}
	if err := os.WriteFile(path, sorted, 0644); err != nil {
		return false, errors.Wrapf(err, "write manifest %s", path)
	}
	return true, nil
}

func sortValue(v any, path string, orders *schema.Orders) any {
	switch v := v.(type) {
	case *ojson.Object:
		return sortObject(v, path, orders)
	case []any:
		sorted := make([]any, len(v))
		for i, elem := range v {
			// element objects share the array's path
			sorted[i] = sortValue(elem, path, orders)
		}
		return sorted
	default:
		return v
	}
}

func sortObject(obj *ojson.Object, path string, orders *schema.Orders) *ojson.Object {
	sorted := ojson.NewObject()

	for _, key := range orders.At(path) {
		if value, ok := obj.Get(key); ok {
			sorted.Set(key, sortValue(value, childPath(path, key), orders))
		}
	}
	for _, key := range obj.Keys() {
		if sorted.Has(key) {
			continue
		}
		value, _ := obj.Get(key)
		sorted.Set(key, sortValue(value, childPath(path, key), orders))
	}

	return sorted
}

func childPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
