package schema

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/aicodingstack/stackctl/internals/ojson"
	"github.com/pkg/errors"
)

// Orders is the declared field order of a schema: the top level order
// plus one order per nested object, keyed by dot separated property
// path. An array property's element objects are keyed by the array
// property's own path. When the same path is reached through more than
// one branch, the most recently computed order wins.
type Orders struct {
	Top    []string
	Nested map[string][]string
}

// At returns the order for a property path, or the top level order for
// the empty path. A nil result means no order is declared there.
func (o *Orders) At(path string) []string {
	if path == "" {
		return o.Top
	}
	return o.Nested[path]
}

// Extract computes the declared property order of the named schema.
// $ref targets contribute their order first, allOf branches are
// flattened in array order, and the schema's own properties come last.
// A property declared twice keeps its first position.
func (r *Registry) Extract(name string) (*Orders, error) {
	doc, err := r.Load(name)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Join(r.dir, name))
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)

	ex := newExtractor(r)
	top, err := ex.order(doc, doc, dir)
	if err != nil {
		return nil, err
	}

	orders := &Orders{Top: top, Nested: map[string][]string{}}
	for _, prop := range ex.properties(doc, doc, dir) {
		if err := ex.nested(prop.node, prop.root, prop.dir, prop.key, orders.Nested); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// extractor walks schema documents depth first. The visited sets track
// the current path through the tree so circular $ref chains terminate
// instead of recursing forever. Each walk keeps its own set because the
// walks call into each other for the same node.
type extractor struct {
	reg          *Registry
	visitedOrder map[*ojson.Object]bool
	visitedProps map[*ojson.Object]bool
	visitedNest  map[*ojson.Object]bool
}

func newExtractor(reg *Registry) *extractor {
	return &extractor{
		reg:          reg,
		visitedOrder: map[*ojson.Object]bool{},
		visitedProps: map[*ojson.Object]bool{},
		visitedNest:  map[*ojson.Object]bool{},
	}
}

// refTarget is a resolved $ref: the node itself plus the document and
// directory its own refs resolve against.
type refTarget struct {
	node *ojson.Object
	root *ojson.Object
	dir  string
}

type property struct {
	key string
	refTarget
}

// order computes the flattened property order of a single schema node
func (e *extractor) order(node, root *ojson.Object, dir string) ([]string, error) {
	if e.visitedOrder[node] {
		return nil, nil
	}
	e.visitedOrder[node] = true
	defer delete(e.visitedOrder, node)

	var order []string

	if ref, ok := node.GetString("$ref"); ok {
		target, err := e.deref(ref, root, dir)
		if err != nil {
			return nil, err
		}
		inherited, err := e.order(target.node, target.root, target.dir)
		if err != nil {
			return nil, err
		}
		order = appendMissing(order, inherited...)
	}

	if branches, ok := node.Get("allOf"); ok {
		arr, _ := branches.([]any)
		for _, branch := range arr {
			obj, ok := branch.(*ojson.Object)
			if !ok {
				continue
			}
			merged, err := e.order(obj, root, dir)
			if err != nil {
				return nil, err
			}
			order = appendMissing(order, merged...)
		}
	}

	if props, ok := node.GetObject("properties"); ok {
		order = appendMissing(order, props.Keys()...)
	}

	return order, nil
}

// nested records the order of the object (or array element object) at
// path and recurses into its members
func (e *extractor) nested(node, root *ojson.Object, dir, path string, out map[string][]string) error {
	if e.visitedNest[node] {
		return nil
	}
	e.visitedNest[node] = true
	defer delete(e.visitedNest, node)

	order, err := e.order(node, root, dir)
	if err != nil {
		return err
	}
	if len(order) > 0 {
		out[path] = order
	}

	for _, prop := range e.properties(node, root, dir) {
		if err := e.nested(prop.node, prop.root, prop.dir, joinPath(path, prop.key), out); err != nil {
			return err
		}
	}

	// array element objects live under the array property's own path
	if items, ok := node.GetObject("items"); ok {
		if err := e.nested(items, root, dir, path, out); err != nil {
			return err
		}
	}

	return nil
}

// properties collects the property sub-schemas of a node, flattening
// $ref and allOf the same way order does
func (e *extractor) properties(node, root *ojson.Object, dir string) []property {
	if e.visitedProps[node] {
		return nil
	}
	e.visitedProps[node] = true
	defer delete(e.visitedProps, node)

	var props []property

	if ref, ok := node.GetString("$ref"); ok {
		if target, err := e.deref(ref, root, dir); err == nil {
			props = append(props, e.properties(target.node, target.root, target.dir)...)
		}
	}

	if branches, ok := node.Get("allOf"); ok {
		arr, _ := branches.([]any)
		for _, branch := range arr {
			if obj, ok := branch.(*ojson.Object); ok {
				props = append(props, e.properties(obj, root, dir)...)
			}
		}
	}

	if own, ok := node.GetObject("properties"); ok {
		for _, key := range own.Keys() {
			if sub, ok := own.GetObject(key); ok {
				props = append(props, property{key: key, refTarget: refTarget{node: sub, root: root, dir: dir}})
			}
		}
	}

	return props
}

// deref resolves a (already rewritten) $ref value. Refs may point at a
// registered schema file, a fragment in the current document, or both.
func (e *extractor) deref(ref string, root *ojson.Object, dir string) (*refTarget, error) {
	target, fragment := splitFragment(ref)

	node, docRoot, docDir := root, root, dir
	if target != "" {
		doc, err := e.reg.loadPath(filepath.Join(dir, target))
		if err != nil {
			return nil, err
		}
		node, docRoot = doc, doc
	}

	if fragment != "" {
		resolved, err := resolvePointer(docRoot, fragment)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve $ref %q", ref)
		}
		node = resolved
	}

	return &refTarget{node: node, root: docRoot, dir: docDir}, nil
}

// resolvePointer follows a JSON pointer like /$defs/urlMap through
// object members
func resolvePointer(root *ojson.Object, pointer string) (*ojson.Object, error) {
	node := root
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		if token == "" {
			continue
		}
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")

		next, ok := node.GetObject(token)
		if !ok {
			return nil, errors.Errorf("pointer segment %q not found", token)
		}
		node = next
	}
	return node, nil
}

func appendMissing(order []string, names ...string) []string {
	for _, name := range names {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}
	return order
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
