// Package schema loads the catalog JSON Schema documents, resolves
// their relative $ref links and exposes the declared property order
// that the manifest sorter applies.
package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aicodingstack/stackctl/internals/ojson"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Registry loads and compiles schema documents for one run. Loading is
// cached per absolute path, so a schema referenced by several others is
// read from disk once.
type Registry struct {
	dir       string
	compiler  *jsonschema.Compiler
	raw       map[string]*ojson.Object
	compiled  map[string]*jsonschema.Schema
	resourced map[string]bool
}

// NewRegistry returns a registry rooted at the schema directory
func NewRegistry(dir string) *Registry {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	return &Registry{
		dir:       dir,
		compiler:  compiler,
		raw:       map[string]*ojson.Object{},
		compiled:  map[string]*jsonschema.Schema{},
		resourced: map[string]bool{},
	}
}

// Dir returns the schema directory this registry reads from
func (r *Registry) Dir() string {
	return r.dir
}

// Load parses the named schema file (relative to the registry
// directory) and transitively loads every schema it references via a
// relative $ref. Each `./name.schema.json` ref is rewritten to the
// target's filename, under which the target is registered with the
// compiler. Refs into the same document (`#/...`) are left alone.
func (r *Registry) Load(name string) (*ojson.Object, error) {
	return r.loadPath(filepath.Join(r.dir, name))
}

// Compile returns the compiled form of the named schema, compiling at
// most once per registry.
func (r *Registry) Compile(name string) (*jsonschema.Schema, error) {
	base := filepath.Base(name)
	if compiled, ok := r.compiled[base]; ok {
		return compiled, nil
	}

	if _, err := r.Load(name); err != nil {
		return nil, err
	}

	compiled, err := r.compiler.Compile(base)
	if err != nil {
		return nil, errors.Wrapf(err, "compile schema %s", name)
	}
	r.compiled[base] = compiled
	return compiled, nil
}

func (r *Registry) loadPath(path string) (*ojson.Object, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := r.raw[abs]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "read schema %s", path)
	}

	parsed, err := ojson.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", path)
	}
	doc, ok := parsed.(*ojson.Object)
	if !ok {
		return nil, errors.Errorf("schema %s is not a JSON object", path)
	}

	// cache before walking refs so mutually referencing schemas
	// terminate
	r.raw[abs] = doc

	if err := r.resolveRefs(doc, filepath.Dir(abs)); err != nil {
		return nil, err
	}

	if name := filepath.Base(abs); !r.resourced[name] {
		r.resourced[name] = true
		rewritten, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		if err := r.compiler.AddResource(name, bytes.NewReader(rewritten)); err != nil {
			return nil, errors.Wrapf(err, "register schema %s", name)
		}
	}

	return doc, nil
}

// resolveRefs walks the document and loads every `./` $ref target,
// rewriting the ref to the target's registered name. A missing target
// file is a hard error.
func (r *Registry) resolveRefs(v any, baseDir string) error {
	switch v := v.(type) {
	case *ojson.Object:
		if ref, ok := v.GetString("$ref"); ok && strings.HasPrefix(ref, "./") {
			rewritten, err := r.resolveRelativeRef(ref, baseDir)
			if err != nil {
				return err
			}
			v.Set("$ref", rewritten)
		}
		for _, key := range v.Keys() {
			if key == "$ref" {
				continue
			}
			member, _ := v.Get(key)
			if err := r.resolveRefs(member, baseDir); err != nil {
				return err
			}
		}
	case []any:
		for _, elem := range v {
			if err := r.resolveRefs(elem, baseDir); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registry) resolveRelativeRef(ref, baseDir string) (string, error) {
	target, fragment := splitFragment(ref)
	if _, err := r.loadPath(filepath.Join(baseDir, target)); err != nil {
		return "", err
	}

	rewritten := filepath.Base(target)
	if fragment != "" {
		rewritten += "#" + fragment
	}
	return rewritten, nil
}

// splitFragment splits "file.schema.json#/$defs/x" into path and
// fragment parts
func splitFragment(ref string) (path, fragment string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}
