// Package ojson decodes and encodes JSON while preserving object key
// order. The stdlib map decoding loses declaration order, which is the
// one thing the manifest sorter cares about.
package ojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Object is a JSON object with stable key order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object
func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

// Len returns the number of members
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member names in insertion order. The returned slice
// is shared, callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Get returns the value for key and whether it exists
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is a member
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set sets key to value. New keys are appended, existing keys keep
// their position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// GetObject returns the member as an *Object if it is one
func (o *Object) GetObject(key string) (*Object, bool) {
	obj, ok := o.values[key].(*Object)
	return obj, ok
}

// GetString returns the member as a string if it is one
func (o *Object) GetString(key string) (string, bool) {
	s, ok := o.values[key].(string)
	return s, ok
}

// MarshalJSON writes the object members in insertion order
func (o *Object) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i != 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the object with the members of data
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return err
	}
	obj, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("ojson: expected an object, got %T", v)
	}
	*o = *obj
	return nil
}

// Decode parses a JSON document. Objects at any depth decode to
// *Object, arrays to []any, numbers to json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("ojson: trailing data after JSON document")
	}
	return v, nil
}

// Encode renders v with 2 space indentation and a trailing newline,
// the canonical format for everything this tool writes.
func Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func parseValue(dec *json.Decoder) (any, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := t.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("ojson: unexpected delimiter %q", t)
		}
	default:
		// string, json.Number, bool or nil
		return t, nil
	}
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("ojson: expected object key, got %v", t)
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
