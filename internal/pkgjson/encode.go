package pkgjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Conventional top-level key order; remaining keys follow sorted.
var topLevelOrder = []string{
	"name",
	"version",
	"private",
	"description",
	"author",
	"scripts",
	"main",
	"module",
	"browser",
	"jsnext:main",
	"files",
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"vue",
	"babel",
	"eslintConfig",
	"prettier",
	"postcss",
	"browserslist",
	"jest",
}

var scriptOrder = []string{
	"serve",
	"build",
	"test:unit",
	"test:e2e",
	"lint",
	"deploy",
}

// Encode renders package.json fields as two-space indented JSON with a
// trailing newline. Output is identical for equal input.
func Encode(fields map[string]any) ([]byte, error) {
	normalized, err := normalize(fields)
	if err != nil {
		return nil, err
	}
	obj, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("package fields must be an object")
	}

	var buf bytes.Buffer
	if err := writeObject(&buf, obj, orderKeys(obj, topLevelOrder), 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EncodeValue renders any JSON value with the same layout rules as Encode:
// two-space indentation and sorted object keys. No trailing newline.
func EncodeValue(v any) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, "", normalized, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses package.json content into fields.
func Decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return fields, nil
}

// normalize reduces arbitrary Go values to the JSON data model.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding package fields: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// orderKeys lists keys named in preferred first, then the rest sorted.
func orderKeys(obj map[string]any, preferred []string) []string {
	keys := make([]string, 0, len(obj))
	seen := make(map[string]bool, len(preferred))
	for _, k := range preferred {
		if _, ok := obj[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(obj)-len(keys))
	for k := range obj {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func writeValue(buf *bytes.Buffer, key string, v any, depth int) error {
	switch val := v.(type) {
	case map[string]any:
		var preferred []string
		if depth == 1 && key == "scripts" {
			preferred = scriptOrder
		}
		return writeObject(buf, val, orderKeys(val, preferred), depth)
	case []any:
		return writeArray(buf, val, depth)
	case json.Number:
		buf.WriteString(val.String())
		return nil
	default:
		return writeScalar(buf, val)
	}
}

func writeObject(buf *bytes.Buffer, obj map[string]any, keys []string, depth int) error {
	if len(obj) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	for i, k := range keys {
		indent(buf, depth+1)
		if err := writeScalar(buf, k); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeValue(buf, k, obj[k], depth+1); err != nil {
			return err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, arr []any, depth int) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteString("[\n")
	for i, item := range arr {
		indent(buf, depth+1)
		if err := writeValue(buf, "", item, depth+1); err != nil {
			return err
		}
		if i < len(arr)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte(']')
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
