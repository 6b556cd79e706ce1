package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
)

// Renderer parses and executes templates, caching parsed templates.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template held in a string. The name is used for
// caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	return r.render("string:"+name, name, func() (string, error) {
		return templateStr, nil
	}, data)
}

// RenderFS renders a template read from fsys. The namespace separates the
// cache entries of different filesystems that share paths.
func (r *Renderer) RenderFS(namespace string, fsys fs.FS, path string, data any) ([]byte, error) {
	return r.render("fs:"+namespace+":"+path, path, func() (string, error) {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template '%s': %w", path, err)
		}
		return string(raw), nil
	}, data)
}

func (r *Renderer) render(cacheKey, name string, source func() (string, error), data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[cacheKey]
	r.mu.RUnlock()

	if !ok {
		text, err := source()
		if err != nil {
			return nil, err
		}
		tmpl, err = template.New(name).Funcs(r.funcMap).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}
		r.mu.Lock()
		r.cache[cacheKey] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"camelCase":  CamelCase,  // my-app → myApp
		"pascalCase": PascalCase, // my-app → MyApp
		"kebabCase":  KebabCase,  // MyApp → my-app
		"title":      Title,

		"quote":     Quote,
		"json":      JSON,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"replace":   strings.ReplaceAll,

		"dict":    Dict,
		"default": Default,
	}
}

// words splits an identifier on dashes, underscores, spaces and case changes.
func words(s string) []string {
	var out []string
	var cur []rune
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.' || r == '/':
			flush()
		case unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// CamelCase converts my-app or my_app to myApp.
func CamelCase(s string) string {
	parts := words(s)
	for i, p := range parts {
		if i == 0 {
			parts[i] = strings.ToLower(p)
			continue
		}
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, "")
}

// PascalCase converts my-app or my_app to MyApp.
func PascalCase(s string) string {
	parts := words(s)
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, "")
}

// KebabCase converts MyApp or my_app to my-app.
func KebabCase(s string) string {
	parts := words(s)
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, "-")
}

// Title capitalizes each space-separated word.
func Title(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = capitalize(f)
	}
	return strings.Join(fields, " ")
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Quote wraps a string in double quotes.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// JSON renders a value as indented JSON with sorted keys.
func JSON(v any) (string, error) {
	out, err := pkgjson.EncodeValue(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Dict builds a map from alternating key/value pairs.
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}
	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns defaultVal when val is nil, an empty string or an empty
// collection.
func Default(defaultVal, val any) any {
	switch v := val.(type) {
	case nil:
		return defaultVal
	case string:
		if v == "" {
			return defaultVal
		}
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	case []string:
		if len(v) == 0 {
			return defaultVal
		}
	case map[string]any:
		if len(v) == 0 {
			return defaultVal
		}
	}
	return val
}
