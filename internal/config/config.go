// Package config loads the user's rc file: default settings for create
// and the presets saved from earlier runs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

const (
	// FileName is the rc file's name in the home directory.
	FileName = ".hatchrc.yml"
	// EnvConfig overrides the rc file location.
	EnvConfig = "HATCH_CONFIG"
	envPrefix = "HATCH"
)

// Settings are the rc file's scalar options.
type Settings struct {
	PackageManager string
	Registry       string
}

// RC is a loaded rc file.
type RC struct {
	path     string
	settings Settings
	presets  map[string]*preset.Preset
}

type rcFile struct {
	Presets map[string]*preset.Preset `yaml:"presets"`
}

// Path returns the rc file location: explicit if set, then $HATCH_CONFIG,
// then ~/.hatchrc.yml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads the rc file at path. A missing file yields empty settings and
// no saved presets. HATCH_PACKAGE_MANAGER and HATCH_REGISTRY override the
// file's settings.
func Load(path string) (*RC, error) {
	rc := &RC{path: path, presets: map[string]*preset.Preset{}}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv("packageManager", envPrefix+"_PACKAGE_MANAGER"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("registry", envPrefix+"_REGISTRY"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(data) > 0 {
		issues, err := Validate(data)
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		if len(issues) > 0 {
			return nil, &SchemaError{Path: path, Issues: issues}
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var file rcFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing presets in %s: %w", path, err)
		}
		for name, p := range file.Presets {
			if p == nil {
				p = &preset.Preset{}
			}
			rc.presets[name] = p
		}
	}

	rc.settings = Settings{
		PackageManager: v.GetString("packageManager"),
		Registry:       v.GetString("registry"),
	}
	return rc, nil
}

// File returns the rc file path.
func (rc *RC) File() string {
	return rc.path
}

// Settings returns the merged file and environment settings.
func (rc *RC) Settings() Settings {
	return rc.settings
}

// Presets returns copies of the saved presets.
func (rc *RC) Presets() map[string]*preset.Preset {
	out := make(map[string]*preset.Preset, len(rc.presets))
	for name, p := range rc.presets {
		out[name] = p.Clone()
	}
	return out
}

// PresetNames returns the saved preset names, sorted.
func (rc *RC) PresetNames() []string {
	names := make([]string, 0, len(rc.presets))
	for name := range rc.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SavePreset stores p under name in the rc file, replacing any preset of
// the same name. Other content of the file is kept.
func (rc *RC) SavePreset(name string, p *preset.Preset) error {
	if name == "" {
		return fmt.Errorf("preset name is required")
	}
	if p == nil {
		return fmt.Errorf("preset %q is nil", name)
	}

	doc, err := rc.readDocument()
	if err != nil {
		return err
	}

	var value yaml.Node
	if err := value.Encode(p); err != nil {
		return fmt.Errorf("encoding preset %q: %w", name, err)
	}
	presets := mappingValue(doc.Content[0], "presets")
	setMappingValue(presets, name, &value)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rc.path, err)
	}
	if err := writeAtomic(rc.path, out); err != nil {
		return err
	}

	rc.presets[name] = p.Clone()
	return nil
}

// readDocument returns the rc file as a yaml document whose root is a
// mapping, creating an empty one when the file is missing or blank.
func (rc *RC) readDocument() (*yaml.Node, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode}

	data, err := os.ReadFile(rc.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", rc.path, err)
	default:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", rc.path, err)
		}
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		doc = &yaml.Node{Kind: yaml.DocumentNode}
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level must be a mapping", rc.path)
	}
	return doc, nil
}

// mappingValue returns the mapping stored under key, creating it if needed.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			v := m.Content[i+1]
			if v.Kind != yaml.MappingNode {
				*v = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			}
			return v
		}
	}
	v := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	setMappingValue(m, key, v)
	return v
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".hatchrc-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
