// Package pkgjson builds the project's package descriptor and encodes
// package.json deterministically.
package pkgjson

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/gosimple/slug"

	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// LatestVersion is the version used for plugins that do not pin one.
const LatestVersion = "latest"

// InitialVersion is the version of a freshly created project.
const InitialVersion = "0.0.1"

// PackageDescriptor is the minimal package.json written before installation.
type PackageDescriptor struct {
	Name            string
	Version         string
	Private         bool
	DevDependencies map[string]string
}

// FromPreset builds the descriptor for a resolved preset. Each plugin becomes
// a dev dependency at its "version" option, or "latest". Any npm version
// spec is accepted; a malformed semver range only draws a warning on log.
func FromPreset(projectName string, p *preset.Preset, log logger.Logger) (*PackageDescriptor, error) {
	if log == nil {
		log = logger.Default()
	}
	name := PackageName(projectName)
	if name == "" {
		return nil, fmt.Errorf("project name %q does not produce a valid package name", projectName)
	}

	d := &PackageDescriptor{
		Name:            name,
		Version:         InitialVersion,
		Private:         true,
		DevDependencies: make(map[string]string, p.Plugins.Len()),
	}
	for _, entry := range p.Plugins.Entries() {
		version, err := pluginVersion(entry)
		if err != nil {
			return nil, err
		}
		if looksLikeRange(version) {
			if _, err := semver.NewConstraint(version); err != nil {
				log.Warn("plugin version is not a valid semver range",
					logger.F("plugin", entry.ID),
					logger.F("version", version),
					logger.F("error", err))
			}
		}
		d.DevDependencies[entry.ID] = version
	}
	return d, nil
}

// PackageName turns a project name into an npm-compatible package name.
// Scoped names keep their scope.
func PackageName(projectName string) string {
	projectName = strings.TrimSpace(projectName)
	if scope, rest, ok := strings.Cut(projectName, "/"); ok && strings.HasPrefix(scope, "@") {
		s, r := slug.Make(strings.TrimPrefix(scope, "@")), slug.Make(rest)
		if s == "" || r == "" {
			return ""
		}
		return "@" + s + "/" + r
	}
	return slug.Make(projectName)
}

func pluginVersion(entry preset.Entry) (string, error) {
	raw, ok := entry.Options["version"]
	if !ok || raw == nil {
		return LatestVersion, nil
	}
	version, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("plugin %s: version must be a string, got %T", entry.ID, raw)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return LatestVersion, nil
	}
	return version, nil
}

// looksLikeRange reports whether version reads as a semver range rather than
// a dist-tag, alias, git spec or path.
func looksLikeRange(version string) bool {
	return version != "" && strings.ContainsRune("0123456789^~<>=*", rune(version[0]))
}

// Fields returns the descriptor as package.json fields.
func (d *PackageDescriptor) Fields() map[string]any {
	deps := make(map[string]any, len(d.DevDependencies))
	for id, v := range d.DevDependencies {
		deps[id] = v
	}
	return map[string]any{
		"name":            d.Name,
		"version":         d.Version,
		"private":         d.Private,
		"devDependencies": deps,
	}
}

