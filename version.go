// Package hatch scaffolds JavaScript projects from presets of generator plugins.
package hatch

// Version is the hatch CLI version.
const Version = "0.1.0"
