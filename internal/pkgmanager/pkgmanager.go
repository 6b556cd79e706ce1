// Package pkgmanager drives npm, yarn or pnpm and git inside a project
// directory.
package pkgmanager

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/simonhull/firebird-suite/hatch/internal/exec"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
)

// Supported package managers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
)

// Names lists the supported package managers.
var Names = []string{NPM, Yarn, PNPM}

// Error reports a failed external command.
type Error struct {
	Command string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Manager runs package-manager and git commands in Dir.
type Manager struct {
	Name     string
	Dir      string
	Registry string

	runner  exec.Runner
	verbose bool
	log     logger.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithRunner replaces the command runner.
func WithRunner(r exec.Runner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithVerbose streams command output instead of showing a spinner.
func WithVerbose(verbose bool) Option {
	return func(m *Manager) { m.verbose = verbose }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// New creates a manager for name in dir. An empty name selects npm.
func New(name, dir, registry string, opts ...Option) (*Manager, error) {
	if name == "" {
		name = NPM
	}
	if !Supported(name) {
		return nil, fmt.Errorf("unsupported package manager %q (want one of %s)", name, strings.Join(Names, ", "))
	}

	m := &Manager{Name: name, Dir: dir, Registry: registry}
	for _, opt := range opts {
		opt(m)
	}
	if m.runner == nil {
		m.runner = exec.NewExecutor(&exec.Options{Dir: dir})
	}
	if m.log == nil {
		m.log = logger.Default()
	}
	return m, nil
}

// Supported reports whether name is a known package manager.
func Supported(name string) bool {
	return slices.Contains(Names, name)
}

// InstallArgs returns the install command line, without the binary name.
func (m *Manager) InstallArgs() []string {
	args := []string{"install"}
	if m.Name == NPM {
		args = append(args, "--loglevel", "error")
	}
	if m.Registry != "" {
		args = append(args, "--registry="+m.Registry)
	}
	return args
}

// RunScriptCommand returns how the user runs a package.json script.
func (m *Manager) RunScriptCommand(script string) string {
	if m.Name == NPM {
		return "npm run " + script
	}
	return m.Name + " " + script
}

// Install installs the dependencies listed in package.json. Running it
// again on an installed project is a no-op for the package manager.
func (m *Manager) Install(ctx context.Context) error {
	args := m.InstallArgs()
	m.log.Debug("installing dependencies", logger.F("manager", m.Name), logger.F("dir", m.Dir))
	return m.run(ctx, "Installing dependencies", m.Name, args...)
}

// InitGit initializes a git repository in Dir.
func (m *Manager) InitGit(ctx context.Context) error {
	m.log.Debug("initializing git repository", logger.F("dir", m.Dir))
	return m.run(ctx, "Initializing git repository", "git", "init")
}

func (m *Manager) run(ctx context.Context, message, name string, args ...string) error {
	var err error
	if m.verbose {
		err = m.runner.Run(ctx, name, args...)
	} else {
		err = m.runner.RunWithSpinner(ctx, message, name, args...)
	}
	if err != nil {
		return &Error{Command: strings.Join(append([]string{name}, args...), " "), Err: err}
	}
	return nil
}
