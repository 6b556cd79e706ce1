// Package creator runs the create workflow: resolve a preset, lay down a
// minimal package.json, install, apply plugin generators, install again
// and write the README.
package creator

import (
	"context"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/hatch/internal/exec"
	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/output"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgmanager"
	"github.com/simonhull/firebird-suite/hatch/internal/plugin"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
	"github.com/simonhull/firebird-suite/hatch/internal/project"
	"github.com/simonhull/firebird-suite/hatch/internal/promptapi"
	"github.com/simonhull/firebird-suite/hatch/internal/promptmodules"
	"github.com/simonhull/firebird-suite/hatch/internal/readme"
	"github.com/simonhull/firebird-suite/hatch/internal/resolver"
)

const readmeFile = "README.md"

// Deps are the collaborators of a Creator. Nil fields get defaults.
type Deps struct {
	Presets    *preset.Registry
	Generators *plugin.Registry
	Modules    []promptmodules.Module
	Asker      input.Asker
	Saver      resolver.PresetSaver
	Runner     exec.Runner
	HasGit     func() bool
	Logger     logger.Logger
	Out        io.Writer
}

// Result describes a finished run.
type Result struct {
	Dir      string
	Preset   *preset.Preset
	Package  map[string]any
	Warnings []*plugin.ResolutionWarning
}

// Creator creates one project.
type Creator struct {
	opts     Options
	deps     Deps
	resolver *resolver.Resolver
	pm       *pkgmanager.Manager
	log      logger.Logger
}

// New validates opts and prepares the prompt session: the resolver's
// prompts are registered first so modules can inject into them.
func New(opts Options, deps Deps) (*Creator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if deps.Presets == nil {
		deps.Presets = preset.NewRegistry(nil)
	}
	if deps.Generators == nil {
		deps.Generators = plugin.NewRegistry()
	}
	if deps.Modules == nil {
		deps.Modules = promptmodules.Defaults()
	}
	if deps.HasGit == nil {
		deps.HasGit = project.HasGit
	}
	if deps.Logger == nil {
		deps.Logger = logger.Default()
	}
	if deps.Out == nil {
		deps.Out = output.Stdout()
	}
	if deps.Runner == nil {
		stdout := io.Writer(io.Discard)
		if output.IsVerbose() {
			stdout = exec.NewPrefixWriter(deps.Out, "  │ ")
		}
		deps.Runner = exec.NewExecutor(&exec.Options{Dir: opts.Dir, Stdout: stdout})
	}

	session := promptapi.NewSession(deps.Logger)
	r, err := resolver.New(resolver.Config{
		Registry: deps.Presets,
		Session:  session,
		Asker:    deps.Asker,
		Saver:    deps.Saver,
		Logger:   deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := promptmodules.Apply(session, deps.Modules); err != nil {
		return nil, err
	}

	pm, err := pkgmanager.New(opts.PackageManager, opts.Dir, opts.Registry,
		pkgmanager.WithRunner(deps.Runner),
		pkgmanager.WithVerbose(output.IsVerbose()),
		pkgmanager.WithLogger(deps.Logger),
	)
	if err != nil {
		return nil, err
	}

	return &Creator{opts: opts, deps: deps, resolver: r, pm: pm, log: deps.Logger}, nil
}

// Create runs the workflow. Errors are returned as produced by the failing
// step; earlier steps are not undone.
func (c *Creator) Create(ctx context.Context) (*Result, error) {
	p, err := c.resolvePreset(ctx)
	if err != nil {
		return nil, err
	}
	c.log.Info("creating project",
		logger.F("name", c.opts.Name),
		logger.F("dir", c.opts.Dir),
		logger.F("plugins", p.Plugins.Len()))

	fmt.Fprintf(c.deps.Out, "✨ Creating project in %s.\n", output.Accent(c.opts.Dir))

	descriptor, err := pkgjson.FromPreset(c.opts.Name, p, c.log)
	if err != nil {
		return nil, err
	}
	if !c.opts.DryRun {
		if err := project.EnsureTarget(c.opts.Dir, c.opts.Force); err != nil {
			return nil, err
		}
	}
	if err := c.writeFile(ctx, generator.PackageFile, descriptor.Fields()); err != nil {
		return nil, err
	}

	if c.shouldInitGit() {
		output.Info("Initializing git repository...")
		if err := c.pm.InitGit(ctx); err != nil {
			return nil, err
		}
	}

	if err := c.install(ctx); err != nil {
		return nil, err
	}

	output.Info("Invoking generators...")
	loader := plugin.NewLoader(c.deps.Generators, c.log)
	plugins := loader.Resolve(p.Plugins)
	for _, w := range loader.Warnings() {
		output.Warn(w.Error())
	}

	engine := generator.NewEngine(generator.Config{
		Root:    c.opts.Dir,
		Package: descriptor.Fields(),
		Plugins: plugins,
		Preset:  p,
		Logger:  c.log,
	})
	if err := engine.Generate(ctx, generator.Options{
		ExtractConfigFiles: p.UseConfigFiles,
		DryRun:             c.opts.DryRun,
		Writer:             c.deps.Out,
	}); err != nil {
		return nil, err
	}

	if err := c.install(ctx); err != nil {
		return nil, err
	}

	pkg := engine.Package()
	if !engine.Files().Has(readmeFile) {
		output.Info("Generating README.md...")
		content, err := readme.Generate(pkg, c.pm.Name)
		if err != nil {
			return nil, err
		}
		if err := generator.WriteFileTree(ctx, c.opts.Dir, map[string][]byte{readmeFile: content}, generator.ExecuteOptions{
			DryRun: c.opts.DryRun,
			Force:  c.opts.Force,
			Writer: c.deps.Out,
		}); err != nil {
			return nil, err
		}
	}

	c.finished()
	return &Result{Dir: c.opts.Dir, Preset: p, Package: pkg, Warnings: loader.Warnings()}, nil
}

func (c *Creator) resolvePreset(ctx context.Context) (*preset.Preset, error) {
	if c.opts.Preset != "" {
		return c.resolver.ResolveNamed(c.opts.Preset, c.opts.Name)
	}
	return c.resolver.Resolve(ctx, c.opts.Name)
}

func (c *Creator) writeFile(ctx context.Context, name string, fields map[string]any) error {
	content, err := pkgjson.Encode(fields)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return generator.WriteFileTree(ctx, c.opts.Dir, map[string][]byte{name: content}, generator.ExecuteOptions{
		DryRun: c.opts.DryRun,
		Force:  true,
		Writer: c.deps.Out,
	})
}

func (c *Creator) shouldInitGit() bool {
	if c.opts.SkipGit || c.opts.DryRun {
		return false
	}
	return c.deps.HasGit() && !project.IsGitRepo(c.opts.Dir)
}

func (c *Creator) install(ctx context.Context) error {
	if c.opts.SkipInstall || c.opts.DryRun {
		c.log.Debug("skipping install", logger.F("dryRun", c.opts.DryRun))
		return nil
	}
	output.Info(fmt.Sprintf("Installing dependencies with %s...", c.pm.Name))
	return c.pm.Install(ctx)
}

func (c *Creator) finished() {
	fmt.Fprintln(c.deps.Out)
	output.Success("Successfully created project " + output.Accent(c.opts.Name) + ".")
	output.Step("Get started with the following commands:")
	fmt.Fprintln(c.deps.Out)
	output.Step("cd " + c.opts.Name)
	output.Step(c.pm.RunScriptCommand("serve"))
}
