package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/merge"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// Config wires an Engine.
type Config struct {
	Root     string
	Package  map[string]any
	Plugins  []Plugin
	Preset   *preset.Preset
	Renderer *Renderer
	Logger   logger.Logger
}

// Options controls one Generate run.
type Options struct {
	ExtractConfigFiles bool
	DryRun             bool
	Writer             io.Writer // Where written files are reported (defaults to os.Stdout)
}

// Engine applies plugins to an in-memory project and flushes it to disk.
type Engine struct {
	root     string
	pkg      map[string]any
	plugins  []Plugin
	ids      map[string]bool
	preset   *preset.Preset
	files    *FileTree
	renderer *Renderer
	log      logger.Logger
}

// NewEngine creates an engine. The initial package fields are copied.
func NewEngine(cfg Config) *Engine {
	if cfg.Renderer == nil {
		cfg.Renderer = NewRenderer()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Preset == nil {
		cfg.Preset = &preset.Preset{}
	}

	ids := make(map[string]bool, len(cfg.Plugins))
	for _, p := range cfg.Plugins {
		ids[p.ID] = true
	}

	pkg := merge.CloneMap(cfg.Package)
	if pkg == nil {
		pkg = map[string]any{}
	}

	return &Engine{
		root:     cfg.Root,
		pkg:      pkg,
		plugins:  cfg.Plugins,
		ids:      ids,
		preset:   cfg.Preset,
		files:    NewFileTree(),
		renderer: cfg.Renderer,
		log:      cfg.Logger,
	}
}

// Generate applies every plugin, optionally extracts config files, then
// flushes the project to disk.
func (e *Engine) Generate(ctx context.Context, opts Options) error {
	if err := e.Apply(ctx); err != nil {
		return err
	}
	if opts.ExtractConfigFiles {
		e.ExtractConfig()
	}
	return e.Flush(ctx, opts)
}

// Apply runs the plugins' generators in order. The first failure stops the
// run; later plugins are not invoked.
func (e *Engine) Apply(ctx context.Context) error {
	for _, p := range e.plugins {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.log.Debug("applying plugin", logger.F("plugin", p.ID))
		if err := e.applyOne(p); err != nil {
			e.log.Error("plugin failed", logger.F("plugin", p.ID), logger.F("error", err))
			return &PluginApplyError{PluginID: p.ID, Err: err}
		}
	}
	return nil
}

func (e *Engine) applyOne(p Plugin) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	gen := p.Generator
	if gen == nil {
		gen = Noop
	}
	options := p.Options
	if options == nil {
		options = preset.Options{}
	}
	return gen.Apply(&API{id: p.ID, engine: e}, options, e.preset)
}

// Flush encodes package.json and writes every file under the project root.
func (e *Engine) Flush(ctx context.Context, opts Options) error {
	if e.root == "" {
		return fmt.Errorf("project root is not set")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	pkg, err := pkgjson.Encode(e.pkg)
	if err != nil {
		return fmt.Errorf("encoding package.json: %w", err)
	}

	type staged struct {
		rel     string
		content []byte
	}
	files := []staged{{rel: PackageFile, content: pkg}}
	for _, rel := range e.files.SortedPaths() {
		content, _, err := e.files.Text(rel)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", rel, err)
		}
		files = append(files, staged{rel: rel, content: content})
	}

	if opts.DryRun {
		for _, f := range files {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] Create %s (%d bytes)\n", f.rel, len(f.content))
		}
		return nil
	}

	tx := NewTransaction()
	for _, f := range files {
		tx.AddFile(filepath.Join(e.root, filepath.FromSlash(f.rel)), f.content, 0o644)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for _, f := range files {
		fmt.Fprintf(opts.Writer, "✓ Create %s (%d bytes)\n", f.rel, len(f.content))
	}
	e.log.Debug("project files written", logger.F("count", len(files)), logger.F("root", e.root))
	return nil
}

// Package returns a copy of the package fields.
func (e *Engine) Package() map[string]any {
	return merge.CloneMap(e.pkg)
}

// Files returns the in-memory file tree.
func (e *Engine) Files() *FileTree {
	return e.files
}

func (e *Engine) hasPlugin(id string) bool {
	return e.ids[id]
}
