package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/hatch/internal/creator"
	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/output"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

type createFlags struct {
	preset         string
	useDefault     bool
	packageManager string
	registry       string
	skipGit        bool
	skipInstall    bool
	force          bool
	dryRun         bool
}

// CreateCmd creates and returns the 'create' command
func CreateCmd() *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:   "create <app-name>",
		Short: "Create a new project",
		Long: `Creates a new project:
• Resolves a preset (interactively, or with --preset / --default)
• Writes package.json and installs the plugins
• Runs each plugin's generator
• Installs again and writes README.md

Use "." as the app name to create the project in the current directory.

Example:
  hatch create my-app
  hatch create my-app --default --package-manager pnpm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.preset, "preset", "p", "", "Skip prompts and use a saved or built-in preset")
	f.BoolVarP(&flags.useDefault, "default", "d", false, "Skip prompts and use the default preset")
	f.StringVarP(&flags.packageManager, "package-manager", "m", "", "Package manager to use (npm, yarn, pnpm)")
	f.StringVarP(&flags.registry, "registry", "r", "", "Package registry URL")
	f.BoolVarP(&flags.skipGit, "skip-git", "n", false, "Skip git initialization")
	f.BoolVar(&flags.skipInstall, "skip-install", false, "Skip dependency installation")
	f.BoolVarP(&flags.force, "force", "f", false, "Write into a non-empty target directory")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Show what would be written without touching disk")
	cmd.MarkFlagsMutuallyExclusive("preset", "default")

	return cmd
}

func runCreate(cmd *cobra.Command, arg string, flags createFlags) error {
	name, dir, err := target(arg)
	if err != nil {
		return err
	}
	output.Verbose(fmt.Sprintf("Creating project %s in %s", name, dir))

	rc, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	settings := rc.Settings()

	opts := creator.Options{
		Name:           name,
		Dir:            dir,
		Preset:         flags.preset,
		PackageManager: flags.packageManager,
		Registry:       flags.registry,
		SkipGit:        flags.skipGit,
		SkipInstall:    flags.skipInstall,
		Force:          flags.force,
		DryRun:         flags.dryRun,
	}
	if flags.useDefault {
		opts.Preset = preset.DefaultVue3
	}
	if opts.PackageManager == "" {
		opts.PackageManager = settings.PackageManager
	}
	if opts.Registry == "" {
		opts.Registry = settings.Registry
	}

	gens, err := generators()
	if err != nil {
		return err
	}

	deps := creator.Deps{
		Presets:    preset.NewRegistry(rc.Presets()),
		Generators: gens,
		Saver:      rc,
		Logger:     logger.Default(),
		Out:        cmd.OutOrStdout(),
	}
	if asker := input.NewTerminalAsker(); asker.Interactive() {
		deps.Asker = asker
	}

	c, err := creator.New(opts, deps)
	if err != nil {
		return err
	}
	_, err = c.Create(cmd.Context())
	return err
}

// target resolves the app-name argument to a project name and directory.
func target(arg string) (name, dir string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	if arg == "." {
		return filepath.Base(cwd), cwd, nil
	}
	return arg, filepath.Join(cwd, arg), nil
}
