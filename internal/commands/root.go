package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/hatch"
	"github.com/simonhull/firebird-suite/hatch/internal/config"
	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/output"
	"github.com/simonhull/firebird-suite/hatch/internal/plugin"
	"github.com/simonhull/firebird-suite/hatch/internal/plugins"
	"github.com/simonhull/firebird-suite/hatch/internal/resolver"
)

// RootCmd creates and returns the root command for the hatch CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Scaffold front-end projects from presets",
		Long: `hatch creates a project from a preset: a named bundle of plugins and
their options. Pick a built-in preset, one you saved earlier, or select
features by hand.

Example:
  hatch create my-app`,
		Version:       hatch.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			level := logger.LevelWarn
			if verbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.NewLogger(level, os.Stderr))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Path to the rc file (default $HATCH_CONFIG or ~/.hatchrc.yml)")

	return cmd
}

// Hint returns a follow-up suggestion for err, or "".
func Hint(err error) string {
	var unsupported *resolver.UnsupportedPresetError
	var schemaErr *config.SchemaError
	switch {
	case errors.As(err, &unsupported):
		return "Run 'hatch presets' to see the available presets."
	case errors.Is(err, input.ErrNotInteractive):
		return "No terminal attached. Pass --preset <name> or --default."
	case errors.Is(err, input.ErrAborted):
		return "Aborted. Nothing was written."
	case errors.As(err, &schemaErr):
		return "Fix the rc file or point --config at another one."
	}
	return ""
}

func loadConfig(cmd *cobra.Command) (*config.RC, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(config.Path(path))
}

func generators() (*plugin.Registry, error) {
	r := plugin.NewRegistry()
	if err := plugins.Register(r); err != nil {
		return nil, err
	}
	return r, nil
}
