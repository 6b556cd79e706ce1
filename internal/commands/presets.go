package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/hatch/internal/preset"
	"github.com/simonhull/firebird-suite/hatch/internal/resolver"
)

// PresetsCmd creates and returns the 'presets' command
func PresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			registry := preset.NewRegistry(rc.Presets())
			for _, name := range registry.Names() {
				p, _ := registry.Get(name)
				fmt.Fprintln(out, resolver.Label(name, p))
			}
			if saved := rc.PresetNames(); len(saved) > 0 {
				fmt.Fprintf(out, "\nSaved in %s: %s\n", rc.File(), strings.Join(saved, ", "))
			}
			return nil
		},
	}
}

// PluginsCmd creates and returns the 'plugins' command
func PluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List plugins that ship a generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := generators()
			if err != nil {
				return err
			}
			for _, id := range r.List() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
