package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/firebird-suite/hatch/internal/commands"
	"github.com/simonhull/firebird-suite/hatch/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()
	rootCmd.AddCommand(commands.CreateCmd())
	rootCmd.AddCommand(commands.PresetsCmd())
	rootCmd.AddCommand(commands.PluginsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error(err.Error())
		if hint := commands.Hint(err); hint != "" {
			output.Info(hint)
		}
		stop()
		os.Exit(1)
	}
}
