// Command simplex is a dvtm-style terminal multiplexer: tagged windows,
// a tiled master/stack layout, truecolor passthrough, and a vi-style
// copy mode over per-window scrollback.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheLudd/simplex/internal/app"
)

func main() {
	var (
		shellFlag   string
		logFileFlag string
	)

	cmd := &cobra.Command{
		Use:   "simplex",
		Short: "A dvtm-style terminal multiplexer",
		Long: `simplex multiplexes several shells inside one terminal, tiled in a
master/stack layout, with dvtm-style numeric tags for grouping windows
into views, full 24-bit color passthrough, and a vi-style copy mode
over per-window scrollback.

Prefix key is Ctrl+B; press it then c to spawn a window, q to quit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Options{Shell: shellFlag, LogFile: logFileFlag})
			if err != nil {
				return err
			}
			return a.Run()
		},
	}

	cmd.Flags().StringVar(&shellFlag, "shell", "", "shell to spawn (default: $SHELL)")
	cmd.Flags().StringVar(&logFileFlag, "log-file", "", "log file path (default: $TMPDIR/simplex-<pid>.log)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "simplex:", err)
		os.Exit(1)
	}
}
