// Command dot serves the example application and inspects its persisted
// state.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dot/internal/config"
	"github.com/vango-dev/dot/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌┬┐
   │││ │ │
  ─┴┘└─┘ ┴
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "dot",
		Short: "A minimal single-page application runtime for Go",
		Long: `Dot turns declarative UI trees into a live DOM.

Features include:

  • Declarative tree construction and full remount
  • Delegated events, one listener per event type
  • Reactive stores with durable snapshots
  • Hash routing with parameters and link interception`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: dot.json or dot.yaml in the project root)")

	rootCmd.AddCommand(
		serveCmd(flags),
		storeCmd(flags),
		routesCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig loads the file named by --config, or the project's config
// file. Callers validate after applying their flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// printBanner prints the Dot ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
