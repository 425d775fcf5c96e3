// Package main is the gbp command line interface: subcommands map onto
// the API client's operations, results render to stdout, and both
// transport and API errors exit non-zero through a single path.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gbpcli/src/config"
	"gbpcli/src/gbp"
	"gbpcli/src/logger"
)

var (
	// urlFlag overrides the configured publisher URL.
	urlFlag string
	// client is built once in PersistentPreRun and shared by every
	// subcommand.
	client *gbp.Client
)

var rootCmd = &cobra.Command{
	Use:   "gbp",
	Short: "Command line interface for the build publisher",
	Long: `gbp talks to a build-publisher service over its GraphQL API:
list machines and builds, inspect and diff builds, fetch logs, and
publish, keep, tag or schedule builds.

The publisher URL comes from the BUILD_PUBLISHER_URL environment
variable (default https://gbp/) or the --url flag.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		url := config.MustLoad().URL
		if urlFlag != "" {
			url = urlFlag
		}

		// Full-screen and stdio-protocol commands must keep stderr quiet.
		log := logger.New()
		switch cmd.Name() {
		case "browse", "mcp":
			log = logger.Nop()
		}

		client = gbp.New(url, log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "build publisher URL (overrides BUILD_PUBLISHER_URL)")

	rootCmd.AddCommand(
		machinesCmd,
		listCmd,
		latestCmd,
		statusCmd,
		diffCmd,
		logsCmd,
		publishCmd,
		buildCmd,
		packagesCmd,
		keepCmd,
		releaseCmd,
		tagCmd,
		pullCmd,
		browseCmd,
		mcpCmd,
	)

	tagCmd.Flags().BoolP("remove", "r", false, "remove the tag from the machine")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
