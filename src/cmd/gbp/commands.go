package main

import (
	"github.com/spf13/cobra"

	"gbpcli/src/mcp"
	"gbpcli/src/tui"
)

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List machines with their build counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMachines(cmd.Context(), client, cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list MACHINE",
	Short: "List builds for a machine, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), client, cmd.OutOrStdout(), args[0])
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest MACHINE",
	Short: "Show the latest build number for a machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLatest(cmd.Context(), client, cmd.OutOrStdout(), args[0])
	},
}

var statusCmd = &cobra.Command{
	Use:   "status MACHINE [NUMBER]",
	Short: "Show a build's metadata (latest build when NUMBER is omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context(), client, cmd.OutOrStdout(), args[0], numberArg(args))
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff MACHINE LEFT RIGHT",
	Short: "Show the differences between two builds",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiff(cmd.Context(), client, cmd.OutOrStdout(), args[0], args[1], args[2])
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs MACHINE NUMBER",
	Short: "Print a build's logs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogs(cmd.Context(), client, cmd.OutOrStdout(), args[0], args[1])
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish MACHINE [NUMBER]",
	Short: "Publish a build (latest build when NUMBER is omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPublish(cmd.Context(), client, args[0], numberArg(args))
	},
}

var buildCmd = &cobra.Command{
	Use:   "build MACHINE",
	Short: "Schedule a build for a machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScheduleBuild(cmd.Context(), client, cmd.OutOrStdout(), args[0])
	},
}

var packagesCmd = &cobra.Command{
	Use:   "packages MACHINE NUMBER",
	Short: "List the packages in a build",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPackages(cmd.Context(), client, cmd.OutOrStdout(), args[0], args[1])
	},
}

var keepCmd = &cobra.Command{
	Use:   "keep MACHINE NUMBER",
	Short: "Mark a build as kept so it is never garbage-collected",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeep(cmd.Context(), client, args[0], args[1])
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release MACHINE NUMBER",
	Short: "Clear a build's keep flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd.Context(), client, args[0], args[1])
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag MACHINE [NUMBER] TAG",
	Short: "Tag a build, or remove a tag with --remove",
	Long: `Tag points the named tag at a build. Without NUMBER the latest
build is tagged. With --remove the tag is removed from the machine;
a build number must not be given in that case.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		remove, _ := cmd.Flags().GetBool("remove")
		return runTag(cmd.Context(), client, args, remove)
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull MACHINE NUMBER",
	Short: "Pull a build from the publisher's upstream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPull(cmd.Context(), client, args[0], args[1])
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse machines and builds interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Start(client)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve build-publisher tools over the Model Context Protocol on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.NewServer(client).Run()
	},
}

// numberArg returns the optional second positional argument.
func numberArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
