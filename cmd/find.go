package cmd

import (
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find an image on screen",
	Long: `Search the screen once for an image and print the match bounds, score, and
center. With --all every match is returned. Exits non-zero when nothing matches.`,
	RunE: runFind,
}

var existsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Print the match of an image if it appears within the timeout",
	Long:  "Like wait, but a missing image is reported as found: false instead of an error.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPresenceQuery(cmd, "exists")
	},
}

var hasCmd = &cobra.Command{
	Use:   "has",
	Short: "Report whether an image appears within the timeout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPresenceQuery(cmd, "has")
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	addTargetFlags(findCmd, "")
	findCmd.Flags().Bool("all", false, "Return every match")

	for _, c := range []*cobra.Command{existsCmd, hasCmd} {
		rootCmd.AddCommand(c)
		addTargetFlags(c, "")
		c.Flags().Float64("timeout", 0, "Max seconds to wait (0 = check once)")
	}
}

func runFind(cmd *cobra.Command, args []string) error {
	params := targetParams(cmd, "")
	if all, _ := cmd.Flags().GetBool("all"); all {
		params["all"] = true
	}
	return runStep("find", params)
}

func runPresenceQuery(cmd *cobra.Command, action string) error {
	params := targetParams(cmd, "")
	params["timeout"], _ = cmd.Flags().GetFloat64("timeout")
	return runStep(action, params)
}
