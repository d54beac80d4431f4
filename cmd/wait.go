package cmd

import (
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for an image to appear or vanish",
	Long: `Block until the target appears on screen, or with --vanish until it is gone.
The interpreter is given 1.5x the timeout before the call is abandoned.`,
	RunE: runWait,
}

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Find the best scoring match among several images",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMulti(cmd, "best")
	},
}

var anyCmd = &cobra.Command{
	Use:   "any",
	Short: "Find the first match among several images",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMulti(cmd, "any")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	addTargetFlags(waitCmd, "")
	waitCmd.Flags().Float64("timeout", 3, "Max seconds to wait")
	waitCmd.Flags().Bool("vanish", false, "Wait until the target is NO LONGER visible")

	for _, c := range []*cobra.Command{bestCmd, anyCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringSlice("image", nil, "Image file to search for (repeatable)")
		c.Flags().Float64("similar", sikuli.DefaultSimilarity, "Minimum similarity 0-1")
		c.Flags().Float64("timeout", 0, "Max seconds to wait (0 = search once)")
	}
}

func runWait(cmd *cobra.Command, args []string) error {
	params := targetParams(cmd, "")
	params["timeout"], _ = cmd.Flags().GetFloat64("timeout")
	if vanish, _ := cmd.Flags().GetBool("vanish"); vanish {
		params["vanish"] = true
	}
	return runStep("wait", params)
}

func runMulti(cmd *cobra.Command, action string) error {
	images, _ := cmd.Flags().GetStringSlice("image")
	params := map[string]interface{}{"images": images}
	params["timeout"], _ = cmd.Flags().GetFloat64("timeout")
	if f := cmd.Flags().Lookup("similar"); f.Changed {
		params["similar"], _ = cmd.Flags().GetFloat64("similar")
	}
	return runStep(action, params)
}
