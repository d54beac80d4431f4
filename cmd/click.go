package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click an image or region",
	Long:  "Click the center of the target, or --offset pixels away from it. Exits non-zero when the target is not found.",
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	addTargetFlags(clickCmd, "")
	clickCmd.Flags().Bool("double", false, "Double-click")
	clickCmd.Flags().Bool("right", false, "Right-click")
}

func runClick(cmd *cobra.Command, args []string) error {
	double, _ := cmd.Flags().GetBool("double")
	right, _ := cmd.Flags().GetBool("right")
	if double && right {
		return fmt.Errorf("--double and --right are mutually exclusive")
	}
	params := targetParams(cmd, "")
	switch {
	case double:
		params["kind"] = "double"
	case right:
		params["kind"] = "right"
	}
	return runStep("click", params)
}
