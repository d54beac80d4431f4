package cmd

import "github.com/spf13/cobra"

var hoverCmd = &cobra.Command{
	Use:   "hover",
	Short: "Move the mouse over an image or region",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep("hover", targetParams(cmd, ""))
	},
}

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Outline a region on screen",
	Long:  "Draw an outline around a region. Without --seconds the outline toggles on until highlighted again.",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := targetParams(cmd, "")
		params["seconds"], _ = cmd.Flags().GetFloat64("seconds")
		params["color"], _ = cmd.Flags().GetString("color")
		return runStep("highlight", params)
	},
}

func init() {
	rootCmd.AddCommand(hoverCmd)
	addTargetFlags(hoverCmd, "")

	rootCmd.AddCommand(highlightCmd)
	addRegionFlags(highlightCmd, "")
	highlightCmd.Flags().Float64("seconds", 0, "Seconds to keep the outline")
	highlightCmd.Flags().String("color", "", "Outline color name (e.g. red, green)")
}
