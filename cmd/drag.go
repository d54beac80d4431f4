package cmd

import "github.com/spf13/cobra"

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag from one target and drop on another",
	Long: `Drag from the --from-* target and drop on the --to-* target, e.g.

  sikuli-cli drag --from-image file.png --to-region 800,600,100,100`,
	RunE: runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	addTargetFlags(dragCmd, "from-")
	addTargetFlags(dragCmd, "to-")
}

func runDrag(cmd *cobra.Command, args []string) error {
	return runStep("drag", map[string]interface{}{
		"from": targetParams(cmd, "from-"),
		"to":   targetParams(cmd, "to-"),
	})
}
