package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/steps"
	"github.com/spf13/cobra"
)

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple actions in a batch",
	Long: `Execute a sequence of actions from a YAML list on stdin, all on one
interpreter session.

Each step is an action name with its parameters as a map. Steps execute
sequentially, and by default execution stops on the first error.

Supported step types: ` + steps.Supported + `

Example:
  sikuli-cli do <<'EOF'
  - wait: { image: login.png, timeout: 10 }
  - click: { image: username.png, offset: "40,0" }
  - drag: { from: { image: file.png }, to: { region: "800,600,100,100" } }
  - highlight: { focused-window: true, seconds: 1, color: green }
  EOF`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

// stdin is read by do and repl. Tests replace it.
var stdin io.Reader = os.Stdin

func runDo(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no steps provided on stdin; pipe a YAML list of actions")
	}
	batch, err := steps.ParseSteps(data)
	if err != nil {
		return err
	}

	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(session)

	result := steps.RunBatch(session, batch, stopOnError)
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("batch failed: %d of %d steps completed", result.Completed, result.Steps)
	}
	return nil
}
