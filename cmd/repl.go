package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/mj1618/sikuli-cli/internal/steps"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	replPrompt       = "sikuli> "
	replHistoryFile  = ".sikuli-cli_history"
	replHistoryLimit = 500
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run steps interactively on one interpreter session",
	Long: `Read one step per line and run it immediately, keeping the interpreter
warm between steps. Lines use the same syntax as a do step:

  sikuli> has: { image: ok.png, timeout: 2 }
  sikuli> click: { image: ok.png }
  sikuli> exit`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("no-history", false, "Do not read or write the history file")
}

// lineReader is the part of readline the loop needs.
type lineReader interface {
	Readline() (string, error)
}

// scannerReader reads lines when stdin is not a terminal.
type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) Readline() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	noHistory, _ := cmd.Flags().GetBool("no-history")

	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(session)

	var historyPath string
	if home, err := os.UserHomeDir(); err == nil && !noHistory {
		historyPath = filepath.Join(home, replHistoryFile)
	}
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:                 replPrompt,
		HistoryFile:            historyPath,
		HistoryLimit:           replHistoryLimit,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		logger.Debug("readline unavailable, reading plain lines", zap.Error(err))
		return replLoop(session, &scannerReader{scanner: bufio.NewScanner(stdin)}, nil)
	}
	defer rl.Close()
	return replLoop(session, rl, func(line string) { rl.SaveToHistory(line) })
}

// replLoop runs lines until EOF, interrupt, or exit. Step failures are
// printed and do not end the loop.
func replLoop(session *sikuli.Session, rl lineReader, remember func(string)) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if remember != nil {
			remember(line)
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		step, err := parseREPLLine(line)
		if err != nil {
			if perr := output.Print(steps.Result{Action: "repl", Error: err.Error()}); perr != nil {
				return perr
			}
			continue
		}
		for action, params := range step {
			result, err := steps.Execute(session, action, params)
			result.OK = err == nil
			if err != nil {
				result.Error = err.Error()
			}
			if perr := output.Print(result); perr != nil {
				return perr
			}
		}
	}
}

// parseREPLLine accepts "action: {params}" or a bare action name.
func parseREPLLine(line string) (steps.Step, error) {
	if !strings.Contains(line, ":") {
		return steps.Step{line: {}}, nil
	}
	var step steps.Step
	if err := yaml.Unmarshal([]byte(line), &step); err != nil {
		return nil, fmt.Errorf("invalid step: %w", err)
	}
	if len(step) != 1 {
		return nil, fmt.Errorf("expected exactly one action, got %d", len(step))
	}
	for action, params := range step {
		if params == nil {
			step[action] = map[string]interface{}{}
		}
	}
	return step, nil
}
