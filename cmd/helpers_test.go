package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/sikuli-cli/internal/config"
	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/platform"
	"github.com/mj1618/sikuli-cli/internal/steps"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const matchToken = "M[20,30 40x20]S:0.9 C:40,40 msec]"

// cliRuntime answers each script with the next queued response.
type cliRuntime struct {
	responses []string
	scripts   []string
	stopped   bool
}

func (r *cliRuntime) Start() error { return nil }
func (r *cliRuntime) Stop() error  { r.stopped = true; return nil }

func (r *cliRuntime) Run(script, _ string, _ time.Duration) (string, error) {
	r.scripts = append(r.scripts, script)
	if len(r.responses) == 0 {
		return "", errors.New("no response queued")
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp, nil
}

// withFakeRuntime points the provider at a cliRuntime and isolates config
// lookup from the developer's machine.
func withFakeRuntime(t *testing.T, responses ...string) *cliRuntime {
	t.Helper()
	rt := &cliRuntime{responses: responses}
	orig := platform.NewProviderFunc
	platform.NewProviderFunc = func(*config.Config, *zap.Logger) (*platform.Provider, error) {
		return &platform.Provider{Runtime: rt}, nil
	}
	t.Cleanup(func() { platform.NewProviderFunc = orig })
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return rt
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldFormat, oldPretty := output.Stdout, output.OutputFormat, output.PrettyOutput
	output.Stdout = &buf
	t.Cleanup(func() {
		output.Stdout, output.OutputFormat, output.PrettyOutput = oldOut, oldFormat, oldPretty
	})
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCLI_Find(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: "+matchToken)

	out, err := run(t, "find", "--image", "ok.png", "--similar", "0.9")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: true")
	assert.Contains(t, out, "x: 20")
	assert.Contains(t, rt.scripts[0], `find(Pattern("ok.png").similar(0.9))`)
	assert.True(t, rt.stopped)
}

func TestCLI_FindNotFound(t *testing.T) {
	withFakeRuntime(t, "SIKULI#: None")

	out, err := run(t, "find", "--image", "ok.png")
	assert.ErrorIs(t, err, steps.ErrNotFound)
	assert.Contains(t, out, "found: false")
}

func TestCLI_FindWithoutTarget(t *testing.T) {
	rt := withFakeRuntime(t)

	_, err := run(t, "find")
	assert.ErrorIs(t, err, steps.ErrNoTarget)
	assert.Empty(t, rt.scripts)
}

func TestCLI_WaitVanishJSON(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: YES")

	out, err := run(t, "--format", "json", "wait", "--image", "spinner.png", "--vanish", "--timeout", "2")
	require.NoError(t, err)

	var result steps.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.OK)
	assert.Equal(t, "wait", result.Action)
	assert.Contains(t, rt.scripts[0], "waitVanish(")
	assert.Contains(t, rt.scripts[0], ", 2)")
}

func TestCLI_ExistsMissingIsNotAnError(t *testing.T) {
	withFakeRuntime(t, "SIKULI#: None")

	out, err := run(t, "exists", "--region", "0,0,100,100")
	require.NoError(t, err)
	assert.Contains(t, out, "found: false")
}

func TestCLI_ClickRightWithOffset(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: YES")

	_, err := run(t, "click", "--image", "ok.png", "--right", "--offset", "1,2")
	require.NoError(t, err)
	assert.Contains(t, rt.scripts[0], `rightClick(Pattern("ok.png").similar(0.7).targetOffset(1, 2))`)
}

func TestCLI_ClickConflictingKinds(t *testing.T) {
	rt := withFakeRuntime(t)

	_, err := run(t, "click", "--image", "ok.png", "--right", "--double")
	assert.Error(t, err)
	assert.Empty(t, rt.scripts)
}

func TestCLI_Drag(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: YES")

	_, err := run(t, "drag", "--from-image", "file.png", "--to-region", "800,600,100,100")
	require.NoError(t, err)
	assert.Contains(t, rt.scripts[0], `dragDrop(Pattern("file.png").similar(0.7),Region(800,600,100,100))`)
}

func TestCLI_WaitBest(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: "+matchToken)

	_, err := run(t, "best", "--image", "a.png", "--image", "b.png", "--timeout", "1")
	require.NoError(t, err)
	assert.Contains(t, rt.scripts[0], `waitBest(Pattern("a.png").similar(0.7),Pattern("b.png").similar(0.7), 1)`)
}

func TestCLI_Highlight(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: YES")

	_, err := run(t, "highlight", "--screen", "0", "--seconds", "1.5", "--color", "green")
	require.NoError(t, err)
	assert.Contains(t, rt.scripts[0], "Screen(0).highlight(1.5, 'green')")
}

func TestCLI_UnsupportedFormat(t *testing.T) {
	withFakeRuntime(t)

	_, err := run(t, "--format", "xml", "find", "--image", "ok.png")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestCLI_Do(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: YES", "SIKULI#: "+matchToken)
	old := stdin
	stdin = strings.NewReader(`
- click: { image: ok.png }
- wait: { image: done.png, timeout: 5 }
`)
	defer func() { stdin = old }()

	out, err := run(t, "do")
	require.NoError(t, err)
	assert.Contains(t, out, "completed: 2")
	assert.Len(t, rt.scripts, 2)
}

func TestCLI_DoStopsOnError(t *testing.T) {
	rt := withFakeRuntime(t, "SIKULI#: NO")
	old := stdin
	stdin = strings.NewReader("- click: { image: ok.png }\n- hover: { image: ok.png }\n")
	defer func() { stdin = old }()

	out, err := run(t, "do")
	assert.Error(t, err)
	assert.Contains(t, out, "completed: 0")
	assert.Len(t, rt.scripts, 1)
}

func TestCLI_DoEmptyInput(t *testing.T) {
	withFakeRuntime(t)
	old := stdin
	stdin = strings.NewReader("")
	defer func() { stdin = old }()

	_, err := run(t, "do")
	assert.ErrorContains(t, err, "no steps provided")
}
