package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/ergochat/readline"
	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceReader struct {
	lines []string
	err   error
}

func (r *sliceReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestParseREPLLine(t *testing.T) {
	step, err := parseREPLLine("has: { image: ok.png, timeout: 2 }")
	require.NoError(t, err)
	assert.Equal(t, "ok.png", step["has"]["image"])
	assert.Equal(t, 2, step["has"]["timeout"])

	step, err = parseREPLLine("sleep:")
	require.NoError(t, err)
	assert.NotNil(t, step["sleep"])

	step, err = parseREPLLine("sleep")
	require.NoError(t, err)
	assert.Contains(t, step, "sleep")

	_, err = parseREPLLine("has: [")
	assert.Error(t, err)
	_, err = parseREPLLine("{has: {}, click: {}}")
	assert.Error(t, err)
}

func newREPLSession(t *testing.T, responses ...string) (*sikuli.Session, *cliRuntime, *bytes.Buffer) {
	t.Helper()
	rt := &cliRuntime{responses: responses}
	session, err := sikuli.NewSession(rt)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	var buf bytes.Buffer
	oldOut, oldFormat := output.Stdout, output.OutputFormat
	output.Stdout, output.OutputFormat = &buf, output.FormatYAML
	t.Cleanup(func() { output.Stdout, output.OutputFormat = oldOut, oldFormat })
	return session, rt, &buf
}

func TestREPLLoop(t *testing.T) {
	session, rt, buf := newREPLSession(t, "SIKULI#: YES", "SIKULI#: NO")
	var remembered []string

	err := replLoop(session, &sliceReader{lines: []string{
		"",
		"# comment",
		"has: { image: ok.png }",
		"click: { image: ok.png }",
		"has: [",
		"exit",
		"has: { image: never.png }",
	}}, func(line string) { remembered = append(remembered, line) })
	require.NoError(t, err)

	assert.Len(t, rt.scripts, 2)
	assert.Equal(t, []string{"has: { image: ok.png }", "click: { image: ok.png }", "has: [", "exit"}, remembered)
	out := buf.String()
	assert.Contains(t, out, "action: has")
	assert.Contains(t, out, "error: target not found")
	assert.Contains(t, out, "invalid step")
}

func TestREPLLoop_InterruptEndsQuietly(t *testing.T) {
	session, _, _ := newREPLSession(t)
	err := replLoop(session, &sliceReader{err: readline.ErrInterrupt}, nil)
	assert.NoError(t, err)
}

func TestREPLLoop_ReadError(t *testing.T) {
	session, _, _ := newREPLSession(t)
	err := replLoop(session, &sliceReader{err: io.ErrUnexpectedEOF}, nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
