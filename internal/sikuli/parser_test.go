package sikuli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMatch = "M[10,20 30x40]@S(0) S:0.95 C:25,40 [12 msec]"

func TestParsePresence(t *testing.T) {
	assert.True(t, ParsePresence(">>> SIKULI#: YES\n"))
	assert.False(t, ParsePresence("SIKULI#: NO"))
	assert.False(t, ParsePresence("[Error] FindFailed: ok.png"))
	assert.False(t, ParsePresence("SIKULI#:YES"))
}

func TestExtractMatches_OrderPreserved(t *testing.T) {
	matches := ExtractMatches("SIKULI#: M[1 msec]xxM[2 msec]yyM[3 msec]")
	require.Len(t, matches, 3)
	assert.Equal(t, "M[1 msec]", matches[0].Raw)
	assert.Equal(t, "M[2 msec]", matches[1].Raw)
	assert.Equal(t, "M[3 msec]", matches[2].Raw)
}

func TestNewMatch_DecodesFields(t *testing.T) {
	m := newMatch(sampleMatch)
	assert.Equal(t, sampleMatch, m.Raw)
	assert.Equal(t, 10, m.X)
	assert.Equal(t, 20, m.Y)
	assert.Equal(t, 30, m.W)
	assert.Equal(t, 40, m.H)
	assert.InDelta(t, 0.95, m.Score, 1e-9)
	assert.Equal(t, 25, m.CenterX)
	assert.Equal(t, 40, m.CenterY)
	assert.Equal(t, sampleMatch, m.String())
}

func TestNewMatch_OpaqueToken(t *testing.T) {
	m := newMatch("M[whatever 7 msec]")
	assert.Equal(t, "M[whatever 7 msec]", m.Raw)
	assert.Zero(t, m.X)
	assert.Zero(t, m.Score)
}

func TestParseValue(t *testing.T) {
	cmd := Command{Action: "exists", Script: "print ..."}

	matches, err := ParseValue(cmd, "SIKULI#: None")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)

	matches, err = ParseValue(cmd, "SIKULI#: "+sampleMatch)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, sampleMatch, matches[0].Raw)
}

func TestParseValue_MissingMarker(t *testing.T) {
	cmd := Command{Action: "find", Script: "print ..."}
	_, err := ParseValue(cmd, "[Error] FindFailed: can not find ok.png\nTraceback ...")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommandFailed))

	var cf *CommandFailedError
	require.True(t, errors.As(err, &cf))
	assert.Equal(t, "find", cf.Command)
	assert.Equal(t, "print ...", cf.Script)
	assert.Equal(t, "[Error] FindFailed: can not find ok.png", cf.Interpreter)
	assert.Contains(t, cf.Error(), "FindFailed")
}

func TestParseValue_MarkerWithoutToken(t *testing.T) {
	matches, err := ParseValue(Command{Action: "findAll"}, "SIKULI#: ")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestParsePatternEcho(t *testing.T) {
	sim, ok := ParsePatternEcho(`P(ok.png) S: 0.7`)
	require.True(t, ok)
	assert.Equal(t, "0.7", sim)

	_, ok = ParsePatternEcho("nothing here")
	assert.False(t, ok)
}

func TestParseObserverEvents(t *testing.T) {
	events := ParseObserverEvents("noise\nSIKULI#OBSERVER#: appear ok.png\nSIKULI#: YES\nSIKULI#OBSERVER#: vanish ok.png")
	assert.Equal(t, []string{"appear ok.png", "vanish ok.png"}, events)
	assert.Empty(t, ParseObserverEvents("SIKULI#: YES"))
}

func TestHasReturn_IgnoresObserverPrefix(t *testing.T) {
	assert.False(t, HasReturn("SIKULI#OBSERVER#: appear"))
	assert.True(t, HasReturn("SIKULI#: NO"))
}
