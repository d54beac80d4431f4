package steps

import (
	"errors"
	"testing"
	"time"

	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/stretchr/testify/require"
)

const matchToken = "M[10,20 30x40]S:0.95 C:25,40 msec]"

// scriptedRuntime answers each submission with the next queued response.
type scriptedRuntime struct {
	responses []string
	scripts   []string
	failsafe  []time.Duration
}

func (r *scriptedRuntime) Start() error { return nil }
func (r *scriptedRuntime) Stop() error  { return nil }

func (r *scriptedRuntime) Run(script, _ string, failsafe time.Duration) (string, error) {
	r.scripts = append(r.scripts, script)
	r.failsafe = append(r.failsafe, failsafe)
	if len(r.responses) == 0 {
		return "", errors.New("no response queued")
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp, nil
}

func newTestSession(t *testing.T, responses ...string) (*sikuli.Session, *scriptedRuntime) {
	t.Helper()
	rt := &scriptedRuntime{responses: responses}
	s, err := sikuli.NewSession(rt)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, rt
}
