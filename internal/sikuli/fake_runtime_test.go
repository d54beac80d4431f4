package sikuli

import (
	"errors"
	"time"
)

// fakeRuntime replays canned responses and records every submission.
type fakeRuntime struct {
	responses []string
	runErr    error
	startErr  error
	stopErr   error

	started  int
	stopped  int
	scripts  []string
	markers  []string
	failsafe []time.Duration
}

func newFakeRuntime(responses ...string) *fakeRuntime {
	return &fakeRuntime{responses: responses}
}

func (f *fakeRuntime) Start() error {
	f.started++
	return f.startErr
}

func (f *fakeRuntime) Run(script, marker string, failsafe time.Duration) (string, error) {
	f.scripts = append(f.scripts, script)
	f.markers = append(f.markers, marker)
	f.failsafe = append(f.failsafe, failsafe)
	if f.runErr != nil {
		return "", f.runErr
	}
	if len(f.responses) == 0 {
		return "", errors.New("fake runtime: no response queued")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeRuntime) Stop() error {
	f.stopped++
	return f.stopErr
}

func (f *fakeRuntime) lastScript() string {
	if len(f.scripts) == 0 {
		return ""
	}
	return f.scripts[len(f.scripts)-1]
}
