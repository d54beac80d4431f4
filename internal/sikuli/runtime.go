package sikuli

import "time"

// Runtime executes script lines in an external interpreter.
//
// Run submits one line and returns the captured output once a line
// containing marker is seen or failsafe elapses. A zero failsafe leaves the
// deadline to the runtime. Implementations need not be safe for concurrent
// use; a Session never overlaps calls.
type Runtime interface {
	Start() error
	Run(script, marker string, failsafe time.Duration) (string, error)
	Stop() error
}
