// Package interpreter runs the SikuliX interactive interpreter as a child
// process and exchanges one script line at a time with it.
package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotStarted is returned by Run before Start or after Stop.
	ErrNotStarted = errors.New("interpreter not started")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("interpreter already started")

	// ErrTimeout is returned when the marker does not show up in time.
	ErrTimeout = errors.New("interpreter timed out")

	// ErrExited is returned when the process ends while a line is pending.
	ErrExited = errors.New("interpreter exited")

	// ErrOutput is returned when the output stream can no longer be read,
	// e.g. a line longer than maxLineSize.
	ErrOutput = errors.New("interpreter output unreadable")
)

// handshake is submitted by Start to detect readiness.
const handshake = `print "SIKULI#: YES"`

// handshakeMarker is the marker Start waits for.
const handshakeMarker = "SIKULI#:"

// syncPrefix starts the token printed ahead of every script. Output that
// precedes the current token belongs to an earlier, abandoned line.
const syncPrefix = "SIKULI#SEQ:"

const maxLineSize = 1024 * 1024

// Interpreter is a sikuli.Runtime backed by a child process.
type Interpreter struct {
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	lines   chan string
	done    chan struct{} // closed once the process has been reaped
	waitErr error
	readErr error
	seq     uint64
}

// New returns an Interpreter for cfg. Zero fields fall back to defaults.
func New(cfg Config, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		cfg:    cfg.withDefaults(),
		logger: logger.Named("interpreter"),
	}
}

// Start launches the process and waits for it to answer the handshake.
func (in *Interpreter) Start() error {
	in.mu.Lock()
	if in.cmd != nil {
		in.mu.Unlock()
		return ErrAlreadyStarted
	}

	cmd := exec.Command(in.cfg.Command, in.cfg.Args...)
	cmd.Dir = in.cfg.Dir
	cmd.Env = append(os.Environ(), in.cfg.envList()...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		in.mu.Unlock()
		return fmt.Errorf("stdin pipe: %w", err)
	}
	// stdout and stderr share one pipe so error lines interleave with
	// printed values in the order the interpreter wrote them.
	pr, pw, err := os.Pipe()
	if err != nil {
		in.mu.Unlock()
		return fmt.Errorf("output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		in.mu.Unlock()
		return fmt.Errorf("start %s: %w", in.cfg.Command, err)
	}
	pw.Close()

	in.cmd = cmd
	in.stdin = stdin
	in.lines = make(chan string, 256)
	in.done = make(chan struct{})
	in.waitErr = nil
	in.readErr = nil

	readerDone := make(chan struct{})
	go in.readLines(pr, in.lines, readerDone)
	go in.reap(cmd, pr, readerDone, in.done)
	in.mu.Unlock()

	in.logger.Info("started", zap.String("command", in.cfg.Command), zap.Strings("args", in.cfg.Args), zap.Int("pid", cmd.Process.Pid))

	out, err := in.Run(handshake, handshakeMarker, in.cfg.StartupTimeout)
	if err != nil {
		in.logger.Warn("handshake failed", zap.String("output", out), zap.Error(err))
		_ = in.Stop()
		return fmt.Errorf("handshake: %w", err)
	}
	return nil
}

func (in *Interpreter) readLines(r io.Reader, lines chan<- string, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	err := scanner.Err()
	if err != nil {
		in.logger.Error("output reader stopped", zap.Error(err))
		in.mu.Lock()
		in.readErr = err
		in.mu.Unlock()
	}
	close(lines)
	if err != nil {
		// discard the rest so the process never blocks on a full pipe
		_, _ = io.Copy(io.Discard, r)
	}
}

func (in *Interpreter) reap(cmd *exec.Cmd, pr *os.File, readerDone <-chan struct{}, done chan<- struct{}) {
	err := cmd.Wait()
	<-readerDone
	pr.Close()
	in.logger.Info("exited", zap.Error(err))
	in.mu.Lock()
	in.waitErr = err
	in.mu.Unlock()
	close(done)
}

// Run writes script as one line and collects output until a line contains
// marker. Each script is preceded by a numbered sync token, and output
// arriving before that token is discarded, so a late reply to a line that
// timed out is never taken for the current one. A zero failsafe uses the
// configured default timeout. On timeout the output collected so far is
// returned together with ErrTimeout.
func (in *Interpreter) Run(script, marker string, failsafe time.Duration) (string, error) {
	in.mu.Lock()
	stdin, lines := in.stdin, in.lines
	in.seq++
	token := fmt.Sprintf("%s%d#", syncPrefix, in.seq)
	in.mu.Unlock()
	if stdin == nil {
		return "", ErrNotStarted
	}
	if strings.ContainsAny(script, "\r\n") {
		return "", errors.New("script must be a single line")
	}

	if _, err := fmt.Fprintf(stdin, "print %q\n%s\n", token, script); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}

	timeout := failsafe
	if timeout <= 0 {
		timeout = in.cfg.DefaultTimeout
	}
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	synced := false
	var out []string
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return strings.Join(out, "\n"), in.exitErr()
			}
			if !synced {
				if strings.Contains(line, token) {
					synced = true
				} else {
					in.logger.Debug("discarding stale output", zap.String("line", line))
				}
				continue
			}
			out = append(out, line)
			if strings.Contains(line, marker) {
				return strings.Join(out, "\n"), nil
			}
		case <-deadline:
			return strings.Join(out, "\n"), fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
	}
}

func (in *Interpreter) exitErr() error {
	in.mu.Lock()
	done, readErr := in.done, in.readErr
	in.mu.Unlock()
	if readErr != nil {
		return fmt.Errorf("%w: %v", ErrOutput, readErr)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		return ErrExited
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.waitErr != nil {
		return fmt.Errorf("%w: %v", ErrExited, in.waitErr)
	}
	return ErrExited
}

// Stop closes stdin, waits for the process to exit within the grace period
// and kills it otherwise. Stopping a stopped interpreter is a no-op.
func (in *Interpreter) Stop() error {
	in.mu.Lock()
	cmd, stdin, lines, done := in.cmd, in.stdin, in.lines, in.done
	in.cmd, in.stdin = nil, nil
	in.mu.Unlock()
	if cmd == nil {
		return nil
	}

	_ = stdin.Close()
	grace := time.NewTimer(in.cfg.StopGrace)
	defer grace.Stop()
	for {
		select {
		case <-done:
			return nil
		case _, ok := <-lines:
			// keep the reader moving so it can observe EOF
			if !ok {
				lines = nil
			}
		case <-grace.C:
			in.logger.Warn("grace period elapsed, killing", zap.Duration("grace", in.cfg.StopGrace))
			if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				return fmt.Errorf("kill: %w", err)
			}
		}
	}
}

// Pid returns the process id, or 0 when not running.
func (in *Interpreter) Pid() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.cmd == nil || in.cmd.Process == nil {
		return 0
	}
	return in.cmd.Process.Pid
}
