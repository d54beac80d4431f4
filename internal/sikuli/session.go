package sikuli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the public automation API. Every operation validates its
// arguments, submits exactly one script line and blocks for its response.
// A Session is not safe for concurrent use.
type Session struct {
	id      string
	runtime Runtime
	logger  *zap.Logger
	strict  bool
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for script and response tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictPresence makes presence commands fail with a
// CommandFailedError when the return marker is missing entirely, instead
// of reading the response as false.
func WithStrictPresence(strict bool) Option {
	return func(s *Session) {
		s.strict = strict
	}
}

// NewSession starts rt and returns a Session bound to it.
func NewSession(rt Runtime, opts ...Option) (*Session, error) {
	if rt == nil {
		return nil, errors.New("sikuli: nil runtime")
	}
	s := &Session{
		id:      uuid.NewString(),
		runtime: rt,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	if err := rt.Start(); err != nil {
		return nil, fmt.Errorf("start runtime: %w", err)
	}
	s.logger.Debug("session started")
	return s, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Close stops the runtime. Only the first call reaches the runtime.
func (s *Session) Close() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.logger.Debug("session closing")
	if err := s.runtime.Stop(); err != nil {
		return fmt.Errorf("stop runtime: %w", err)
	}
	return nil
}

// Find returns the first match of p without waiting.
func (s *Session) Find(p Descriptor) (*Match, error) {
	return s.runMatch("find", 0, p)
}

// FindAll returns every match of p in engine order. No match yields an
// empty slice.
func (s *Session) FindAll(p Descriptor) ([]Match, error) {
	cmd, err := BuildCommand("findAll", ReturnMatches, 0, p)
	if err != nil {
		return nil, err
	}
	return s.runValue(cmd)
}

// Wait blocks until p appears or timeout seconds elapse.
func (s *Session) Wait(p Descriptor, timeout float64) (*Match, error) {
	return s.runMatch("wait", timeout, p)
}

// WaitVanish blocks until p disappears or timeout seconds elapse.
func (s *Session) WaitVanish(p Descriptor, timeout float64) (bool, error) {
	return s.runPresence("waitVanish", timeout, p)
}

// Exists returns the match of p, or nil when it does not appear within
// timeout seconds.
func (s *Session) Exists(p Descriptor, timeout float64) (*Match, error) {
	return s.runMatch("exists", timeout, p)
}

// Has reports whether p appears within timeout seconds.
func (s *Session) Has(p Descriptor, timeout float64) (bool, error) {
	return s.runPresence("has", timeout, p)
}

// FindBest returns the best scoring match among patterns.
func (s *Session) FindBest(patterns ...Descriptor) (*Match, error) {
	return s.runMulti("findBest", 0, patterns)
}

// WaitBest waits up to timeout seconds for any of patterns and returns
// the best scoring match.
func (s *Session) WaitBest(timeout float64, patterns ...Descriptor) (*Match, error) {
	return s.runMulti("waitBest", timeout, patterns)
}

// FindAny returns the first match among patterns.
func (s *Session) FindAny(patterns ...Descriptor) (*Match, error) {
	return s.runMulti("findAny", 0, patterns)
}

// WaitAny waits up to timeout seconds for any of patterns.
func (s *Session) WaitAny(timeout float64, patterns ...Descriptor) (*Match, error) {
	return s.runMulti("waitAny", timeout, patterns)
}

// Click clicks the target.
func (s *Session) Click(target Descriptor) (bool, error) {
	return s.runPresence("click", 0, target)
}

// ClickOffset clicks offset pixels away from the center of p.
func (s *Session) ClickOffset(p Descriptor, offset Point) (bool, error) {
	return s.runPresence("click", 0, WithOffset(p, offset))
}

// DoubleClick double-clicks the target.
func (s *Session) DoubleClick(target Descriptor) (bool, error) {
	return s.runPresence("doubleClick", 0, target)
}

// DoubleClickOffset double-clicks offset pixels away from p.
func (s *Session) DoubleClickOffset(p Descriptor, offset Point) (bool, error) {
	return s.runPresence("doubleClick", 0, WithOffset(p, offset))
}

// Hover moves the mouse over the target.
func (s *Session) Hover(target Descriptor) (bool, error) {
	return s.runPresence("hover", 0, target)
}

// HoverOffset moves the mouse offset pixels away from p.
func (s *Session) HoverOffset(p Descriptor, offset Point) (bool, error) {
	return s.runPresence("hover", 0, WithOffset(p, offset))
}

// RightClick right-clicks the target.
func (s *Session) RightClick(target Descriptor) (bool, error) {
	return s.runPresence("rightClick", 0, target)
}

// RightClickOffset right-clicks offset pixels away from p.
func (s *Session) RightClickOffset(p Descriptor, offset Point) (bool, error) {
	return s.runPresence("rightClick", 0, WithOffset(p, offset))
}

// DragDrop drags from one target and drops on the other.
func (s *Session) DragDrop(from, to Descriptor) (bool, error) {
	return s.runPresence("dragDrop", 0, from, to)
}

// Highlight outlines region on screen.
func (s *Session) Highlight(region Region, opts HighlightOptions) (bool, error) {
	if err := validateTimeout(opts.Seconds); err != nil {
		return false, err
	}
	cmd, err := BuildDotCommand("highlight", region, opts.Params())
	if err != nil {
		return false, err
	}
	return s.presence(cmd)
}

func (s *Session) runPresence(action string, timeout float64, targets ...Descriptor) (bool, error) {
	cmd, err := BuildCommand(action, ReturnPresence, timeout, targets...)
	if err != nil {
		return false, err
	}
	return s.presence(cmd)
}

func (s *Session) presence(cmd Command) (bool, error) {
	response, err := s.submit(cmd)
	if err != nil {
		return false, err
	}
	if s.strict && !HasReturn(response) {
		return false, commandFailed(cmd, response, "no return marker in response")
	}
	return ParsePresence(response), nil
}

func (s *Session) runMatch(action string, timeout float64, p Descriptor) (*Match, error) {
	cmd, err := BuildCommand(action, ReturnMatch, timeout, p)
	if err != nil {
		return nil, err
	}
	return s.first(cmd)
}

func (s *Session) runMulti(action string, timeout float64, patterns []Descriptor) (*Match, error) {
	if len(patterns) == 0 {
		return nil, newValidationError("patterns", "", "at least one pattern is required")
	}
	cmd, err := BuildCommand(action, ReturnMatches, timeout, patterns...)
	if err != nil {
		return nil, err
	}
	return s.first(cmd)
}

func (s *Session) first(cmd Command) (*Match, error) {
	matches, err := s.runValue(cmd)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	m := matches[0]
	return &m, nil
}

func (s *Session) runValue(cmd Command) ([]Match, error) {
	response, err := s.submit(cmd)
	if err != nil {
		return nil, err
	}
	return ParseValue(cmd, response)
}

func (s *Session) submit(cmd Command) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	start := time.Now()
	s.logger.Debug("submit", zap.String("action", cmd.Action), zap.String("script", cmd.Script))
	response, err := s.runtime.Run(cmd.Script, ReturnIdentifier, cmd.Failsafe())
	s.logger.Debug("response",
		zap.String("action", cmd.Action),
		zap.String("response", response),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	for _, event := range ParseObserverEvents(response) {
		s.logger.Info("observer event", zap.String("action", cmd.Action), zap.String("event", event))
	}
	if err != nil {
		return response, fmt.Errorf("%s: %w", cmd.Action, err)
	}
	return response, nil
}
