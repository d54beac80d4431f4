// Package steps dispatches named actions with loosely typed parameters to a
// sikuli.Session. The CLI commands, the do batch, the REPL, and the MCP
// server all share it.
package steps

import (
	"errors"
	"fmt"
	"time"

	"github.com/mj1618/sikuli-cli/internal/platform"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
)

var (
	// ErrNotFound is returned when an action's target did not appear.
	ErrNotFound = errors.New("target not found")

	// ErrStillVisible is returned by wait with vanish when the target
	// remained on screen.
	ErrStillVisible = errors.New("target still visible")
)

// Supported lists the step names Execute understands.
const Supported = "find, wait, exists, has, best, any, click, hover, drag, highlight, sleep"

// Result is the output of a single step.
type Result struct {
	Step    int            `yaml:"step,omitempty"    json:"step,omitempty"`
	OK      bool           `yaml:"ok"                json:"ok"`
	Action  string         `yaml:"action"            json:"action"`
	Error   string         `yaml:"error,omitempty"   json:"error,omitempty"`
	Target  string         `yaml:"target,omitempty"  json:"target,omitempty"`
	Found   *bool          `yaml:"found,omitempty"   json:"found,omitempty"`
	Match   *sikuli.Match  `yaml:"match,omitempty"   json:"match,omitempty"`
	Matches []sikuli.Match `yaml:"matches,omitempty" json:"matches,omitempty"`
	Count   *int           `yaml:"count,omitempty"   json:"count,omitempty"`
	Elapsed string         `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
}

// Execute runs one step against s. The returned Result is filled in even
// when err is non-nil, except for OK which the caller sets.
func Execute(s *sikuli.Session, action string, params map[string]interface{}) (Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	start := time.Now()
	result, err := execute(s, action, params)
	result.Action = action
	result.Elapsed = fmt.Sprintf("%.2fs", time.Since(start).Seconds())
	return result, err
}

func execute(s *sikuli.Session, action string, params map[string]interface{}) (Result, error) {
	switch action {
	case "find":
		return executeFind(s, params)
	case "wait":
		return executeWait(s, params)
	case "exists":
		return executeExists(s, params)
	case "has":
		return executeHas(s, params)
	case "best", "any":
		return executeMulti(s, action, params)
	case "click":
		return executeClick(s, params)
	case "hover":
		return executeHover(s, params)
	case "drag":
		return executeDrag(s, params)
	case "highlight":
		return executeHighlight(s, params)
	case "sleep":
		return executeSleep(params)
	default:
		return Result{}, fmt.Errorf("unknown step type %q; supported: %s", action, Supported)
	}
}

func executeFind(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	target, err := Target(params)
	if err != nil {
		return Result{}, err
	}
	result := Result{Target: target.ScriptExpression()}
	if BoolParam(params, "all", false) {
		matches, err := s.FindAll(target)
		if err != nil {
			return result, err
		}
		n := len(matches)
		result.Matches = matches
		result.Count = &n
		result.Found = boolPtr(n > 0)
		return result, nil
	}
	m, err := s.Find(target)
	return matchResult(result, m, err)
}

func executeWait(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	target, err := Target(params)
	if err != nil {
		return Result{}, err
	}
	timeout, err := FloatParam(params, "timeout", 0)
	if err != nil {
		return Result{}, err
	}
	result := Result{Target: target.ScriptExpression()}
	if BoolParam(params, "vanish", false) {
		gone, err := s.WaitVanish(target, timeout)
		if err != nil {
			return result, err
		}
		result.Found = boolPtr(!gone)
		if !gone {
			return result, ErrStillVisible
		}
		return result, nil
	}
	m, err := s.Wait(target, timeout)
	return matchResult(result, m, err)
}

func executeExists(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	target, err := Target(params)
	if err != nil {
		return Result{}, err
	}
	timeout, err := FloatParam(params, "timeout", 0)
	if err != nil {
		return Result{}, err
	}
	result := Result{Target: target.ScriptExpression()}
	m, err := s.Exists(target, timeout)
	if err != nil {
		return result, err
	}
	result.Found = boolPtr(m != nil)
	result.Match = m
	return result, nil
}

func executeHas(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	target, err := Target(params)
	if err != nil {
		return Result{}, err
	}
	timeout, err := FloatParam(params, "timeout", 0)
	if err != nil {
		return Result{}, err
	}
	result := Result{Target: target.ScriptExpression()}
	ok, err := s.Has(target, timeout)
	if err != nil {
		return result, err
	}
	result.Found = boolPtr(ok)
	return result, nil
}

// executeMulti handles best and any. A positive timeout switches to the
// waiting variant.
func executeMulti(s *sikuli.Session, action string, params map[string]interface{}) (Result, error) {
	patterns, err := Patterns(params)
	if err != nil {
		return Result{}, err
	}
	timeout, err := FloatParam(params, "timeout", 0)
	if err != nil {
		return Result{}, err
	}
	var m *sikuli.Match
	switch {
	case action == "best" && timeout > 0:
		m, err = s.WaitBest(timeout, patterns...)
	case action == "best":
		m, err = s.FindBest(patterns...)
	case timeout > 0:
		m, err = s.WaitAny(timeout, patterns...)
	default:
		m, err = s.FindAny(patterns...)
	}
	return matchResult(Result{}, m, err)
}

func executeClick(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	target, err := Target(params)
	if err != nil {
		return Result{}, err
	}
	kind, err := platform.ParseClickKind(StringParam(params, "kind", "left"))
	if err != nil {
		return Result{}, err
	}
	result := Result{Target: target.ScriptExpression()}
	var ok bool
	switch kind {
	case platform.ClickRight:
		ok, err = s.RightClick(target)
	case platform.ClickDouble:
		ok, err = s.DoubleClick(target)
	default:
		ok, err = s.Click(target)
	}
	return presenceResult(result, ok, err)
}

func executeHover(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	target, err := Target(params)
	if err != nil {
		return Result{}, err
	}
	ok, err := s.Hover(target)
	return presenceResult(Result{Target: target.ScriptExpression()}, ok, err)
}

// executeDrag takes nested from and to target maps.
func executeDrag(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	fromParams, ok := MapParam(params, "from")
	if !ok {
		return Result{}, fmt.Errorf("drag requires a from target")
	}
	toParams, ok := MapParam(params, "to")
	if !ok {
		return Result{}, fmt.Errorf("drag requires a to target")
	}
	from, err := Target(fromParams)
	if err != nil {
		return Result{}, fmt.Errorf("from: %w", err)
	}
	to, err := Target(toParams)
	if err != nil {
		return Result{}, fmt.Errorf("to: %w", err)
	}
	result := Result{Target: from.ScriptExpression() + " -> " + to.ScriptExpression()}
	dropped, err := s.DragDrop(from, to)
	return presenceResult(result, dropped, err)
}

func executeHighlight(s *sikuli.Session, params map[string]interface{}) (Result, error) {
	region, ok, err := Region(params)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, fmt.Errorf("highlight requires region, screen, or focused-window")
	}
	seconds, err := FloatParam(params, "seconds", 0)
	if err != nil {
		return Result{}, err
	}
	opts := sikuli.HighlightOptions{
		Seconds: seconds,
		Color:   StringParam(params, "color", ""),
	}
	done, err := s.Highlight(region, opts)
	return presenceResult(Result{Target: region.ScriptExpression()}, done, err)
}

func executeSleep(params map[string]interface{}) (Result, error) {
	seconds, err := FloatParam(params, "seconds", 0)
	if err != nil {
		return Result{}, err
	}
	if seconds < 0 {
		return Result{}, fmt.Errorf("sleep seconds must not be negative")
	}
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return Result{}, nil
}

func matchResult(result Result, m *sikuli.Match, err error) (Result, error) {
	if err != nil {
		return result, err
	}
	result.Found = boolPtr(m != nil)
	result.Match = m
	if m == nil {
		return result, ErrNotFound
	}
	return result, nil
}

func presenceResult(result Result, ok bool, err error) (Result, error) {
	if err != nil {
		return result, err
	}
	result.Found = boolPtr(ok)
	if !ok {
		return result, ErrNotFound
	}
	return result, nil
}

func boolPtr(b bool) *bool { return &b }
