package sikuli

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ReturnKind selects what a command prints back on success.
type ReturnKind int

const (
	// ReturnPresence prints YES or NO.
	ReturnPresence ReturnKind = iota
	// ReturnMatch prints the last match.
	ReturnMatch
	// ReturnMatches prints every match of the last multi-match call.
	ReturnMatches
)

// Command is one line of interpreter script together with the data the
// session needs to submit it.
type Command struct {
	Action  string
	Kind    ReturnKind
	Script  string
	Timeout float64 // logical timeout in seconds, 0 when none
}

// Failsafe returns the runtime deadline for the command.
func (c Command) Failsafe() time.Duration {
	return Failsafe(c.Timeout)
}

// BuildCommand validates every descriptor, then renders
// "<action>(<expr>,...[, <timeout>])" wrapped for the given return kind.
// An invalid descriptor never produces script text.
func BuildCommand(action string, kind ReturnKind, timeout float64, targets ...Descriptor) (Command, error) {
	if err := validateTimeout(timeout); err != nil {
		return Command{}, err
	}
	if err := validateAll(targets); err != nil {
		return Command{}, err
	}
	exprs := make([]string, len(targets))
	for i, t := range targets {
		exprs[i] = t.ScriptExpression()
	}
	call := fmt.Sprintf("%s(%s%s)", action, strings.Join(exprs, ","), timeoutArg(timeout))
	return Command{
		Action:  action,
		Kind:    kind,
		Script:  wrap(kind, call),
		Timeout: timeout,
	}, nil
}

// BuildDotCommand renders "<region>.<action>(<params>)" as a presence
// command. params is passed through verbatim.
func BuildDotCommand(action string, region Descriptor, params string) (Command, error) {
	if region == nil {
		return Command{}, newValidationError("region", "", "must not be nil")
	}
	if err := region.Validate(); err != nil {
		return Command{}, err
	}
	call := fmt.Sprintf("%s.%s(%s)", region.ScriptExpression(), action, params)
	return Command{
		Action: action,
		Kind:   ReturnPresence,
		Script: wrap(ReturnPresence, call),
	}, nil
}

func wrap(kind ReturnKind, call string) string {
	switch kind {
	case ReturnMatch:
		return fmt.Sprintf(`print "%s " + getLastMatch().toString() if %s else "%s %s"`,
			ReturnIdentifier, call, ReturnIdentifier, None)
	case ReturnMatches:
		return fmt.Sprintf(`print "%s " + ''.join(map(str, getLastMatches())) if %s else "%s %s"`,
			ReturnIdentifier, call, ReturnIdentifier, None)
	default:
		return fmt.Sprintf(`print "%s %s" if %s else "%s %s"`,
			ReturnIdentifier, presenceYes, call, ReturnIdentifier, presenceNo)
	}
}

func validateTimeout(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return newValidationError("timeout", "", fmt.Sprintf("%v must be a non-negative number of seconds", seconds))
	}
	return nil
}

func validateAll(targets []Descriptor) error {
	for i, t := range targets {
		if t == nil {
			return newValidationError("descriptor", fmt.Sprintf("#%d", i+1), "must not be nil")
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HighlightOptions selects the optional highlight arguments. A zero
// Seconds leaves the duration out, an empty Color leaves the color out.
type HighlightOptions struct {
	Seconds float64
	Color   string
}

// Params renders the raw parameter string: "", "'red'", "2.5" or
// "2.5, 'red'".
func (o HighlightOptions) Params() string {
	var parts []string
	if o.Seconds > 0 {
		parts = append(parts, FormatFloat(o.Seconds))
	}
	if o.Color != "" {
		parts = append(parts, singleQuote(o.Color))
	}
	return strings.Join(parts, ", ")
}
