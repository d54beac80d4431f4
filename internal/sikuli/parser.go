package sikuli

import (
	"regexp"
	"strings"
)

var (
	matchTextRe   = regexp.MustCompile(MatchTextPattern)
	patternTextRe = regexp.MustCompile(PatternTextPattern)
)

// ParsePresence reports whether response carries "SIKULI#: YES". Any other
// content, including an interpreter error, reads as false.
func ParsePresence(response string) bool {
	return strings.Contains(response, ReturnIdentifier+" "+presenceYes)
}

// HasReturn reports whether the interpreter reached the print statement.
func HasReturn(response string) bool {
	return strings.Contains(response, ReturnIdentifier)
}

// ExtractMatches returns every match token in response, left to right.
func ExtractMatches(response string) []Match {
	tokens := matchTextRe.FindAllString(response, -1)
	matches := make([]Match, 0, len(tokens))
	for _, t := range tokens {
		matches = append(matches, newMatch(t))
	}
	return matches
}

// ParseValue interprets the response to a value command. Once the return
// marker is present, the None sentinel or an absence of match tokens yields
// an empty, non-nil slice. A missing marker is a CommandFailedError.
func ParseValue(cmd Command, response string) ([]Match, error) {
	if !HasReturn(response) {
		return nil, commandFailed(cmd, response, "no return marker in response")
	}
	if strings.Contains(response, None) {
		return []Match{}, nil
	}
	return ExtractMatches(response), nil
}

// InterpreterError returns the first line carrying the error marker.
func InterpreterError(response string) string {
	for _, line := range strings.Split(response, "\n") {
		if strings.Contains(line, ErrorMarker) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// ParsePatternEcho returns the similarity text of an engine pattern echo
// such as `P(button.png) S: 0.7`.
func ParsePatternEcho(response string) (string, bool) {
	g := patternTextRe.FindStringSubmatch(response)
	if g == nil {
		return "", false
	}
	return strings.TrimSpace(g[1]), true
}

// ParseObserverEvents returns the payload of every observer line.
func ParseObserverEvents(response string) []string {
	var events []string
	for _, line := range strings.Split(response, "\n") {
		idx := strings.Index(line, ObserverPrefix)
		if idx < 0 {
			continue
		}
		events = append(events, strings.TrimSpace(line[idx+len(ObserverPrefix):]))
	}
	return events
}

func commandFailed(cmd Command, response, reason string) *CommandFailedError {
	return &CommandFailedError{
		Command:     cmd.Action,
		Script:      cmd.Script,
		Response:    response,
		Interpreter: InterpreterError(response),
		Reason:      reason,
	}
}
