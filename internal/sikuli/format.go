package sikuli

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatFloat renders v with at most four fractional digits, trimming
// trailing zeros. The decimal separator is always '.'.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// timeoutArg returns ", <timeout>" for a positive timeout and "" otherwise.
func timeoutArg(seconds float64) string {
	if seconds > 0 {
		return ", " + FormatFloat(seconds)
	}
	return ""
}

// Failsafe derives the runtime deadline for a logical timeout in seconds.
// A zero timeout yields zero, meaning the runtime default applies.
// Deadlines beyond the range of time.Duration saturate at its maximum.
func Failsafe(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	d := seconds * failsafeFactor * float64(time.Second)
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// quote renders s as a double-quoted Python string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// singleQuote renders s as a single-quoted Python string literal.
func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return "'" + r.Replace(s) + "'"
}
