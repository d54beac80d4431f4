package sikuli

// Protocol literals shared with the interpreter. They are matched
// case-sensitively against free-form interpreter output.
const (
	// ReturnIdentifier prefixes every value printed back by a command.
	ReturnIdentifier = "SIKULI#:"

	// ObserverPrefix prefixes asynchronous observer events.
	ObserverPrefix = "SIKULI#OBSERVER#:"

	// ErrorMarker is printed by the interpreter when a line raises.
	ErrorMarker = "[Error]"

	// None is the sentinel printed when a value command finds nothing.
	None = "None"

	// MatchTextPattern recognizes one engine-serialized match, for example
	// "M[10,20 30x40]@S(0) S:0.95 C:25,40 [12 msec]".
	MatchTextPattern = `M\[.*?msec\]`

	// PatternTextPattern recognizes an engine-serialized pattern echo.
	PatternTextPattern = `P\(.*\) S: (.*)`
)

const (
	presenceYes = "YES"
	presenceNo  = "NO"
)

// failsafeFactor scales a logical timeout into the runtime deadline.
const failsafeFactor = 1.5
