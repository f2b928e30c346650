package module

// Require is an ordered level declaring how much work must be completed for
// a Handle. Ordered so that max(a, b) and a >= b comparisons are plain
// integer comparisons.
type Require int

const (
	// RequireExports completes only the public interface: names and types
	// reachable to importers.
	RequireExports Require = iota
	// RequireErrors completes full checking so diagnostics are produced.
	RequireErrors
	// RequireEverything additionally retains bindings used for
	// go-to-definition, hover, and other IDE queries.
	RequireEverything
)

func (r Require) String() string {
	switch r {
	case RequireExports:
		return "Exports"
	case RequireErrors:
		return "Errors"
	case RequireEverything:
		return "Everything"
	default:
		return "Require(?)"
	}
}

// Max returns the stronger of two Require levels.
func Max(a, b Require) Require {
	if a > b {
		return a
	}
	return b
}

// Satisfies reports whether a level already completed (have) covers a level
// requested (want).
func (have Require) Satisfies(want Require) bool {
	return have >= want
}
