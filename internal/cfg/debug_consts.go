package cfg

// These consts gate the core's debug-only behavior. They are collected here
// so that "where do we turn on tracing/validation while debugging this pass"
// is always one file away.

const (
	// SanityCheckEnabled runs the structural invariant checks in sanity.go
	// after every mutation Simplify makes. A violation is a fatal assertion
	// signaling a bug in a preceding stage, not a recoverable condition.
	// Keep this on until the pipeline has had real fuzzing mileage.
	SanityCheckEnabled = true

	// LoggingEnabled prints a trace line per Simplify rewrite rule firing,
	// for local debugging only. Must stay false by default.
	LoggingEnabled = false

	// PrintCFG dumps the formatted listing of every CFG after the pipeline
	// finishes. Must stay false by default.
	PrintCFG = false
)
