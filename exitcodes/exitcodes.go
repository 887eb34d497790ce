// Package exitcodes defines the exit codes used by matrix-report.
package exitcodes

// Exit code constants:
//
// * Success (0): all backend summaries show zero failures
// * Failure (1): no usable input was given, or any backend recorded failures
//
// The exit status reflects the absolute failure count, not the regression
// delta against a baseline.
const (
	Success = 0
	Failure = 1
)
