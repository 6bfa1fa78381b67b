// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used in status lines so every command reads the same way.
const (
	// Success marks a completed operation or a matching grade.
	Success = "✓"

	// Error marks a failure or a student who earned no credit.
	Error = "✗"

	// Warning marks a mismatch or a non-fatal problem.
	Warning = "!"

	// Info marks informational lines.
	Info = "i"
)
