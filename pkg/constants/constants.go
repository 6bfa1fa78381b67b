// Package constants provides shared constants used throughout the gradesync codebase.
// This includes timeouts, limits, file permissions, and grading defaults
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the LMS and LLM APIs
	DefaultHTTPTimeout = 30 * time.Second

	// LLMTimeout bounds a single grading completion
	LLMTimeout = 2 * time.Minute

	// ShutdownTimeout is how long main waits for cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the per_page value sent to paginated LMS endpoints
	DefaultPageSize = 100

	// MaxPages caps pagination so a misbehaving Link header cannot loop forever
	MaxPages = 1000

	// MaxErrorBodySize is how much of an error response body is kept in APIError messages
	MaxErrorBodySize = 2048
)

// Grading defaults
const (
	// DefaultModel is the OpenAI model used when none is configured
	DefaultModel = "gpt-4o-mini"

	// DefaultGeminiModel is the model used with llm_provider gemini when none is configured
	DefaultGeminiModel = "gemini-2.0-flash"

	// DefaultLLMProvider is the LLM backend used when none is configured
	DefaultLLMProvider = "openai"

	// DryRunLimit is how many students a dry run grades before stopping
	DryRunLimit = 15

	// MinWords is the minimum length of a full-credit discussion message
	MinWords = 90

	// MinReplies is the number of replies needed for full reply credit
	MinReplies = 2

	// MaxScore is the total available on the discussion rubric
	MaxScore = 10
)

// Default file names and columns
const (
	// DefaultComparisonFile is where compare writes its report
	DefaultComparisonFile = "final_comparison.csv"

	// DryRunGradeFile is the grade sheet name used by dry runs
	DryRunGradeFile = "grades_test.csv"

	// DefaultIDColumn is the identifier column of a local grade sheet
	DefaultIDColumn = "SIS ID"

	// DefaultScoreColumn is the score column of a local grade sheet
	DefaultScoreColumn = "Total Score"

	// ConfigName is the base name of the optional config file in $HOME or the working directory
	ConfigName = ".gradesync"
)
