// Package application defines what cobra commands may ask of the running
// app. Commands take an Application rather than the concrete *app.App so
// tests can hand them internal/cmd/application.Mock:
//
//	mock := &application.Mock{
//	    LMSFunc: func() (lms.Client, error) { return fake, nil },
//	}
//	cmd := courses.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/metrics"
)

// Settings are the configured defaults commands fall back to when a flag is
// not given.
type Settings struct {
	CourseID     int64
	AssignmentID int64
	LLMProvider  string
	Model        string
	MetricsFile  string
}

// Application is implemented by *app.App.
type Application interface {
	// LMS and LLM build their clients on first call and fail when
	// credentials are missing.
	LMS() (lms.Client, error)
	LLM() (llm.Client, error)

	Metrics() *metrics.Manager
	Settings() Settings
	Logger() *zerolog.Logger
	OutputFormat() string // table, json, yaml or "" for detect

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
