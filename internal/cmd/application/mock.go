// Package application holds a function-field fake of application.Application.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/metrics"
)

// Mock answers each method from its *Func field. Unset fields give zero
// clients, a fresh metrics manager, a no-op logger, "table" output and
// "dev"/"unknown" build metadata.
type Mock struct {
	LMSFunc          func() (lms.Client, error)
	LLMFunc          func() (llm.Client, error)
	MetricsFunc      func() *metrics.Manager
	SettingsFunc     func() application.Settings
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ application.Application = (*Mock)(nil)

func (m *Mock) LMS() (lms.Client, error) {
	if m.LMSFunc != nil {
		return m.LMSFunc()
	}
	return nil, nil
}

func (m *Mock) LLM() (llm.Client, error) {
	if m.LLMFunc != nil {
		return m.LLMFunc()
	}
	return nil, nil
}

func (m *Mock) Metrics() *metrics.Manager {
	if m.MetricsFunc != nil {
		return m.MetricsFunc()
	}
	return metrics.NewManager()
}

func (m *Mock) Settings() application.Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return application.Settings{}
}

func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
