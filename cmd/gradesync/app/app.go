// Package app wires configuration, logging, metrics and the Canvas and model
// clients into the cobra command tree.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/internal/llm/gemini"
	"github.com/agentstation/gradesync/internal/llm/openai"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/lms/canvas"
	"github.com/agentstation/gradesync/internal/metrics"
	"github.com/agentstation/gradesync/pkg/errors"
)

func init() {
	llm.Register(llm.ProviderOpenAI, openai.Factory)
	llm.Register(llm.ProviderGemini, gemini.Factory)
}

// App owns everything a command needs. It implements application.Application.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	metrics *metrics.Manager

	// Clients are created on first use so commands that need neither
	// (version, help) run without credentials.
	mu  sync.Mutex
	lms lms.Client
	llm llm.Client
}

var _ application.Application = (*App)(nil)

// New applies opts, then fills in whatever they left unset from the
// environment and config files.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		metrics: metrics.NewManager(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.NewConfigError("config", "failed to load configuration", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version, Commit, Date and BuiltBy report build metadata set by ldflags.
func (a *App) Version() string {
	return a.version
}

func (a *App) Commit() string {
	return a.commit
}

func (a *App) Date() string {
	return a.date
}

func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config is the merged env, file and flag configuration.
func (a *App) Config() *Config {
	return a.config
}

func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat is the raw --format value; empty means detect.
func (a *App) OutputFormat() string {
	return a.config.Format
}

func (a *App) Metrics() *metrics.Manager {
	return a.metrics
}

// Settings exposes the defaults commands fall back to when a flag is unset.
func (a *App) Settings() application.Settings {
	return application.Settings{
		CourseID:     a.config.CourseID,
		AssignmentID: a.config.AssignmentID,
		LLMProvider:  a.config.LLMProvider,
		Model:        a.config.Model,
		MetricsFile:  a.config.MetricsFile,
	}
}

// LMS returns the Canvas client, creating it on first use.
func (a *App) LMS() (lms.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lms != nil {
		return a.lms, nil
	}

	client, err := canvas.NewClient(a.config.CanvasAPIURL, a.config.CanvasAPIKey)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("url", a.config.CanvasAPIURL).Msg("Created Canvas client")

	a.lms = client
	return client, nil
}

// LLM returns the model client for the configured provider, creating it on
// first use.
func (a *App) LLM() (llm.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.llm != nil {
		return a.llm, nil
	}

	client, err := llm.New(a.config.LLMProvider, a.config.LLMKey(), a.config.LLMBaseURL())
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("provider", a.config.LLMProvider).Msg("Created model client")

	a.llm = client
	return client, nil
}

// Shutdown flushes metrics to --metrics-file. It runs after failed commands
// too, so partial counts are still written.
func (a *App) Shutdown(_ context.Context) error {
	if a.config.MetricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
		return errors.WrapIO("write", a.config.MetricsFile, err)
	}
	return nil
}

// Option customizes New.
type Option func(*App) error

// WithConfig skips config loading. nil is rejected.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config cannot be nil")
		}
		a.config = config
		return nil
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLMS and WithLLM inject clients, bypassing credential checks.
func WithLMS(client lms.Client) Option {
	return func(a *App) error {
		a.lms = client
		return nil
	}
}

func WithLLM(client llm.Client) Option {
	return func(a *App) error {
		a.llm = client
		return nil
	}
}
