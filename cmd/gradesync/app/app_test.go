package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/lms/lmstest"
	"github.com/agentstation/gradesync/pkg/errors"
)

func newTestApp(t *testing.T, config *Config, opts ...Option) *App {
	t.Helper()
	logger := zerolog.Nop()
	opts = append([]Option{WithConfig(config), WithLogger(&logger)}, opts...)
	app, err := New("1.0.0", "abc123", "2026-01-01", "test", opts...)
	require.NoError(t, err)
	return app
}

// run executes the root command against buffers instead of the terminal.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t, &Config{Model: "gpt-4o-mini", CourseID: 1, AssignmentID: 2, LLMProvider: "openai"})

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Metrics())

	settings := app.Settings()
	assert.Equal(t, int64(1), settings.CourseID)
	assert.Equal(t, int64(2), settings.AssignmentID)
	assert.Equal(t, "gpt-4o-mini", settings.Model)
	assert.Equal(t, "openai", settings.LLMProvider)
}

func TestApp_NilConfig(t *testing.T) {
	_, err := New("1.0.0", "", "", "", WithConfig(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestApp_LMS_RequiresCredentials(t *testing.T) {
	app := newTestApp(t, &Config{})
	_, err := app.LMS()
	require.Error(t, err)

	app = newTestApp(t, &Config{CanvasAPIURL: "https://canvas.example.edu"})
	_, err = app.LMS()
	assert.True(t, errors.IsAPIKeyError(err))
}

func TestApp_LMS_Singleton(t *testing.T) {
	app := newTestApp(t, &Config{CanvasAPIURL: "https://canvas.example.edu", CanvasAPIKey: "token"})

	const goroutines = 50
	var wg sync.WaitGroup
	clients := make([]lms.Client, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c, err := app.LMS()
			assert.NoError(t, err)
			clients[idx] = c
		}(i)
	}
	wg.Wait()

	for _, c := range clients[1:] {
		assert.Same(t, clients[0], c)
	}
}

func TestApp_LLM(t *testing.T) {
	app := newTestApp(t, &Config{LLMProvider: "openai"})
	_, err := app.LLM()
	assert.True(t, errors.IsAPIKeyError(err))

	app = newTestApp(t, &Config{LLMProvider: "openai", OpenAIAPIKey: "sk-test"})
	client, err := app.LLM()
	require.NoError(t, err)
	again, err := app.LLM()
	require.NoError(t, err)
	assert.Same(t, client, again)

	app = newTestApp(t, &Config{LLMProvider: "claude", OpenAIAPIKey: "sk-test"})
	_, err = app.LLM()
	assert.True(t, errors.IsValidationError(err))
}

func TestApp_InjectedClients(t *testing.T) {
	fake := &lmstest.Fake{}
	model := llm.ClientFunc(func(context.Context, llm.Request) (string, error) { return "{}", nil })
	app := newTestApp(t, &Config{}, WithLMS(fake), WithLLM(model))

	client, err := app.LMS()
	require.NoError(t, err)
	assert.Same(t, fake, client)

	_, err = app.LLM()
	assert.NoError(t, err)
}

func TestApp_VersionCommand(t *testing.T) {
	app := newTestApp(t, &Config{})

	out, err := run(t, app, "version")
	require.NoError(t, err)
	assert.Equal(t, "gradesync 1.0.0\n", out)

	out, err = run(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:   abc123")
	assert.Contains(t, out, "built by: test")
}

func TestApp_FlagsOverrideConfig(t *testing.T) {
	app := newTestApp(t, &Config{Format: "table"}, WithLMS(&lmstest.Fake{
		User:    lms.User{ID: 1, Name: "Ada Lovelace"},
		Courses: []lms.Course{{ID: 3532173, Name: "CPSC 120A", CourseCode: "CPSC-120A"}},
	}))

	out, err := run(t, app, "courses", "-o", "json", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "json", app.Config().Format)
	assert.Equal(t, "error", app.Config().LogLevel)
	assert.Contains(t, out, `"name": "Ada Lovelace"`)
	assert.Contains(t, out, `"CPSC 120A"`)
}

func TestApp_UnknownCommand(t *testing.T) {
	app := newTestApp(t, &Config{})
	_, err := run(t, app, "frobnicate")
	assert.Error(t, err)
}

func TestApp_ShutdownWritesMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradesync.prom")
	app := newTestApp(t, &Config{MetricsFile: path})
	app.Metrics().ObserveGrade("graded")

	require.NoError(t, app.Shutdown(context.Background()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gradesync_grade_students_total{outcome="graded"} 1`)

	app = newTestApp(t, &Config{})
	assert.NoError(t, app.Shutdown(context.Background()))
}
