package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// LMS connection
	CanvasAPIURL string
	CanvasAPIKey string

	// Grading target defaults
	CourseID     int64
	AssignmentID int64

	// Model backend
	LLMProvider   string
	Model         string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	// Metrics textfile written after compare and grade runs
	MetricsFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// envKeys are bound explicitly so values from .env files are picked up even
// when no config file mentions them.
var envKeys = []string{
	"CANVAS_API_URL",
	"CANVAS_API_KEY",
	"CANVAS_TEST_KEY",
	"COURSE_ID",
	"ASSIGNMENT_ID",
	"LLM_PROVIDER",
	"MODEL",
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"GEMINI_API_KEY",
	"METRICS_FILE",
	"FORMAT",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.gradesync.yaml or ./.gradesync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv("GRADESYNC_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range envKeys {
		// BindEnv only fails without a key name.
		_ = v.BindEnv(strings.ToLower(key), key)
	}

	v.SetDefault("llm_provider", constants.DefaultLLMProvider)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file that fails to load is an error, a missing default is not.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		CanvasAPIURL: v.GetString("canvas_api_url"),
		CanvasAPIKey: v.GetString("canvas_api_key"),

		CourseID:     v.GetInt64("course_id"),
		AssignmentID: v.GetInt64("assignment_id"),

		LLMProvider:   strings.ToLower(v.GetString("llm_provider")),
		Model:         v.GetString("model"),
		OpenAIAPIKey:  v.GetString("openai_api_key"),
		OpenAIBaseURL: v.GetString("openai_base_url"),
		GeminiAPIKey:  v.GetString("gemini_api_key"),

		MetricsFile: v.GetString("metrics_file"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// The grading scripts read the token from CANVAS_TEST_KEY.
	if config.CanvasAPIKey == "" {
		config.CanvasAPIKey = v.GetString("canvas_test_key")
	}
	if config.Model == "" {
		config.Model = llm.DefaultModel(config.LLMProvider)
	}

	return config, nil
}

// UpdateFromFlags applies parsed persistent flags. Flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, metricsFile string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if metricsFile != "" {
		c.MetricsFile = metricsFile
	}
}

// LLMKey returns the API key for the configured provider.
func (c *Config) LLMKey() string {
	if c.LLMProvider == llm.ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// LLMBaseURL returns the base URL override for the configured provider.
func (c *Config) LLMBaseURL() string {
	if c.LLMProvider == llm.ProviderGemini {
		return ""
	}
	return c.OpenAIBaseURL
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		// godotenv.Load never overrides variables that are already set, so
		// the more specific file is loaded first.
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
