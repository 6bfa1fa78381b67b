package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/agentstation/gradesync/pkg/errors"
)

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	_, err := NewClient(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, errors.IsAPIKeyError(err))
}

func TestNewClientVertexNeedsCredentials(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "adc.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	t.Setenv("GOOGLE_CLOUD_PROJECT", "cpsc120a")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", bad)

	_, err := NewClient(context.Background(), "", "")
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "gemini", cfgErr.Component)
	assert.False(t, errors.IsAPIKeyError(err))
}

func TestAPIStatus(t *testing.T) {
	code, msg, ok := apiStatus(fmt.Errorf("generate: %w", genai.APIError{Code: 429, Message: "quota"}))
	require.True(t, ok)
	assert.Equal(t, 429, code)
	assert.Equal(t, "quota", msg)

	_, _, ok = apiStatus(fmt.Errorf("boom"))
	assert.False(t, ok)
}
