package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
)

func TestNew(t *testing.T) {
	var gotKey, gotURL string
	Register("fake", func(apiKey, baseURL string) (Client, error) {
		gotKey, gotURL = apiKey, baseURL
		return ClientFunc(func(_ context.Context, req Request) (string, error) {
			return "echo:" + req.User, nil
		}), nil
	})
	t.Cleanup(func() { delete(factories, "fake") })

	c, err := New(" FAKE ", "k", "http://localhost")
	require.NoError(t, err)
	assert.Equal(t, "k", gotKey)
	assert.Equal(t, "http://localhost", gotURL)

	out, err := c.Complete(context.Background(), Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", out)
}

func TestNewErrors(t *testing.T) {
	_, err := New("nope", "k", "")
	assert.True(t, errors.IsValidationError(err))
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, constants.DefaultModel, DefaultModel(ProviderOpenAI))
	assert.Equal(t, constants.DefaultModel, DefaultModel(""))
	assert.Equal(t, constants.DefaultGeminiModel, DefaultModel(" Gemini "))
}
