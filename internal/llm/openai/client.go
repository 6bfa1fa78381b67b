// Package openai implements llm.Client against the OpenAI chat completions API
// and compatible endpoints.
package openai

import (
	"context"
	"strings"

	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/internal/transport"
	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/logging"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client calls /chat/completions.
type Client struct {
	transport *transport.Client
	baseURL   string
}

var _ llm.Client = (*Client)(nil)

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, baseURL string, opts ...transport.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts = append([]transport.Option{transport.WithTimeout(constants.LLMTimeout)}, opts...)
	return &Client{
		transport: transport.New(llm.ProviderOpenAI, &transport.BearerAuth{}, apiKey, opts...),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Factory adapts NewClient to llm.Factory. An empty key is rejected up front
// rather than on the first completion.
func Factory(apiKey, baseURL string) (llm.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewAuthenticationError(llm.ProviderOpenAI, "api_key", "API key required", errors.ErrAPIKeyRequired)
	}
	return NewClient(apiKey, baseURL), nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete sends one chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	body := chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, message{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, message{Role: "user", Content: req.User})
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	resp, err := c.transport.Post(ctx, c.baseURL+"/chat/completions", body)
	if err != nil {
		return "", err
	}
	var out chatResponse
	if err := c.transport.DecodeResponse(resp, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.NewAPIError(llm.ProviderOpenAI, resp.StatusCode, "response contained no choices")
	}

	logging.FromContext(ctx).Debug().
		Str("model", req.Model).
		Int("prompt_tokens", out.Usage.PromptTokens).
		Int("completion_tokens", out.Usage.CompletionTokens).
		Msg("Completion received")

	return out.Choices[0].Message.Content, nil
}
