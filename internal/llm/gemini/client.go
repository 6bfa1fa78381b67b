// Package gemini implements llm.Client with the Google GenAI SDK.
package gemini

import (
	"context"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/pkg/errors"
)

// Client wraps a genai.Client on either the Gemini API or Vertex AI.
type Client struct {
	genai *genai.Client
}

var _ llm.Client = (*Client)(nil)

// Vertex AI is used when no API key is given and GOOGLE_CLOUD_PROJECT is set.
const (
	envProject  = "GOOGLE_CLOUD_PROJECT"
	envLocation = "GOOGLE_CLOUD_LOCATION"

	defaultLocation = "us-central1"
	detectTimeout   = 2 * time.Second
)

// NewClient creates a Gemini client. An API key selects the Gemini API;
// without one, Application Default Credentials are used against Vertex AI
// in GOOGLE_CLOUD_PROJECT. baseURL overrides the endpoint when non-empty.
func NewClient(ctx context.Context, apiKey, baseURL string) (*Client, error) {
	config := &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: apiKey}
	if strings.TrimSpace(apiKey) == "" {
		project := os.Getenv(envProject)
		if project == "" {
			return nil, &errors.AuthenticationError{
				Provider: llm.ProviderGemini,
				Method:   "api_key",
				Message:  "set GEMINI_API_KEY, or GOOGLE_CLOUD_PROJECT for Vertex AI",
				Err:      errors.ErrAPIKeyRequired,
			}
		}
		creds, err := detectCredentials(ctx)
		if err != nil {
			return nil, err
		}
		location := os.Getenv(envLocation)
		if location == "" {
			location = defaultLocation
		}
		config = &genai.ClientConfig{
			Backend:     genai.BackendVertexAI,
			Project:     project,
			Location:    location,
			Credentials: creds,
		}
	}
	if baseURL != "" {
		config.HTTPOptions.BaseURL = baseURL
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, errors.NewConfigError(llm.ProviderGemini, "failed to create client", err)
	}
	return &Client{genai: client}, nil
}

// detectCredentials looks up Application Default Credentials. DetectDefault
// takes no context and can hang on the metadata server off GCP, hence the
// timeout.
func detectCredentials(ctx context.Context) (*auth.Credentials, error) {
	type result struct {
		creds *auth.Credentials
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		ch <- result{creds, err}
	}()

	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()
	select {
	case res := <-ch:
		if res.err != nil {
			return nil, errors.NewConfigError(llm.ProviderGemini, "no Application Default Credentials found", res.err)
		}
		return res.creds, nil
	case <-ctx.Done():
		return nil, errors.NewConfigError(llm.ProviderGemini, "credential detection timed out", ctx.Err())
	}
}

// Factory adapts NewClient to llm.Factory.
func Factory(apiKey, baseURL string) (llm.Client, error) {
	return NewClient(context.Background(), apiKey, baseURL)
}

// Complete generates content for a single user turn.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.genai.Models.GenerateContent(ctx, req.Model, genai.Text(req.User), config)
	if err != nil {
		if code, msg, ok := apiStatus(err); ok {
			return "", &errors.APIError{
				Provider:   llm.ProviderGemini,
				StatusCode: code,
				Message:    msg,
				Err:        err,
			}
		}
		return "", errors.WrapAPI(llm.ProviderGemini, 0, err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.NewAPIError(llm.ProviderGemini, 0, "response contained no text")
	}
	return text, nil
}

// apiStatus extracts the HTTP status the SDK reported, whether it surfaced the
// error by value or by pointer.
func apiStatus(err error) (int, string, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v.Code, v.Message, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return p.Code, p.Message, true
	}
	return 0, "", false
}
