package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/pkg/errors"
)

func TestBearerAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&BearerAuth{}).Apply(req, "token")
	assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
}

func TestAuthFunc(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://canvas.test/api/v1/courses", nil)
	var auth Authenticator = AuthFunc(func(r *http.Request, token string) {
		r.Header.Set("x-api-key", token)
	})
	auth.Apply(req, "secret")
	assert.Equal(t, "secret", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&NoAuth{}).Apply(req, "secret")
	assert.Empty(t, req.Header)
}

func TestClientRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))

		if r.Method == http.MethodPut {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_ = json.NewEncoder(w).Encode(body)
			return
		}
		_, _ = w.Write([]byte(`{"id": 42, "name": "CPSC 120A"}`))
	}))
	defer server.Close()

	c := New("canvas", &BearerAuth{}, "token", WithHeader("X-Test", "yes"))
	assert.Equal(t, "canvas", c.Provider())

	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	var course struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, c.DecodeResponse(resp, &course))
	assert.Equal(t, int64(42), course.ID)

	resp, err = c.Put(context.Background(), server.URL, map[string]any{"posted_grade": 10})
	require.NoError(t, err)
	var echoed map[string]float64
	require.NoError(t, c.DecodeResponse(resp, &echoed))
	assert.Equal(t, 10.0, echoed["posted_grade"])
}

func TestDecodeResponseErrors(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid access token."}]}`))
		}))
		defer server.Close()

		c := New("canvas", &BearerAuth{}, "bad")
		resp, err := c.Get(context.Background(), server.URL+"/api/v1/users/self")
		require.NoError(t, err)

		err = c.DecodeResponse(resp, &struct{}{})
		require.Error(t, err)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "canvas", apiErr.Provider)
		assert.Equal(t, 401, apiErr.StatusCode)
		assert.Equal(t, "/api/v1/users/self", apiErr.Endpoint)
		assert.Contains(t, apiErr.Message, "Invalid access token")
		assert.True(t, errors.IsAPIKeyError(err))
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		c := New("openai", &BearerAuth{}, "k")
		resp, err := c.Get(context.Background(), server.URL)
		require.NoError(t, err)

		err = c.DecodeResponse(resp, &struct{}{})
		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "json", parseErr.Format)
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		c := New("canvas", nil, "")
		_, err := c.Get(context.Background(), addr)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "request failed", apiErr.Message)
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := New("canvas", nil, "")
		_, err := c.Get(ctx, server.URL)
		require.Error(t, err)
		assert.True(t, errors.IsCanceled(err))
	})
}

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{
			name: "canvas style",
			header: []string{`<https://lms.example.edu/api/v1/courses/1/assignments?page=1&per_page=100>; rel="current",` +
				`<https://lms.example.edu/api/v1/courses/1/assignments?page=2&per_page=100>; rel="next",` +
				`<https://lms.example.edu/api/v1/courses/1/assignments?page=1&per_page=100>; rel="first"`},
			want: "https://lms.example.edu/api/v1/courses/1/assignments?page=2&per_page=100",
		},
		{
			name:   "last page",
			header: []string{`<https://x/y?page=3>; rel="current", <https://x/y?page=1>; rel="first"`},
			want:   "",
		},
		{
			name:   "unquoted rel",
			header: []string{`<https://x/y?page=2>; rel=next`},
			want:   "https://x/y?page=2",
		},
		{
			name: "no header",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: make(http.Header)}
			for _, h := range tt.header {
				resp.Header.Add("Link", h)
			}
			assert.Equal(t, tt.want, NextLink(resp))
		})
	}
}
