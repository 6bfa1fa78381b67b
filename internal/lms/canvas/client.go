// Package canvas implements lms.Client against the Canvas LMS REST API.
package canvas

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/transport"
	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/logging"
)

// ProviderName identifies Canvas in errors and logs.
const ProviderName = "canvas"

const apiPrefix = "/api/v1"

// Client talks to a Canvas instance.
type Client struct {
	baseURL       string
	transport     *transport.Client
	transportOpts []transport.Option
	pageSize      int
	maxPages      int
}

var _ lms.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client) error

// WithTransportOptions forwards options to the underlying HTTP transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *Client) error {
		c.transportOpts = append(c.transportOpts, opts...)
		return nil
	}
}

// WithPageSize sets the per_page parameter used for list endpoints.
func WithPageSize(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return errors.NewValidationError("page_size", n, "must be positive")
		}
		c.pageSize = n
		return nil
	}
}

// NewClient creates a Canvas client for baseURL authenticated with token.
// baseURL may be given with or without the /api/v1 suffix.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.NewConfigError(ProviderName, "canvas_api_url is required", nil)
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewConfigError(ProviderName, fmt.Sprintf("invalid canvas_api_url %q", baseURL), err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.NewAuthenticationError(ProviderName, "bearer", "canvas_api_key is required", errors.ErrAPIKeyRequired)
	}

	base := strings.TrimRight(baseURL, "/")
	base = strings.TrimSuffix(base, apiPrefix)

	c := &Client{
		baseURL:  base,
		pageSize: constants.DefaultPageSize,
		maxPages: constants.MaxPages,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.transport = transport.New(ProviderName, &transport.BearerAuth{}, token, c.transportOpts...)
	return c, nil
}

// CurrentUser returns the account that owns the token.
func (c *Client) CurrentUser(ctx context.Context) (*lms.User, error) {
	var u user
	if err := c.getOne(ctx, "/users/self", nil, &u); err != nil {
		return nil, err
	}
	out := u.toLMS()
	return &out, nil
}

// ActiveCourses lists courses with an active enrollment for the current user.
func (c *Client) ActiveCourses(ctx context.Context) ([]lms.Course, error) {
	q := url.Values{}
	q.Set("enrollment_state", "active")
	raw, err := getAll[course](ctx, c, "/users/self/courses", q)
	if err != nil {
		return nil, err
	}
	out := make([]lms.Course, len(raw))
	for i, r := range raw {
		out[i] = r.toLMS()
	}
	return out, nil
}

// Course returns a single course.
func (c *Client) Course(ctx context.Context, courseID int64) (*lms.Course, error) {
	var r course
	if err := c.getOne(ctx, fmt.Sprintf("/courses/%d", courseID), nil, &r); err != nil {
		return nil, err
	}
	out := r.toLMS()
	return &out, nil
}

// Assignments lists every assignment in a course.
func (c *Client) Assignments(ctx context.Context, courseID int64) ([]lms.Assignment, error) {
	raw, err := getAll[assignment](ctx, c, fmt.Sprintf("/courses/%d/assignments", courseID), nil)
	if err != nil {
		return nil, err
	}
	out := make([]lms.Assignment, len(raw))
	for i, r := range raw {
		out[i] = r.toLMS()
	}
	return out, nil
}

// Assignment returns a single assignment.
func (c *Client) Assignment(ctx context.Context, courseID, assignmentID int64) (*lms.Assignment, error) {
	var r assignment
	if err := c.getOne(ctx, fmt.Sprintf("/courses/%d/assignments/%d", courseID, assignmentID), nil, &r); err != nil {
		return nil, err
	}
	out := r.toLMS()
	return &out, nil
}

// Submissions lists submissions for an assignment with the user object included.
func (c *Client) Submissions(ctx context.Context, courseID, assignmentID int64) ([]lms.Submission, error) {
	q := url.Values{}
	q.Add("include[]", "user")
	raw, err := getAll[submission](ctx, c, fmt.Sprintf("/courses/%d/assignments/%d/submissions", courseID, assignmentID), q)
	if err != nil {
		return nil, err
	}
	out := make([]lms.Submission, len(raw))
	for i, r := range raw {
		out[i] = r.toLMS()
	}
	logging.FromContext(ctx).Debug().
		Int64("course_id", courseID).
		Int64("assignment_id", assignmentID).
		Int("count", len(out)).
		Msg("Fetched submissions")
	return out, nil
}

// DiscussionEntries lists top-level entries of a discussion topic with their
// recent replies.
func (c *Client) DiscussionEntries(ctx context.Context, courseID, topicID int64) ([]lms.Entry, error) {
	raw, err := getAll[entry](ctx, c, fmt.Sprintf("/courses/%d/discussion_topics/%d/entries", courseID, topicID), nil)
	if err != nil {
		return nil, err
	}
	out := make([]lms.Entry, 0, len(raw))
	for _, r := range raw {
		if r.Deleted {
			continue
		}
		out = append(out, r.toLMS())
	}
	return out, nil
}

// PostGrade sets the grade of a student's submission and attaches an optional
// comment.
func (c *Client) PostGrade(ctx context.Context, courseID, assignmentID, userID int64, update lms.GradeUpdate) error {
	body := gradeRequest{Submission: gradeSubmission{PostedGrade: update.PostedGrade}}
	if update.Comment != "" {
		body.Comment = &gradeComment{TextComment: update.Comment}
	}

	endpoint := c.endpoint(fmt.Sprintf("/courses/%d/assignments/%d/submissions/%d", courseID, assignmentID, userID), nil)
	resp, err := c.transport.Put(ctx, endpoint, body)
	if err != nil {
		return err
	}
	return c.transport.DecodeResponse(resp, nil)
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + apiPrefix + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) getOne(ctx context.Context, path string, q url.Values, target any) error {
	resp, err := c.transport.Get(ctx, c.endpoint(path, q))
	if err != nil {
		return err
	}
	return c.transport.DecodeResponse(resp, target)
}

// getAll follows Link rel="next" headers and returns every page as one slice.
func getAll[T any](ctx context.Context, c *Client, path string, q url.Values) ([]T, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("per_page", strconv.Itoa(c.pageSize))

	var all []T
	next := c.endpoint(path, q)
	for page := 0; next != ""; page++ {
		if page >= c.maxPages {
			return nil, errors.NewAPIError(ProviderName, 0, fmt.Sprintf("pagination exceeded %d pages for %s", c.maxPages, path))
		}
		if err := ctx.Err(); err != nil {
			return nil, &errors.APIError{Provider: ProviderName, Endpoint: path, Message: "request canceled", Err: errors.ErrCanceled}
		}

		resp, err := c.transport.Get(ctx, next)
		if err != nil {
			return nil, err
		}
		var items []T
		if err := c.transport.DecodeResponse(resp, &items); err != nil {
			return nil, err
		}
		all = append(all, items...)
		next = transport.NextLink(resp)
	}
	return all, nil
}
