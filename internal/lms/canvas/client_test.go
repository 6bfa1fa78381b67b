package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "secret-token")
	require.NoError(t, err)
	return c
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "token")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = NewClient("not a url", "token")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = NewClient("https://canvas.example.edu", "")
	assert.True(t, errors.IsAPIKeyError(err))

	_, err = NewClient("https://canvas.example.edu", "token", WithPageSize(0))
	assert.True(t, errors.IsValidationError(err))
}

func TestNewClientTrimsAPIPrefix(t *testing.T) {
	c, err := NewClient("https://canvas.example.edu/api/v1/", "token")
	require.NoError(t, err)
	assert.Equal(t, "https://canvas.example.edu/api/v1/users/self", c.endpoint("/users/self", nil))
}

func TestCurrentUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/self", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": 42, "name": "Prof. Turing", "login_id": "aturing"}`)
	})

	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &lms.User{ID: 42, Name: "Prof. Turing", LoginID: "aturing"}, u)
}

func TestSubmissionsPaginates(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses/10/assignments/20/submissions", r.URL.Path)
		assert.Equal(t, "user", r.URL.Query().Get("include[]"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?include[]=user&per_page=100&page=2>; rel="next"`, server.URL, r.URL.Path))
			fmt.Fprint(w, `[
				{"id": 1, "user_id": 7, "score": 9.5, "user": {"id": 7, "name": "Ada", "sis_user_id": "884512345", "login_id": "ada"}},
				{"id": 2, "user_id": 8, "score": null, "user": {"id": 8, "name": "Bob", "sis_user_id": null}}
			]`)
		case "2":
			fmt.Fprint(w, `[{"id": 3, "user_id": 9, "score": 4}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "token")
	require.NoError(t, err)

	subs, err := c.Submissions(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.True(t, subs[0].HasUser)
	assert.Equal(t, "884512345", subs[0].SISID)
	require.NotNil(t, subs[0].Score)
	assert.Equal(t, 9.5, *subs[0].Score)

	assert.True(t, subs[1].HasUser)
	assert.Empty(t, subs[1].SISID)
	assert.Nil(t, subs[1].Score)
	assert.Equal(t, "CANVAS_8", subs[1].StudentID())

	assert.False(t, subs[2].HasUser)
}

func TestAssignmentsMapsDiscussionTopic(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses/10/assignments", r.URL.Path)
		fmt.Fprint(w, `[
			{"id": 1, "name": "Week 1 Discussion", "published": true, "submission_types": ["discussion_topic"], "discussion_topic": {"id": 555}},
			{"id": 2, "name": "Lab 1", "published": false, "submission_types": ["online_upload"], "points_possible": 20}
		]`)
	})

	as, err := c.Assignments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.True(t, as[0].IsDiscussion())
	assert.Equal(t, int64(555), as[0].DiscussionTopicID)
	assert.False(t, as[1].Published)
	assert.Equal(t, 20.0, as[1].PointsPossible)
}

func TestDiscussionEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses/10/discussion_topics/555/entries", r.URL.Path)
		fmt.Fprint(w, `[
			{"id": 1, "user_id": 7, "message": "<p>Grace Hopper</p>", "recent_replies": [
				{"user_id": 8, "message": "<p>Nice pick</p>"},
				{"user_id": 9, "deleted": true}
			]},
			{"id": 2, "user_id": 10, "deleted": true}
		]`)
	})

	entries, err := c.DiscussionEntries(context.Background(), 10, 555)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].UserID)
	assert.Equal(t, []lms.Reply{{UserID: 8, Message: "<p>Nice pick</p>"}}, entries[0].Replies)
}

func TestPostGrade(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/courses/10/assignments/20/submissions/7", r.URL.Path)

		var body map[string]map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "8", body["submission"]["posted_grade"])
		assert.Equal(t, "Add one more reply.", body["comment"]["text_comment"])
		fmt.Fprint(w, `{"id": 1}`)
	})

	err := c.PostGrade(context.Background(), 10, 20, 7, lms.GradeUpdate{PostedGrade: "8", Comment: "Add one more reply."})
	require.NoError(t, err)
}

func TestAPIErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/courses/1":
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"errors":[{"message":"The specified resource does not exist."}]}`)
		case "/api/v1/users/self":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			fmt.Fprint(w, `not json`)
		}
	})
	ctx := context.Background()

	_, err := c.Course(ctx, 1)
	assert.True(t, errors.IsNotFound(err))
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ProviderName, apiErr.Provider)

	_, err = c.CurrentUser(ctx)
	assert.True(t, errors.IsAPIKeyError(err))

	_, err = c.ActiveCourses(ctx)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
