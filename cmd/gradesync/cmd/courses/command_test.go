package courses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/cmd/gradesync/cmd/courses"
	mockapp "github.com/agentstation/gradesync/internal/cmd/application"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/lms/lmstest"
	"github.com/agentstation/gradesync/pkg/errors"
)

func run(t *testing.T, client lms.Client, format string) (string, error) {
	t.Helper()
	app := &mockapp.Mock{
		LMSFunc:          func() (lms.Client, error) { return client, nil },
		OutputFormatFunc: func() string { return format },
	}
	cmd := courses.NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func fake() *lmstest.Fake {
	return &lmstest.Fake{
		User: lms.User{ID: 7, Name: "Grace Hopper"},
		Courses: []lms.Course{
			{ID: 3532173, Name: "Intro to Programming", CourseCode: "CPSC-120A"},
			{ID: 3532174, Name: "Data Structures", CourseCode: "CPSC-131"},
		},
	}
}

func TestCourses_Table(t *testing.T) {
	out, err := run(t, fake(), "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as: Grace Hopper")
	assert.Contains(t, out, "3532173")
	assert.Contains(t, out, "Data Structures")
}

func TestCourses_JSON(t *testing.T) {
	out, err := run(t, fake(), "json")
	require.NoError(t, err)

	var result courses.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Grace Hopper", result.User.Name)
	assert.Len(t, result.Courses, 2)
}

func TestCourses_ConnectionFailure(t *testing.T) {
	client := fake()
	client.UserErr = errors.NewAPIError("canvas", 401, "Invalid access token.")

	_, err := run(t, client, "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to the LMS")
	assert.True(t, errors.IsAPIKeyError(err))
}
