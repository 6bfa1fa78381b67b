package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/gradesync/internal/grading"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

func TestMismatches(t *testing.T) {
	data := Mismatches([]reconcile.Row{
		{Name: "Ada", ID: "1", Local: "8", Remote: "10", Difference: "2", Status: reconcile.StatusMismatch},
	})
	assert.Equal(t, []string{"Student Name", "Local Grade", "Remote Grade", "Difference"}, data.Headers)
	assert.Equal(t, [][]string{{"Ada", "8", "10", "2"}}, data.Rows)
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
}

func TestComparison(t *testing.T) {
	data := Comparison([]reconcile.Row{
		{Name: "Bo", ID: "2", Local: "N/A", Remote: "4", Difference: "N/A", Status: reconcile.StatusNotInLocal},
	})
	assert.Equal(t, [][]string{{"Bo", "2", "N/A", "4", "N/A", "NOT_IN_LOCAL"}}, data.Rows)
}

func TestGrades(t *testing.T) {
	data := Grades([]grading.SheetRow{{Student: "Ada", TotalScore: 9.5, Feedback: "One reply short."}})
	assert.Equal(t, [][]string{{"Ada", "9.5", "One reply short."}}, data.Rows)
}

func TestCoursesAndAssignments(t *testing.T) {
	courses := Courses([]lms.Course{{ID: 3532173, Name: "CPSC 120A"}})
	assert.Equal(t, [][]string{{"3532173", "CPSC 120A"}}, courses.Rows)

	assignments := Assignments([]lms.Assignment{
		{ID: 1, Name: "Week 1", SubmissionTypes: []string{"discussion_topic"}},
		{ID: 2, Name: "Lab 1", SubmissionTypes: []string{"online_upload"}},
	})
	assert.Equal(t, [][]string{
		{"DISCUSSION", "1", "Week 1"},
		{"ASSIGNMENT", "2", "Lab 1"},
	}, assignments.Rows)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "10", FormatScore(10))
	assert.Equal(t, "7.25", FormatScore(7.25))
	assert.Equal(t, "0", FormatScore(0))
}
