// Package table converts gradesync results into rows for tabular CLI output.
package table

import (
	"strconv"

	"github.com/agentstation/gradesync/internal/grading"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Mismatches lists MISMATCH rows the way the compare summary shows them.
func Mismatches(rows []reconcile.Row) Data {
	data := Data{
		Headers:         []string{"Student Name", "Local Grade", "Remote Grade", "Difference"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Name, r.Local, r.Remote, r.Difference})
	}
	return data
}

// Comparison lists every row of a reconciliation result.
func Comparison(rows []reconcile.Row) Data {
	data := Data{
		Headers:         []string{"Student Name", "Identifier", "Local Grade", "Remote Grade", "Difference", "Status"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Name, r.ID, r.Local, r.Remote, r.Difference, string(r.Status)})
	}
	return data
}

// Grades lists graded students with their score and feedback.
func Grades(rows []grading.SheetRow) Data {
	data := Data{
		Headers:         []string{"Student", "Total Score", "Feedback"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Student, FormatScore(r.TotalScore), r.Feedback})
	}
	return data
}

// Courses lists courses by ID and name.
func Courses(courses []lms.Course) Data {
	data := Data{
		Headers:         []string{"ID", "Name"},
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
	for _, c := range courses {
		data.Rows = append(data.Rows, []string{strconv.FormatInt(c.ID, 10), c.Name})
	}
	return data
}

// Assignments lists assignments with a DISCUSSION or ASSIGNMENT label.
func Assignments(assignments []lms.Assignment) Data {
	data := Data{
		Headers:         []string{"Type", "ID", "Name"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
	for _, a := range assignments {
		data.Rows = append(data.Rows, []string{AssignmentKind(a), strconv.FormatInt(a.ID, 10), a.Name})
	}
	return data
}

// AssignmentKind labels an assignment DISCUSSION or ASSIGNMENT.
func AssignmentKind(a lms.Assignment) string {
	if a.IsDiscussion() {
		return "DISCUSSION"
	}
	return "ASSIGNMENT"
}

// FormatScore renders a score without trailing zeros.
func FormatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
