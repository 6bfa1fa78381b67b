// Package lmstest provides an in-memory lms.Client for tests.
package lmstest

import (
	"context"
	"sync"

	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/utils/ptr"
	"github.com/agentstation/gradesync/pkg/errors"
)

// Fake serves fixed data and records posted grades. Set an *Err field to make
// the matching call fail.
type Fake struct {
	User       lms.User
	Courses    []lms.Course
	AssignList []lms.Assignment
	Entries    []lms.Entry
	Subs       []lms.Submission
	UserErr    error
	SubsErr    error
	EntriesErr error
	PostErrors map[int64]error

	mu     sync.Mutex
	posted map[int64]lms.GradeUpdate
}

var _ lms.Client = (*Fake)(nil)

// CurrentUser returns f.User.
func (f *Fake) CurrentUser(context.Context) (*lms.User, error) {
	if f.UserErr != nil {
		return nil, f.UserErr
	}
	u := f.User
	return &u, nil
}

// ActiveCourses returns f.Courses.
func (f *Fake) ActiveCourses(context.Context) ([]lms.Course, error) {
	return f.Courses, nil
}

// Course finds a course by ID in f.Courses.
func (f *Fake) Course(_ context.Context, courseID int64) (*lms.Course, error) {
	for _, c := range f.Courses {
		if c.ID == courseID {
			return &c, nil
		}
	}
	return nil, errors.NewAPIError("fake", 404, "course not found")
}

// Assignments returns f.AssignList.
func (f *Fake) Assignments(context.Context, int64) ([]lms.Assignment, error) {
	return f.AssignList, nil
}

// Assignment finds an assignment by ID in f.AssignList.
func (f *Fake) Assignment(_ context.Context, _, assignmentID int64) (*lms.Assignment, error) {
	for _, a := range f.AssignList {
		if a.ID == assignmentID {
			return &a, nil
		}
	}
	return nil, errors.NewAPIError("fake", 404, "assignment not found")
}

// Submissions returns f.Subs.
func (f *Fake) Submissions(context.Context, int64, int64) ([]lms.Submission, error) {
	return f.Subs, f.SubsErr
}

// DiscussionEntries returns f.Entries.
func (f *Fake) DiscussionEntries(context.Context, int64, int64) ([]lms.Entry, error) {
	return f.Entries, f.EntriesErr
}

// PostGrade records the update unless PostErrors has an error for userID.
func (f *Fake) PostGrade(_ context.Context, _, _, userID int64, update lms.GradeUpdate) error {
	if err := f.PostErrors[userID]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.posted == nil {
		f.posted = make(map[int64]lms.GradeUpdate)
	}
	f.posted[userID] = update
	return nil
}

// Posted returns a copy of the recorded grade updates.
func (f *Fake) Posted() map[int64]lms.GradeUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64]lms.GradeUpdate, len(f.posted))
	for k, v := range f.posted {
		out[k] = v
	}
	return out
}

// Submission builds a submission with a user object.
func Submission(userID int64, name, sisID string) lms.Submission {
	return lms.Submission{UserID: userID, HasUser: true, Name: name, SISID: sisID}
}

// Graded builds a submission with a score.
func Graded(userID int64, name, sisID string, score float64) lms.Submission {
	s := Submission(userID, name, sisID)
	s.Score = ptr.To(score)
	return s
}
