// Package lms defines the data-transfer types gradesync reads from and writes
// to a learning-management system. Clients populate these once at the API
// boundary; grading and reconciliation code only ever sees these structs.
package lms

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/agentstation/gradesync/pkg/reconcile"
)

// FallbackIDPrefix marks a student identifier synthesized from the LMS user ID
// because neither an SIS ID nor a login ID was available.
const FallbackIDPrefix = "CANVAS_"

// Client is the subset of LMS operations gradesync uses.
type Client interface {
	CurrentUser(ctx context.Context) (*User, error)
	ActiveCourses(ctx context.Context) ([]Course, error)
	Course(ctx context.Context, courseID int64) (*Course, error)
	Assignments(ctx context.Context, courseID int64) ([]Assignment, error)
	Assignment(ctx context.Context, courseID, assignmentID int64) (*Assignment, error)
	Submissions(ctx context.Context, courseID, assignmentID int64) ([]Submission, error)
	DiscussionEntries(ctx context.Context, courseID, topicID int64) ([]Entry, error)
	PostGrade(ctx context.Context, courseID, assignmentID, userID int64, update GradeUpdate) error
}

// User is an LMS account.
type User struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	SISUserID string `json:"sis_user_id,omitempty" yaml:"sis_user_id,omitempty"`
	LoginID   string `json:"login_id,omitempty" yaml:"login_id,omitempty"`
}

// Course is a course the current user is enrolled in.
type Course struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	CourseCode string `json:"course_code,omitempty" yaml:"course_code,omitempty"`
}

// Assignment is a gradable item in a course.
type Assignment struct {
	ID                int64    `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Published         bool     `json:"published" yaml:"published"`
	SubmissionTypes   []string `json:"submission_types" yaml:"submission_types"`
	DiscussionTopicID int64    `json:"discussion_topic_id,omitempty" yaml:"discussion_topic_id,omitempty"`
	PointsPossible    float64  `json:"points_possible" yaml:"points_possible"`
}

// IsDiscussion reports whether students submit by posting to a discussion topic.
func (a Assignment) IsDiscussion() bool {
	return slices.Contains(a.SubmissionTypes, "discussion_topic")
}

// Submission is one student's submission record for an assignment.
type Submission struct {
	UserID int64
	// HasUser is false when the LMS omitted the user object.
	HasUser bool
	Name    string
	SISID   string
	LoginID string
	// Score is nil when the submission is ungraded.
	Score *float64
}

// DisplayName returns the student's name, or a placeholder built from the user ID.
func (s Submission) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("User %d", s.UserID)
}

// StudentID returns the SIS ID, falling back to the login ID and then to a
// synthetic FallbackIDPrefix identifier.
func (s Submission) StudentID() string {
	switch {
	case s.SISID != "":
		return s.SISID
	case s.LoginID != "":
		return s.LoginID
	default:
		return FallbackIDPrefix + strconv.FormatInt(s.UserID, 10)
	}
}

// RemoteRecord converts the submission for reconciliation. ok is false when
// the submission carries no user and must be ignored.
func (s Submission) RemoteRecord() (reconcile.RemoteRecord, bool) {
	if !s.HasUser {
		return reconcile.RemoteRecord{}, false
	}
	rec := reconcile.RemoteRecord{
		ID:   s.SISID,
		Name: s.Name,
	}
	if s.Score != nil {
		rec.Score = reconcile.Float(*s.Score)
	}
	return rec, true
}

// RemoteRecords converts submissions, dropping those without a user.
func RemoteRecords(subs []Submission) []reconcile.RemoteRecord {
	out := make([]reconcile.RemoteRecord, 0, len(subs))
	for _, s := range subs {
		if rec, ok := s.RemoteRecord(); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Entry is a top-level discussion post together with the replies the LMS
// returned alongside it.
type Entry struct {
	ID      int64
	UserID  int64
	Message string
	Replies []Reply
}

// Reply is a reply to a discussion entry.
type Reply struct {
	UserID  int64
	Message string
}

// GradeUpdate is a grade and optional comment to post back to a submission.
type GradeUpdate struct {
	PostedGrade string
	Comment     string
}
