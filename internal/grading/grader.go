// Package grading grades a discussion-board assignment with a language model.
// A run harvests every post and reply, grades each submission from an
// anonymized prompt, and optionally posts the grades back to the LMS once the
// operator confirms.
package grading

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/agentstation/gradesync/internal/llm"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/logging"
)

// Feedback given when a student has nothing to grade.
const (
	FeedbackNoSubmission = "No submission found."
	FeedbackNoContent    = "No content found."
)

// Outcome labels reported to an Observer.
const (
	OutcomeGraded       = "graded"
	OutcomeNoSubmission = "no_submission"
	OutcomeNoContent    = "no_content"
	OutcomeFailed       = "failed"
)

// ConfirmFunc asks the operator whether to post n grades. Returning false
// leaves the LMS untouched.
type ConfirmFunc func(ctx context.Context, n int) (bool, error)

// Observer receives run statistics. internal/metrics implements it.
type Observer interface {
	ObserveGrade(outcome string)
	ObserveCompletion(d time.Duration)
	ObservePost(err error)
}

type nopObserver struct{}

func (nopObserver) ObserveGrade(string)             {}
func (nopObserver) ObserveCompletion(time.Duration) {}
func (nopObserver) ObservePost(error)               {}

// Grader runs one grading pass.
type Grader struct {
	lms      lms.Client
	model    llm.Client
	cfg      Config
	confirm  ConfirmFunc
	observer Observer
}

// Option configures a Grader.
type Option func(*Grader) error

// WithConfirm sets the confirmation prompt used before committing grades.
func WithConfirm(fn ConfirmFunc) Option {
	return func(g *Grader) error {
		g.confirm = fn
		return nil
	}
}

// WithObserver reports run statistics to o.
func WithObserver(o Observer) Option {
	return func(g *Grader) error {
		if o == nil {
			return errors.NewValidationError("observer", nil, "must not be nil")
		}
		g.observer = o
		return nil
	}
}

// New validates cfg and returns a Grader.
func New(client lms.Client, model llm.Client, cfg Config, opts ...Option) (*Grader, error) {
	if client == nil {
		return nil, errors.NewValidationError("lms", nil, "client is required")
	}
	if model == nil {
		return nil, errors.NewValidationError("llm", nil, "client is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Grader{
		lms:      client,
		model:    model,
		cfg:      cfg,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.cfg.Mode == ModeCommit && g.confirm == nil {
		return nil, errors.NewValidationError("confirm", nil, "commit mode requires a confirmation prompt")
	}
	return g, nil
}

// Config returns the validated configuration.
func (g *Grader) Config() Config {
	return g.cfg
}

// PendingGrade is a grade waiting to be posted to the LMS.
type PendingGrade struct {
	UserID  int64
	Student string
	Update  lms.GradeUpdate
}

// StudentError records a student whose grading failed and was skipped.
type StudentError struct {
	UserID  int64
	Student string
	Err     error
}

// Outcome summarizes a grading run.
type Outcome struct {
	Assignment lms.Assignment
	// Students is the number of students with a discussion post or reply.
	Students int
	// Rows are the deduplicated sheet rows, ordered by student name.
	Rows    []SheetRow
	Pending []PendingGrade
	Failed  []StudentError
	// Stopped is true when the run hit its student limit.
	Stopped   bool
	Confirmed bool
	Posted    int
	PostFails []StudentError
}

// Run grades every submission of the configured assignment.
func (g *Grader) Run(ctx context.Context) (*Outcome, error) {
	ctx = logging.WithAssignment(logging.WithCourse(ctx, g.cfg.CourseID), g.cfg.AssignmentID)
	logger := logging.FromContext(ctx)

	assignment, err := g.lms.Assignment(ctx, g.cfg.CourseID, g.cfg.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("fetching assignment: %w", err)
	}
	if !assignment.IsDiscussion() || assignment.DiscussionTopicID == 0 {
		return nil, errors.NewValidationError("assignment_id", g.cfg.AssignmentID,
			fmt.Sprintf("%q is not a discussion assignment", assignment.Name))
	}

	logger.Info().Str("assignment", assignment.Name).Msg("Scanning discussion thread")
	entries, err := g.lms.DiscussionEntries(ctx, g.cfg.CourseID, assignment.DiscussionTopicID)
	if err != nil {
		return nil, fmt.Errorf("harvesting discussion: %w", err)
	}
	work := Harvest(entries)
	logger.Info().Int("students", len(work)).Msg("Indexed posts and replies")

	subs, err := g.lms.Submissions(ctx, g.cfg.CourseID, g.cfg.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("fetching submissions: %w", err)
	}

	out := &Outcome{Assignment: *assignment, Students: len(work)}
	var rows []SheetRow
	limit := g.cfg.EffectiveLimit()

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrCanceled
		}
		if limit > 0 && len(rows) >= limit {
			out.Stopped = true
			logger.Info().Int("limit", limit).Msg("Student limit reached, stopping early")
			break
		}

		row, pending, err := g.gradeOne(ctx, sub, work[sub.UserID])
		if err != nil {
			g.observer.ObserveGrade(OutcomeFailed)
			logger.Error().Err(err).Int64("user_id", sub.UserID).Msg("Grading failed, skipping student")
			out.Failed = append(out.Failed, StudentError{UserID: sub.UserID, Student: sub.DisplayName(), Err: err})
			continue
		}
		rows = append(rows, row)
		out.Pending = append(out.Pending, pending)
	}

	out.Rows = Finalize(rows)

	if g.cfg.Mode == ModeCommit && !g.cfg.DryRun && len(out.Pending) > 0 {
		if err := g.commit(ctx, out); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (g *Grader) gradeOne(ctx context.Context, sub lms.Submission, work *Work) (SheetRow, PendingGrade, error) {
	name := sub.DisplayName()
	logger := logging.FromContext(ctx).With().Str("student", name).Logger()

	row := SheetRow{Student: name, SISID: sub.StudentID()}
	zero := func(feedback, outcome string) (SheetRow, PendingGrade, error) {
		row.Feedback = feedback
		g.observer.ObserveGrade(outcome)
		logger.Info().Msgf("%s (0/10)", feedback)
		return row, PendingGrade{
			UserID:  sub.UserID,
			Student: name,
			Update:  lms.GradeUpdate{PostedGrade: "0", Comment: feedback},
		}, nil
	}

	switch {
	case work == nil:
		return zero(FeedbackNoSubmission, OutcomeNoSubmission)
	case work.Empty():
		return zero(FeedbackNoContent, OutcomeNoContent)
	}

	prompt := BuildPrompt(work, sub.Name)
	logger.Info().Int("words", prompt.WordCount).Int("replies", prompt.Replies).Msg("Grading")

	start := time.Now()
	raw, err := g.model.Complete(ctx, llm.Request{
		Model:       g.cfg.Model,
		System:      SystemPrompt,
		User:        prompt.Text,
		Temperature: 0,
		JSON:        true,
	})
	g.observer.ObserveCompletion(time.Since(start))
	if err != nil {
		return SheetRow{}, PendingGrade{}, err
	}

	a, err := ParseAssessment(raw)
	if err != nil {
		return SheetRow{}, PendingGrade{}, err
	}

	row.TotalScore = a.TotalScore
	row.Feedback = a.Feedback
	row.WordCount = prompt.WordCount
	g.observer.ObserveGrade(OutcomeGraded)

	return row, PendingGrade{
		UserID:  sub.UserID,
		Student: name,
		Update: lms.GradeUpdate{
			PostedGrade: strconv.FormatFloat(a.TotalScore, 'f', -1, 64),
			Comment:     a.Feedback,
		},
	}, nil
}

// commit confirms with the operator and posts every pending grade. A failed
// post is recorded and the remaining grades are still posted.
func (g *Grader) commit(ctx context.Context, out *Outcome) error {
	logger := logging.FromContext(ctx)

	ok, err := g.confirm(ctx, len(out.Pending))
	if err != nil {
		return fmt.Errorf("confirming grade write-back: %w", err)
	}
	if !ok {
		logger.Warn().Int("pending", len(out.Pending)).Msg("Write-back not confirmed, no grades posted")
		return nil
	}
	out.Confirmed = true

	for _, p := range out.Pending {
		if err := ctx.Err(); err != nil {
			return errors.ErrCanceled
		}
		err := g.lms.PostGrade(ctx, g.cfg.CourseID, g.cfg.AssignmentID, p.UserID, p.Update)
		g.observer.ObservePost(err)
		if err != nil {
			logger.Error().Err(err).Str("student", p.Student).Msg("Posting grade failed")
			out.PostFails = append(out.PostFails, StudentError{UserID: p.UserID, Student: p.Student, Err: err})
			continue
		}
		out.Posted++
	}
	logger.Info().Int("posted", out.Posted).Int("failed", len(out.PostFails)).Msg("Grades posted")
	return nil
}
