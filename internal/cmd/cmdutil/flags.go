// Package cmdutil provides shared flags and run plumbing for gradesync commands.
package cmdutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/logging"
)

// TargetFlags select the course and assignment a command works on.
type TargetFlags struct {
	CourseID     int64
	AssignmentID int64
}

// AddCourseFlag adds --course to a command.
func AddCourseFlag(cmd *cobra.Command) *TargetFlags {
	flags := &TargetFlags{}
	cmd.Flags().Int64VarP(&flags.CourseID, "course", "c", 0,
		"LMS course ID (default from course_id config)")
	return flags
}

// AddTargetFlags adds --course and --assignment to a command.
func AddTargetFlags(cmd *cobra.Command) *TargetFlags {
	flags := AddCourseFlag(cmd)
	cmd.Flags().Int64VarP(&flags.AssignmentID, "assignment", "a", 0,
		"LMS assignment ID (default from assignment_id config)")
	return flags
}

// Course returns the flag value or the configured default.
func (f *TargetFlags) Course(s application.Settings) (int64, error) {
	id := f.CourseID
	if id == 0 {
		id = s.CourseID
	}
	if id <= 0 {
		return 0, errors.NewValidationError("course", id, "set --course or course_id")
	}
	return id, nil
}

// Assignment returns the flag value or the configured default.
func (f *TargetFlags) Assignment(s application.Settings) (int64, error) {
	id := f.AssignmentID
	if id == 0 {
		id = s.AssignmentID
	}
	if id <= 0 {
		return 0, errors.NewValidationError("assignment", id, "set --assignment or assignment_id")
	}
	return id, nil
}

// RunContext attaches the app logger and a fresh run ID to the command
// context, unless the context already carries a run.
func RunContext(cmd *cobra.Command, app application.Application, operation string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if logging.RunID(ctx) == "" {
		ctx = logging.WithLogger(ctx, app.Logger())
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}
	return logging.WithOperation(ctx, operation)
}

// FlushMetrics writes the metrics textfile when one is configured. Failures
// are logged, never returned, so they cannot mask the command's own result.
func FlushMetrics(ctx context.Context, app application.Application) {
	path := app.Settings().MetricsFile
	if path == "" {
		return
	}
	if err := app.Metrics().WriteTextfile(path); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", path).Msg("Failed to write metrics textfile")
		return
	}
	logging.FromContext(ctx).Debug().Str("path", path).Msg("Wrote metrics textfile")
}
