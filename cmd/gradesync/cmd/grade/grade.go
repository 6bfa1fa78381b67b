package grade

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/internal/cmd/cmdutil"
	"github.com/agentstation/gradesync/internal/cmd/emoji"
	"github.com/agentstation/gradesync/internal/cmd/hints"
	"github.com/agentstation/gradesync/internal/cmd/output"
	"github.com/agentstation/gradesync/internal/cmd/prompt"
	"github.com/agentstation/gradesync/internal/cmd/table"
	"github.com/agentstation/gradesync/internal/dataset"
	"github.com/agentstation/gradesync/internal/grading"
	"github.com/agentstation/gradesync/pkg/logging"
)

// Summary is the structured result printed for json and yaml output.
type Summary struct {
	Assignment string             `json:"assignment" yaml:"assignment"`
	Mode       grading.Mode       `json:"mode" yaml:"mode"`
	DryRun     bool               `json:"dry_run" yaml:"dry_run"`
	Sheet      string             `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Students   int                `json:"students_with_work" yaml:"students_with_work"`
	Stopped    bool               `json:"stopped_early" yaml:"stopped_early"`
	Rows       []grading.SheetRow `json:"rows" yaml:"rows"`
	Failed     []string           `json:"failed,omitempty" yaml:"failed,omitempty"`
	Confirmed  bool               `json:"confirmed" yaml:"confirmed"`
	Posted     int                `json:"posted" yaml:"posted"`
	PostFailed []string           `json:"post_failed,omitempty" yaml:"post_failed,omitempty"`
}

// Execute runs a grading pass, exports the sheet, and prints a summary.
func Execute(ctx context.Context, cmd *cobra.Command, app application.Application, flags *Flags) error {
	settings := app.Settings()
	courseID, err := flags.Target.Course(settings)
	if err != nil {
		return err
	}
	assignmentID, err := flags.Target.Assignment(settings)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	cfg := grading.Config{
		CourseID:     courseID,
		AssignmentID: assignmentID,
		DryRun:       flags.DryRun,
		Model:        flags.Model,
		Mode:         grading.ModeReportOnly,
		Limit:        flags.Limit,
	}
	if cfg.Model == "" {
		cfg.Model = settings.Model
	}
	if flags.Commit {
		cfg.Mode = grading.ModeCommit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	defer cmdutil.FlushMetrics(ctx, app)

	client, err := app.LMS()
	if err != nil {
		return err
	}
	model, err := app.LLM()
	if err != nil {
		return err
	}

	grader, err := grading.New(client, model, cfg,
		grading.WithObserver(app.Metrics()),
		grading.WithConfirm(confirmer(cmd, flags.Yes)),
	)
	if err != nil {
		return err
	}

	// A failed write-back still returns the graded rows; export them before
	// reporting the error so no model grades are lost.
	out, runErr := grader.Run(ctx)
	if out == nil {
		return runErr
	}

	summary := Summary{
		Assignment: out.Assignment.Name,
		Mode:       cfg.Mode,
		DryRun:     cfg.DryRun,
		Students:   out.Students,
		Stopped:    out.Stopped,
		Rows:       out.Rows,
		Confirmed:  out.Confirmed,
		Posted:     out.Posted,
	}
	for _, f := range out.Failed {
		summary.Failed = append(summary.Failed, fmt.Sprintf("%s: %v", f.Student, f.Err))
	}
	for _, f := range out.PostFails {
		summary.PostFailed = append(summary.PostFailed, fmt.Sprintf("%s: %v", f.Student, f.Err))
	}

	if len(out.Rows) > 0 {
		path := flags.Output
		if path == "" {
			path = cfg.SheetPath()
		}
		if err := dataset.WriteGradeSheet(path, out.Rows); err != nil {
			return fmt.Errorf("writing grade sheet: %w", err)
		}
		summary.Sheet = path
		logging.FromContext(ctx).Info().Str("file", path).Int("rows", len(out.Rows)).Msg("Grade sheet written")
	}
	if runErr != nil {
		return runErr
	}

	if format != output.FormatTable {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), summary)
	}
	if err := printTable(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	hints.Fprint(cmd.ErrOrStderr(), hints.Default().GetHints(hints.Context{
		Command:      "grade",
		Succeeded:    true,
		CourseID:     courseID,
		AssignmentID: assignmentID,
		Sheet:        summary.Sheet,
		DryRun:       cfg.DryRun,
		Committed:    out.Confirmed,
		Flags:        hints.ChangedFlags(cmd.Flags()),
	}))
	return nil
}

// confirmer returns the write-back prompt. --yes confirms without asking.
func confirmer(cmd *cobra.Command, yes bool) grading.ConfirmFunc {
	return func(_ context.Context, n int) (bool, error) {
		if yes {
			return true, nil
		}
		return prompt.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s Post %d grades and comments to the LMS?", emoji.Warning, n))
	}
}

func printTable(w io.Writer, s Summary) error {
	if s.Stopped {
		label := "Student limit reached"
		if s.DryRun {
			label = "[DRY RUN]"
		}
		output.Fprintf(w, "%s %s Stopped early.\n", emoji.Info, label)
	}
	for _, f := range s.Failed {
		output.Fprintf(w, "%s Error grading %s\n", emoji.Error, f)
	}

	if len(s.Rows) == 0 {
		output.Fprintf(w, "%s No submissions found.\n", emoji.Error)
		return nil
	}

	output.Fprintf(w, "%s Grades exported to: %s\n", emoji.Success, s.Sheet)
	if err := output.NewFormatter(output.FormatTable).Format(w, table.Grades(s.Rows)); err != nil {
		return err
	}

	switch {
	case s.Mode != grading.ModeCommit:
		output.Fprintf(w, "%s Report only, no grades were posted.\n", emoji.Info)
	case !s.Confirmed:
		output.Fprintf(w, "%s Write-back not confirmed, no grades were posted.\n", emoji.Warning)
	default:
		output.Fprintf(w, "%s Posted %d grades.\n", emoji.Success, s.Posted)
		for _, f := range s.PostFailed {
			output.Fprintf(w, "%s Failed to post %s\n", emoji.Error, f)
		}
	}
	return nil
}
