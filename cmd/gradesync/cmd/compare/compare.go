package compare

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
	"github.com/agentstation/gradesync/internal/cmd/table"
	"github.com/agentstation/gradesync/internal/dataset"
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/pkg/logging"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

// NoComparisonsMessage explains an empty result.
const NoComparisonsMessage = "No comparisons generated. Check if your local sheet's identifier column matches the LMS SIS IDs."

// Summary is the structured result printed for json and yaml output.
type Summary struct {
	Assignment   string          `json:"assignment" yaml:"assignment"`
	LocalFile    string          `json:"local_file" yaml:"local_file"`
	Report       string          `json:"report,omitempty" yaml:"report,omitempty"`
	LocalRecords int             `json:"local_records" yaml:"local_records"`
	Matched      int             `json:"matched" yaml:"matched"`
	Skipped      int             `json:"skipped" yaml:"skipped"`
	Counts       map[string]int  `json:"counts" yaml:"counts"`
	Duplicates   []string        `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Mismatches   []reconcile.Row `json:"mismatches" yaml:"mismatches"`
}

// Execute runs a comparison and prints its summary.
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
	policy, err := reconcile.ParseDuplicatePolicy(flags.Duplicates)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	ctx = logging.WithAssignment(logging.WithCourse(ctx, courseID), assignmentID)
	logger := logging.FromContext(ctx)
	defer cmdutil.FlushMetrics(ctx, app)

	localPath := flags.localPath(assignmentID)
	logger.Info().Str("file", localPath).Msg("Loading local grades")
	local, err := dataset.LoadLocal(localPath, flags.columns())
	if err != nil {
		return fmt.Errorf("loading local grades: %w", err)
	}
	logger.Info().Int("rows", len(local)).Msg("Loaded local grades")

	client, err := app.LMS()
	if err != nil {
		return err
	}
	assignment, err := client.Assignment(ctx, courseID, assignmentID)
	if err != nil {
		return fmt.Errorf("fetching assignment: %w", err)
	}
	logger.Info().Str("assignment", assignment.Name).Msg("Fetching grades from the LMS")
	subs, err := client.Submissions(ctx, courseID, assignmentID)
	if err != nil {
		return fmt.Errorf("fetching submissions: %w", err)
	}

	result, err := reconcile.Reconcile(ctx, local, lms.RemoteRecords(subs),
		reconcile.WithDuplicatePolicy(policy),
		reconcile.WithSource(localPath),
	)
	if err != nil {
		return err
	}
	app.Metrics().ObserveComparison(result)

	summary := Summary{
		Assignment:   assignment.Name,
		LocalFile:    localPath,
		LocalRecords: result.LocalRecords,
		Matched:      result.Matched,
		Skipped:      result.Skipped,
		Duplicates:   result.Duplicates,
		Mismatches:   result.Mismatches(),
		Counts: map[string]int{
			string(reconcile.StatusMatch):      result.Count(reconcile.StatusMatch),
			string(reconcile.StatusMismatch):   result.Count(reconcile.StatusMismatch),
			string(reconcile.StatusNotInLocal): result.Count(reconcile.StatusNotInLocal),
		},
	}

	if result.Empty() {
		output.Fprintf(cmd.ErrOrStderr(), "%s %s\n", emoji.Error, NoComparisonsMessage)
		if format != output.FormatTable {
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), summary)
		}
		return nil
	}

	if err := dataset.WriteComparison(flags.Output, result.Rows); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	summary.Report = flags.Output
	logger.Info().Str("file", flags.Output).Int("rows", len(result.Rows)).Msg("Comparison report written")

	if format != output.FormatTable {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), summary)
	}
	if err := printTable(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	hints.Fprint(cmd.ErrOrStderr(), hints.Default().GetHints(hints.Context{
		Command:      "compare",
		Succeeded:    true,
		CourseID:     courseID,
		AssignmentID: assignmentID,
		Sheet:        summary.Report,
		Mismatches:   len(summary.Mismatches),
	}))
	return nil
}

func printTable(w io.Writer, s Summary) error {
	output.Fprintf(w, "%s Comparison complete.\n", emoji.Success)
	output.Fprintf(w, "   Matched %d students.\n", s.Matched)
	for _, status := range []reconcile.Status{reconcile.StatusMatch, reconcile.StatusMismatch, reconcile.StatusNotInLocal} {
		output.Fprintf(w, "   %s: %d\n", output.Title(string(status)), s.Counts[string(status)])
	}
	output.Fprintf(w, "   Detailed report saved to: %s\n", s.Report)

	if len(s.Mismatches) == 0 {
		output.Fprintf(w, "\n%s No grade mismatches found among matched students.\n", emoji.Success)
		return nil
	}
	output.Fprintf(w, "\n%s Found %d mismatches:\n", emoji.Warning, len(s.Mismatches))
	return output.NewFormatter(output.FormatTable).Format(w, table.Mismatches(s.Mismatches))
}
