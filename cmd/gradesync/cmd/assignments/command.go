// Package assignments implements the assignments command: list the published
// assignments of a course so their IDs can be used with grade and compare.
package assignments

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/internal/cmd/cmdutil"
	"github.com/agentstation/gradesync/internal/cmd/hints"
	"github.com/agentstation/gradesync/internal/cmd/output"
	"github.com/agentstation/gradesync/internal/cmd/table"
	"github.com/agentstation/gradesync/internal/lms"
)

// Result is the structured output for json and yaml.
type Result struct {
	Course      lms.Course       `json:"course" yaml:"course"`
	Assignments []lms.Assignment `json:"assignments" yaml:"assignments"`
}

// NewCommand creates the assignments command.
func NewCommand(app application.Application) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "assignments",
		GroupID: "lms",
		Short:   "List a course's assignments",
		Long: `Assignments lists the published assignments of a course, labelled
DISCUSSION when students submit by posting to a discussion topic (the kind the
grade command works on) and ASSIGNMENT otherwise.`,
		Example: `  gradesync assignments --course 3532173
  gradesync assignments --all -o json`,
		Args: cobra.NoArgs,
	}
	target := cmdutil.AddCourseFlag(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "include unpublished assignments")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmdutil.RunContext(cmd, app, "assignments")

		courseID, err := target.Course(app.Settings())
		if err != nil {
			return err
		}
		format, err := output.ParseFormat(app.OutputFormat())
		if err != nil {
			return err
		}
		format = output.DetectFormat(string(format))

		client, err := app.LMS()
		if err != nil {
			return err
		}
		course, err := client.Course(ctx, courseID)
		if err != nil {
			return fmt.Errorf("fetching course: %w", err)
		}
		list, err := client.Assignments(ctx, courseID)
		if err != nil {
			return fmt.Errorf("listing assignments: %w", err)
		}
		list = Filter(list, all)

		w := cmd.OutOrStdout()
		if format != output.FormatTable {
			return output.NewFormatter(format).Format(w, Result{Course: *course, Assignments: list})
		}
		output.Fprintf(w, "--- Assignments for %s ---\n\n", course.Name)
		if err := output.NewFormatter(format).Format(w, table.Assignments(list)); err != nil {
			return err
		}
		hints.Fprint(cmd.ErrOrStderr(), hints.Default().GetHints(hints.Context{
			Command:   "assignments",
			Succeeded: true,
			CourseID:  courseID,
		}))
		return nil
	}

	return cmd
}

// Filter drops unpublished assignments unless all is set.
func Filter(list []lms.Assignment, all bool) []lms.Assignment {
	if all {
		return list
	}
	out := make([]lms.Assignment, 0, len(list))
	for _, a := range list {
		if a.Published {
			out = append(out, a)
		}
	}
	return out
}
