// Package courses implements the courses command: check the LMS connection and
// list the current user's active courses.
package courses

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
	User    lms.User     `json:"user" yaml:"user"`
	Courses []lms.Course `json:"courses" yaml:"courses"`
}

// NewCommand creates the courses command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "courses",
		GroupID: "lms",
		Short:   "Show the logged-in user and their active courses",
		Long: `Courses verifies the LMS URL and token by fetching the current user, then
lists every course with an active enrollment. Use the IDs as --course or
course_id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdutil.RunContext(cmd, app, "courses")

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			format = output.DetectFormat(string(format))

			client, err := app.LMS()
			if err != nil {
				return err
			}
			user, err := client.CurrentUser(ctx)
			if err != nil {
				return fmt.Errorf("connecting to the LMS: %w", err)
			}
			courses, err := client.ActiveCourses(ctx)
			if err != nil {
				return fmt.Errorf("listing courses: %w", err)
			}

			w := cmd.OutOrStdout()
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(w, Result{User: *user, Courses: courses})
			}
			output.Fprintf(w, "Logged in as: %s\n\n", user.Name)
			if err := output.NewFormatter(format).Format(w, table.Courses(courses)); err != nil {
				return err
			}
			hints.Fprint(cmd.ErrOrStderr(), hints.Default().GetHints(hints.Context{Command: "courses", Succeeded: true}))
			return nil
		},
	}
}
