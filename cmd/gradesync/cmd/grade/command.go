// Package grade implements the grade command: grade a discussion assignment
// with a language model and export the grade sheet.
package grade

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/internal/cmd/cmdutil"
)

// Flags holds grade-specific flags.
type Flags struct {
	Target *cmdutil.TargetFlags
	Model  string
	Commit bool
	Yes    bool
	DryRun bool
	Limit  int
	Output string
}

// NewCommand creates the grade command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "grade",
		GroupID: "core",
		Short:   "Grade a discussion assignment with an LLM",
		Long: `Grade collects every post and reply of a discussion assignment, grades each
student against the rubric with an LLM, and writes the grade sheet to
grades_<assignment>.csv (grades_test.csv for a dry run).

Student names are redacted before anything is sent to the model.

By default nothing is written to the LMS. With --commit the grades and
feedback comments are posted after you confirm; --yes skips the prompt.
A dry run grades at most 15 students and never writes back.`,
		Example: `  gradesync grade --dry-run                # grade 15 students, write grades_test.csv
  gradesync grade                          # grade everyone, report only
  gradesync grade --commit                 # grade and post after confirmation
  gradesync grade --commit --yes           # grade and post without prompting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmdutil.RunContext(cmd, app, "grade"), cmd, app, flags)
		},
	}

	flags.Target = cmdutil.AddTargetFlags(cmd)
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "",
		"model name (default from model config)")
	cmd.Flags().BoolVar(&flags.Commit, "commit", false,
		"post grades and comments to the LMS")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false,
		"do not ask before posting grades")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"grade a sample of students and never write back")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0,
		"maximum number of students to grade (0 = all, 15 for --dry-run)")
	cmd.Flags().StringVar(&flags.Output, "output", "",
		"grade sheet path (default grades_<assignment>.csv)")

	return cmd
}
