// Package compare implements the compare command: reconcile a local grade sheet
// against the grades recorded in the LMS.
package compare

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/gradesync/cmd/application"
	"github.com/agentstation/gradesync/internal/cmd/cmdutil"
	"github.com/agentstation/gradesync/internal/dataset"
	"github.com/agentstation/gradesync/pkg/constants"
)

// Flags holds compare-specific flags.
type Flags struct {
	Target      *cmdutil.TargetFlags
	Local       string
	Output      string
	Duplicates  string
	IDColumn    string
	ScoreColumn string
	Sheet       string
}

// NewCommand creates the compare command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "compare",
		GroupID: "core",
		Short:   "Compare a local grade sheet with LMS grades",
		Long: `Compare loads a local grade sheet (CSV or XLSX), fetches every submission of
the assignment from the LMS, and classifies each student:

  MATCH         both scores are numeric and equal
  MISMATCH      the scores differ, or one of them is not a number
  NOT_IN_LOCAL  the student's identifier is missing from the local sheet

Submissions without an identifier are skipped. The full report is written to
--output; mismatches are printed.`,
		Example: `  gradesync compare                                  # grades_<assignment>.csv vs LMS
  gradesync compare --local grades.xlsx --sheet Final
  gradesync compare --duplicates error -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmdutil.RunContext(cmd, app, "compare"), cmd, app, flags)
		},
	}

	flags.Target = cmdutil.AddTargetFlags(cmd)
	cmd.Flags().StringVarP(&flags.Local, "local", "l", "",
		"local grade sheet, .csv or .xlsx (default grades_<assignment>.csv)")
	cmd.Flags().StringVar(&flags.Output, "output", constants.DefaultComparisonFile,
		"path of the comparison report")
	cmd.Flags().StringVar(&flags.Duplicates, "duplicates", "last",
		"duplicate identifiers in the local sheet: last, first, error")
	cmd.Flags().StringVar(&flags.IDColumn, "id-column", constants.DefaultIDColumn,
		"header of the identifier column")
	cmd.Flags().StringVar(&flags.ScoreColumn, "score-column", constants.DefaultScoreColumn,
		"header of the score column")
	cmd.Flags().StringVar(&flags.Sheet, "sheet", "",
		"worksheet to read from an .xlsx file (default first sheet)")

	return cmd
}

func (f *Flags) localPath(assignmentID int64) string {
	if f.Local != "" {
		return f.Local
	}
	return fmt.Sprintf("grades_%d.csv", assignmentID)
}

func (f *Flags) columns() dataset.Columns {
	return dataset.Columns{ID: f.IDColumn, Score: f.ScoreColumn, Sheet: f.Sheet}
}
