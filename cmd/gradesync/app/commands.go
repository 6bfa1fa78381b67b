package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gradesync/cmd/gradesync/cmd/assignments"
	"github.com/agentstation/gradesync/cmd/gradesync/cmd/compare"
	"github.com/agentstation/gradesync/cmd/gradesync/cmd/courses"
	"github.com/agentstation/gradesync/cmd/gradesync/cmd/grade"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Grading commands
	rootCmd.AddCommand(compare.NewCommand(a))
	rootCmd.AddCommand(grade.NewCommand(a))

	// LMS commands
	rootCmd.AddCommand(courses.NewCommand(a))
	rootCmd.AddCommand(assignments.NewCommand(a))

	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("gradesync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
