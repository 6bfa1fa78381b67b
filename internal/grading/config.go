package grading

import (
	"fmt"

	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
)

// Mode controls whether grades are written back to the LMS.
type Mode string

const (
	// ModeReportOnly grades and exports but never writes to the LMS.
	ModeReportOnly Mode = "report-only"
	// ModeCommit posts every grade and comment after confirmation.
	ModeCommit Mode = "commit"
)

// Config is everything one grading run needs to know.
type Config struct {
	CourseID     int64
	AssignmentID int64
	// DryRun grades at most constants.DryRunLimit students and never writes back.
	DryRun bool
	Model  string
	Mode   Mode
	// Limit caps the number of graded students; 0 means no cap outside a dry run.
	Limit int
}

// Validate fills defaults and rejects inconsistent settings.
func (c *Config) Validate() error {
	if c.CourseID <= 0 {
		return errors.NewValidationError("course_id", c.CourseID, "must be a positive course ID")
	}
	if c.AssignmentID <= 0 {
		return errors.NewValidationError("assignment_id", c.AssignmentID, "must be a positive assignment ID")
	}
	if c.Model == "" {
		c.Model = constants.DefaultModel
	}
	switch c.Mode {
	case "":
		c.Mode = ModeReportOnly
	case ModeReportOnly, ModeCommit:
	default:
		return errors.NewValidationError("mode", c.Mode, "must be report-only or commit")
	}
	if c.DryRun && c.Mode == ModeCommit {
		return errors.NewValidationError("mode", c.Mode, "a dry run cannot commit grades")
	}
	if c.Limit < 0 {
		return errors.NewValidationError("limit", c.Limit, "must not be negative")
	}
	return nil
}

// EffectiveLimit returns the number of students to grade, 0 meaning all.
func (c Config) EffectiveLimit() int {
	if c.Limit > 0 {
		return c.Limit
	}
	if c.DryRun {
		return constants.DryRunLimit
	}
	return 0
}

// SheetPath is the file name the grade sheet is exported to.
func (c Config) SheetPath() string {
	if c.DryRun {
		return constants.DryRunGradeFile
	}
	return fmt.Sprintf("grades_%d.csv", c.AssignmentID)
}
