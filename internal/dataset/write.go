package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agentstation/gradesync/internal/grading"
	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

// ComparisonHeader is the header row of the comparison report.
var ComparisonHeader = []string{"Student Name", "Identifier", "Local Grade", "Remote Grade", "Difference", "Status"}

// GradeSheetHeader is the header row of the grade sheet. Its SIS ID and Total
// Score columns are what LoadLocal reads by default.
var GradeSheetHeader = []string{"Student", constants.DefaultIDColumn, constants.DefaultScoreColumn, "Feedback", "Word Count"}

// WriteComparison writes reconciliation rows to path.
func WriteComparison(path string, rows []reconcile.Row) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, ComparisonHeader)
	for _, r := range rows {
		records = append(records, []string{r.Name, r.ID, r.Local, r.Remote, r.Difference, string(r.Status)})
	}
	return writeCSV(path, records)
}

// WriteGradeSheet writes graded rows to path.
func WriteGradeSheet(path string, rows []grading.SheetRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, GradeSheetHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.Student,
			r.SISID,
			strconv.FormatFloat(r.TotalScore, 'f', -1, 64),
			r.Feedback,
			strconv.Itoa(r.WordCount),
		})
	}
	return writeCSV(path, records)
}

// writeCSV writes to a temp file beside path and renames it into place, so a
// failed run never leaves a truncated report.
func writeCSV(path string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		cleanup()
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
