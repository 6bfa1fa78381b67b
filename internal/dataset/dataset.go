// Package dataset loads local grade sheets and writes the CSV reports gradesync
// produces.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

// Columns names the header cells LoadLocal reads.
type Columns struct {
	ID    string
	Score string
	// Sheet selects an XLSX worksheet; empty means the first sheet.
	Sheet string
}

// DefaultColumns returns the headers of the sheet the grade command writes.
func DefaultColumns() Columns {
	return Columns{
		ID:    constants.DefaultIDColumn,
		Score: constants.DefaultScoreColumn,
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.ID == "" {
		c.ID = d.ID
	}
	if c.Score == "" {
		c.Score = d.Score
	}
	return c
}

// LoadLocal reads the identifier and score columns of a .csv or .xlsx file.
// Data rows are numbered from 2 so Row matches what a spreadsheet shows.
func LoadLocal(path string, cols Columns) ([]reconcile.LocalRecord, error) {
	cols = cols.withDefaults()

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, cols.Sheet)
	case ".csv", ".txt", "":
		rows, err = readCSV(path)
	default:
		return nil, errors.NewValidationError("local", path, fmt.Sprintf("unsupported file type %q (want .csv or .xlsx)", ext))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError("local", path, "file has no header row")
	}

	header := rows[0]
	idCol := columnIndex(header, cols.ID)
	if idCol < 0 {
		return nil, errors.NewValidationError("local", path, fmt.Sprintf("missing identifier column %q", cols.ID))
	}
	scoreCol := columnIndex(header, cols.Score)
	if scoreCol < 0 {
		return nil, errors.NewValidationError("local", path, fmt.Sprintf("missing score column %q", cols.Score))
	}

	records := make([]reconcile.LocalRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		records = append(records, reconcile.LocalRecord{
			ID:    cell(row, idCol),
			Score: reconcile.Value(cell(row, scoreCol)),
			Row:   i + 2,
		})
	}
	return records, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewValidationError("local", path, "workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
