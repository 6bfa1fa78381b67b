package reconcile

// Status classifies a remote record against the local dataset.
type Status string

const (
	// StatusMatch means both scores are numeric and exactly equal.
	StatusMatch Status = "MATCH"
	// StatusMismatch means the scores differ or could not be compared.
	StatusMismatch Status = "MISMATCH"
	// StatusNotInLocal means the identifier is absent from the local dataset.
	StatusNotInLocal Status = "NOT_IN_LOCAL"
)

// DifferenceError is the Difference of a row whose scores are not both numeric.
const DifferenceError = "Error"

// Row is one line of the comparison report.
type Row struct {
	Name       string `json:"student_name" yaml:"student_name"`
	ID         string `json:"identifier" yaml:"identifier"`
	Local      string `json:"local_grade" yaml:"local_grade"`
	Remote     string `json:"remote_grade" yaml:"remote_grade"`
	Difference string `json:"difference" yaml:"difference"`
	Status     Status `json:"status" yaml:"status"`
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Rows preserve the iteration order of the remote records.
	Rows []Row `json:"rows" yaml:"rows"`
	// Matched counts remote records found in the local dataset, whatever their status.
	Matched int `json:"matched" yaml:"matched"`
	// Skipped counts remote records without a usable identifier.
	Skipped int `json:"skipped" yaml:"skipped"`
	// LocalRecords is the number of distinct local identifiers.
	LocalRecords int `json:"local_records" yaml:"local_records"`
	// Duplicates lists local identifiers that appeared more than once.
	Duplicates []string `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// Empty reports whether no comparable rows were produced.
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Count returns the number of rows with the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == status {
			n++
		}
	}
	return n
}

// Mismatches returns the MISMATCH rows in report order.
func (r *Result) Mismatches() []Row {
	out := []Row{}
	for _, row := range r.Rows {
		if row.Status == StatusMismatch {
			out = append(out, row)
		}
	}
	return out
}
