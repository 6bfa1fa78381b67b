package reconcile

import (
	"strconv"
	"strings"
)

// Value is a score as it appeared in its source. It is parsed on demand so a
// non-numeric cell reaches the report verbatim instead of failing the load.
type Value string

// NotAvailable is rendered where a side of the comparison has no value.
const NotAvailable = "N/A"

// Float wraps a numeric score.
func Float(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float64 parses the value. Surrounding whitespace is ignored.
func (v Value) Float64() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
}

// String returns the value as it will be written to a report.
func (v Value) String() string {
	return strings.TrimSpace(string(v))
}

// formatFloat renders a difference without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
