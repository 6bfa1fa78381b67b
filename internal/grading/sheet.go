package grading

import (
	"sort"
	"strings"

	"github.com/agentstation/gradesync/internal/lms"
)

// SheetRow is one line of the exported grade sheet.
type SheetRow struct {
	Student    string  `json:"student" yaml:"student"`
	SISID      string  `json:"sis_id" yaml:"sis_id"`
	TotalScore float64 `json:"total_score" yaml:"total_score"`
	Feedback   string  `json:"feedback" yaml:"feedback"`
	WordCount  int     `json:"word_count" yaml:"word_count"`
}

// Finalize keeps one row per student and orders the sheet by name. Students are
// keyed by SIS ID unless every ID is a synthetic fallback, in which case the
// name is the key. When a student appears twice the higher score wins.
func Finalize(rows []SheetRow) []SheetRow {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]SheetRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})

	key := func(r SheetRow) string { return r.SISID }
	if allFallbackIDs(sorted) {
		key = func(r SheetRow) string { return r.Student }
	}

	seen := make(map[string]bool, len(sorted))
	out := make([]SheetRow, 0, len(sorted))
	for _, r := range sorted {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Student < out[j].Student
	})
	return out
}

func allFallbackIDs(rows []SheetRow) bool {
	for _, r := range rows {
		if !strings.Contains(r.SISID, lms.FallbackIDPrefix) {
			return false
		}
	}
	return true
}
