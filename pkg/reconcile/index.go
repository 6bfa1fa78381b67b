package reconcile

import (
	"github.com/agentstation/gradesync/pkg/errors"
)

// LocalRecord is one row of the authoritative local grade sheet.
type LocalRecord struct {
	// ID is the raw identifier cell; it is normalized when indexed.
	ID string
	// Score is the raw score cell.
	Score Value
	// Row is the 1-based source row, used in duplicate diagnostics.
	Row int
}

// Index maps normalized identifiers to local records. It is built once per
// run and never mutated afterwards.
type Index struct {
	records    map[string]LocalRecord
	duplicates []string
}

// NewIndex normalizes every local identifier and indexes the records.
// Rows whose identifier normalizes to "" are ignored.
func NewIndex(records []LocalRecord, policy DuplicatePolicy, source string) (*Index, error) {
	idx := &Index{records: make(map[string]LocalRecord, len(records))}

	for _, rec := range records {
		id := NormalizeLocalID(rec.ID)
		if id == "" {
			continue
		}
		rec.ID = id

		prev, exists := idx.records[id]
		if !exists {
			idx.records[id] = rec
			continue
		}

		idx.duplicates = append(idx.duplicates, id)
		switch policy {
		case FirstWins:
			// keep prev
		case RejectDuplicates:
			return nil, &errors.DuplicateError{Source: source, ID: id, Rows: []int{prev.Row, rec.Row}}
		default:
			idx.records[id] = rec
		}
	}

	return idx, nil
}

// Lookup returns the local record for a normalized identifier.
func (idx *Index) Lookup(id string) (LocalRecord, bool) {
	rec, ok := idx.records[id]
	return rec, ok
}

// Len returns the number of distinct identifiers.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Duplicates returns identifiers seen more than once, in encounter order.
func (idx *Index) Duplicates() []string {
	return idx.duplicates
}
