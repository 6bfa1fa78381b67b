// Package reconcile compares an authoritative local grade sheet against the
// grades recorded in the LMS. Every remote record with a usable identifier
// produces one row classified as MATCH, MISMATCH, or NOT_IN_LOCAL; the pass is
// sequential and deterministic, so the same inputs always yield the same rows.
package reconcile

import (
	"context"

	"github.com/agentstation/gradesync/pkg/logging"
)

// RemoteRecord is one submission as reported by the LMS, already flattened
// into a plain struct at the API boundary.
type RemoteRecord struct {
	// ID is the student identifier; empty when the LMS has none.
	ID string
	// Name is the student's display name.
	Name string
	// Score is the LMS score; empty means ungraded and is compared as 0.
	Score Value
}

// Reconcile indexes the local records and classifies every remote record.
// It fails only when the local dataset cannot be indexed; numeric conversion
// problems are contained to the affected row.
func Reconcile(ctx context.Context, local []LocalRecord, remote []RemoteRecord, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	idx, err := NewIndex(local, o.duplicates, o.source)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	if dups := idx.Duplicates(); len(dups) > 0 {
		logger.Warn().
			Strs("identifiers", dups).
			Str("policy", string(o.duplicates)).
			Msg("Duplicate identifiers in local dataset")
	}

	result := &Result{
		Rows:         make([]Row, 0, len(remote)),
		LocalRecords: idx.Len(),
		Duplicates:   idx.Duplicates(),
	}

	for _, rec := range remote {
		id := NormalizeRemoteID(rec.ID)
		if !usableRemoteID(id) {
			result.Skipped++
			logger.Debug().Str("student", rec.Name).Msg("Skipping submission without identifier")
			continue
		}

		remoteScore := rec.Score
		if remoteScore.String() == "" {
			remoteScore = Float(0)
		}

		localRec, found := idx.Lookup(id)
		if !found {
			result.Rows = append(result.Rows, Row{
				Name:       rec.Name,
				ID:         id,
				Local:      NotAvailable,
				Remote:     remoteScore.String(),
				Difference: NotAvailable,
				Status:     StatusNotInLocal,
			})
			continue
		}

		result.Matched++
		row := compare(rec.Name, id, localRec.Score, remoteScore)
		if row.Difference == DifferenceError {
			logger.Warn().
				Str("identifier", id).
				Str("local", localRec.Score.String()).
				Str("remote", remoteScore.String()).
				Msg("Non-numeric score")
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// compare builds the row for a record present on both sides.
func compare(name, id string, local, remote Value) Row {
	row := Row{
		Name:   name,
		ID:     id,
		Local:  local.String(),
		Remote: remote.String(),
		Status: StatusMismatch,
	}

	l, lerr := local.Float64()
	r, rerr := remote.Float64()
	if lerr != nil || rerr != nil {
		row.Difference = DifferenceError
		return row
	}

	diff := r - l
	row.Difference = formatFloat(diff)
	if diff == 0 {
		row.Status = StatusMatch
	}
	return row
}
