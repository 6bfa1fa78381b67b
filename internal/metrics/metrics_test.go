package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/internal/grading"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

func TestObserveComparison(t *testing.T) {
	m := NewManager()
	m.ObserveComparison(&reconcile.Result{
		Rows: []reconcile.Row{
			{Status: reconcile.StatusMatch},
			{Status: reconcile.StatusMatch},
			{Status: reconcile.StatusMismatch},
			{Status: reconcile.StatusNotInLocal},
		},
		Matched: 3,
		Skipped: 2,
	})
	m.ObserveComparison(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.comparisonRows.WithLabelValues("MATCH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.comparisonRows.WithLabelValues("MISMATCH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.comparisonRows.WithLabelValues("NOT_IN_LOCAL")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.matched))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.skipped))
}

func TestGradingObserver(t *testing.T) {
	m := NewManager()
	m.ObserveGrade(grading.OutcomeGraded)
	m.ObserveGrade(grading.OutcomeGraded)
	m.ObserveGrade(grading.OutcomeNoSubmission)
	m.ObserveCompletion(1500 * time.Millisecond)
	m.ObservePost(nil)
	m.ObservePost(fmt.Errorf("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.graded.WithLabelValues(grading.OutcomeGraded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graded.WithLabelValues(grading.OutcomeNoSubmission)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gradePosts.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gradePosts.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.llmLatency))
}

func TestWriteTextfile(t *testing.T) {
	m := NewManager()
	m.ObserveGrade(grading.OutcomeGraded)

	path := filepath.Join(t.TempDir(), "textfile", "gradesync.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gradesync_grade_students_total{outcome="graded"} 1`)
	assert.Contains(t, string(data), "gradesync_last_run_timestamp_seconds")
}
