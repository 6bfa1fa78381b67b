package lms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/gradesync/pkg/reconcile"
)

func TestAssignmentIsDiscussion(t *testing.T) {
	assert.True(t, Assignment{SubmissionTypes: []string{"discussion_topic"}}.IsDiscussion())
	assert.False(t, Assignment{SubmissionTypes: []string{"online_upload", "online_text_entry"}}.IsDiscussion())
	assert.False(t, Assignment{}.IsDiscussion())
}

func TestSubmissionStudentID(t *testing.T) {
	assert.Equal(t, "884512345", Submission{UserID: 7, SISID: "884512345", LoginID: "jdoe"}.StudentID())
	assert.Equal(t, "jdoe", Submission{UserID: 7, LoginID: "jdoe"}.StudentID())
	assert.Equal(t, "CANVAS_7", Submission{UserID: 7}.StudentID())
}

func TestSubmissionDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Submission{UserID: 1, Name: "Ada Lovelace"}.DisplayName())
	assert.Equal(t, "User 1", Submission{UserID: 1}.DisplayName())
}

func TestRemoteRecords(t *testing.T) {
	score := 7.5
	subs := []Submission{
		{UserID: 1, HasUser: true, Name: "A", SISID: "100", Score: &score},
		{UserID: 2, HasUser: true, Name: "B"},
		{UserID: 3},
	}

	recs := RemoteRecords(subs)
	assert.Equal(t, []reconcile.RemoteRecord{
		{ID: "100", Name: "A", Score: reconcile.Value("7.5")},
		{ID: "", Name: "B", Score: ""},
	}, recs)
}
