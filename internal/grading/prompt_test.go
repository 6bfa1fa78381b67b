package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	work := &Work{
		Post:    "<p>My name is Ada Lovelace and I picked Grace Hopper.</p>",
		Replies: []string{"Great post! - Ada", "I agree with you"},
	}

	p := BuildPrompt(work, "Ada Lovelace")
	assert.Equal(t, 10, p.WordCount)
	assert.Equal(t, 2, p.Replies)
	assert.Contains(t, p.Text, "STUDENT: [ANONYMOUS]")
	assert.Contains(t, p.Text, "WORD COUNT: 10 words (90+ required)")
	assert.Contains(t, p.Text, "COUNT: 2 replies found (2+ required)")
	assert.Contains(t, p.Text, "My name is [NAME] and I picked Grace Hopper.")
	assert.Contains(t, p.Text, `["Great post! - [NAME]","I agree with you"]`)
	assert.NotContains(t, p.Text, "Lovelace")
}

func TestBuildPromptNilWork(t *testing.T) {
	p := BuildPrompt(nil, "Ada")
	assert.Zero(t, p.WordCount)
	assert.Contains(t, p.Text, "CONTENT: []")
}

func TestParseAssessment(t *testing.T) {
	a, err := ParseAssessment(`{"message_score": 2, "reply_score": 3, "total_score": 5, "feedback": " Message was too short. "}`)
	require.NoError(t, err)
	assert.Equal(t, &Assessment{MessageScore: 2, ReplyScore: 3, TotalScore: 5, Feedback: "Message was too short."}, a)

	a, err = ParseAssessment("```json\n{\"message_score\": 7, \"reply_score\": 3, \"total_score\": 10, \"feedback\": \"Great work\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.TotalScore)
	assert.Empty(t, a.Feedback)

	_, err = ParseAssessment(`{"feedback": "no score"}`)
	assert.Error(t, err)

	_, err = ParseAssessment(`not json`)
	assert.Error(t, err)
}
