package grading

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
)

// SystemPrompt is the rubric sent as the system message of every request.
const SystemPrompt = `
You are a grader for CPSC120A, an intro programming class at Cal State Fullerton.
You are grading a discussion about "Computer Scientist of the Week".
Your goal primarily is to grade effort. IF THE WORK IS REASONABLY ATTEMPTED, GIVE IT FULL CREDIT.

### RUBRIC

**PART 1: The Message (Max 7 points)**
- **7 pts (Full):** Thoughtful, well-written, meets minimum length (90+ words).
- **2 pts (Partial):** Too short (< 90 words), or VERY poorly written.
- **0 pts (None):** Missing, extremely short, or egregious errors.

**PART 2: The Responses (Max 3 points)**
- **3 pts (Full):** 2+ well-written replies to different students.
- **1 pts (Partial):** Only 1 reply, OR replies contain egregious errors.
- **0 pts (None):** No replies.

### OUTPUT FORMAT
Return strictly valid JSON:
{
    "message_score": <int>,
    "reply_score": <int>,
    "total_score": <int>,
    "feedback": "<string: ONLY IF total_score IS NOT 10, 1 sentence briefly explaining why points were lost.>"
}
`

// Prompt is the anonymized user message for one student.
type Prompt struct {
	Text      string
	WordCount int
	Replies   int
}

// BuildPrompt redacts the student's name from their work and lays it out with
// the word and reply counts the rubric refers to.
func BuildPrompt(work *Work, name string) Prompt {
	if work == nil {
		work = &Work{}
	}

	post := Redact(work.Post, name)
	replies := make([]string, len(work.Replies))
	for i, r := range work.Replies {
		replies[i] = Redact(r, name)
	}
	repliesJSON, err := json.Marshal(replies)
	if err != nil {
		repliesJSON = []byte("[]")
	}

	words := WordCount(work.Post)
	text := fmt.Sprintf(`
STUDENT: [ANONYMOUS]
--- PART 1: MESSAGE ---
WORD COUNT: %d words (%d+ required)
CONTENT: %s
--- PART 2: RESPONSES ---
COUNT: %d replies found (%d+ required)
CONTENT: %s
`, words, constants.MinWords, post, len(replies), constants.MinReplies, repliesJSON)

	return Prompt{Text: text, WordCount: words, Replies: len(replies)}
}

// Assessment is the model's verdict for one student.
type Assessment struct {
	MessageScore float64 `json:"message_score"`
	ReplyScore   float64 `json:"reply_score"`
	TotalScore   float64 `json:"total_score"`
	Feedback     string  `json:"feedback"`
}

// ParseAssessment decodes the model's JSON reply. A missing total_score is an
// error; feedback on a full-marks assessment is dropped.
func ParseAssessment(raw string) (*Assessment, error) {
	raw = stripCodeFence(raw)

	var wire struct {
		MessageScore *float64 `json:"message_score"`
		ReplyScore   *float64 `json:"reply_score"`
		TotalScore   *float64 `json:"total_score"`
		Feedback     *string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, errors.WrapParse("json", "assessment", err)
	}
	if wire.TotalScore == nil {
		return nil, errors.NewParseError("json", "assessment", "missing total_score", nil)
	}

	a := &Assessment{TotalScore: *wire.TotalScore}
	if wire.MessageScore != nil {
		a.MessageScore = *wire.MessageScore
	}
	if wire.ReplyScore != nil {
		a.ReplyScore = *wire.ReplyScore
	}
	if wire.Feedback != nil {
		a.Feedback = strings.TrimSpace(*wire.Feedback)
	}
	if a.TotalScore >= constants.MaxScore {
		a.Feedback = ""
	}
	return a, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
