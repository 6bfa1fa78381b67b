package grading

import (
	"github.com/agentstation/gradesync/internal/lms"
)

// Work is everything one student contributed to a discussion.
type Work struct {
	// Post is the student's top-level message as HTML.
	Post string
	// Replies are the student's replies to other entries as HTML.
	Replies []string
}

// Empty reports whether the student posted nothing with content.
func (w *Work) Empty() bool {
	return w == nil || (w.Post == "" && len(w.Replies) == 0)
}

// Harvest groups discussion entries by author. A later top-level post from the
// same student replaces an earlier one; replies are credited to the replying
// student, not the entry's author.
func Harvest(entries []lms.Entry) map[int64]*Work {
	work := make(map[int64]*Work)
	get := func(uid int64) *Work {
		w, ok := work[uid]
		if !ok {
			w = &Work{}
			work[uid] = w
		}
		return w
	}

	for _, e := range entries {
		w := get(e.UserID)
		if e.Message != "" {
			w.Post = e.Message
		}
		for _, r := range e.Replies {
			rw := get(r.UserID)
			rw.Replies = append(rw.Replies, r.Message)
		}
	}
	return work
}
