package canvas

import (
	"github.com/agentstation/gradesync/internal/lms"
	"github.com/agentstation/gradesync/internal/utils/ptr"
)

// Wire shapes as Canvas returns them. Optional fields are pointers so that a
// JSON null and a missing key both decode to the zero DTO value.

type user struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	SISUserID *string `json:"sis_user_id"`
	LoginID   *string `json:"login_id"`
}

func (u user) toLMS() lms.User {
	return lms.User{
		ID:        u.ID,
		Name:      u.Name,
		SISUserID: ptr.Deref(u.SISUserID),
		LoginID:   ptr.Deref(u.LoginID),
	}
}

type course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

func (c course) toLMS() lms.Course {
	return lms.Course{ID: c.ID, Name: c.Name, CourseCode: c.CourseCode}
}

type assignment struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Published       bool     `json:"published"`
	SubmissionTypes []string `json:"submission_types"`
	PointsPossible  *float64 `json:"points_possible"`
	DiscussionTopic *struct {
		ID int64 `json:"id"`
	} `json:"discussion_topic"`
}

func (a assignment) toLMS() lms.Assignment {
	out := lms.Assignment{
		ID:              a.ID,
		Name:            a.Name,
		Published:       a.Published,
		SubmissionTypes: a.SubmissionTypes,
		PointsPossible:  ptr.Deref(a.PointsPossible),
	}
	if a.DiscussionTopic != nil {
		out.DiscussionTopicID = a.DiscussionTopic.ID
	}
	return out
}

type submission struct {
	ID     int64    `json:"id"`
	UserID int64    `json:"user_id"`
	Score  *float64 `json:"score"`
	User   *user    `json:"user"`
}

func (s submission) toLMS() lms.Submission {
	out := lms.Submission{
		UserID: s.UserID,
		Score:  s.Score,
	}
	if s.User != nil {
		out.HasUser = true
		out.Name = s.User.Name
		out.SISID = ptr.Deref(s.User.SISUserID)
		out.LoginID = ptr.Deref(s.User.LoginID)
		if out.UserID == 0 {
			out.UserID = s.User.ID
		}
	}
	return out
}

type reply struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

type entry struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Message       string  `json:"message"`
	Deleted       bool    `json:"deleted"`
	RecentReplies []reply `json:"recent_replies"`
}

func (e entry) toLMS() lms.Entry {
	out := lms.Entry{
		ID:      e.ID,
		UserID:  e.UserID,
		Message: e.Message,
	}
	for _, r := range e.RecentReplies {
		if r.Deleted {
			continue
		}
		out.Replies = append(out.Replies, lms.Reply{UserID: r.UserID, Message: r.Message})
	}
	return out
}

type gradeRequest struct {
	Submission gradeSubmission `json:"submission"`
	Comment    *gradeComment   `json:"comment,omitempty"`
}

type gradeSubmission struct {
	PostedGrade string `json:"posted_grade"`
}

type gradeComment struct {
	TextComment string `json:"text_comment"`
}
