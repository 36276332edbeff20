package classroom

import (
	"time"

	classroomv1 "google.golang.org/api/classroom/v1"
)

type Course struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Section       string `json:"section,omitempty"`
	Room          string `json:"room,omitempty"`
	CourseState   string `json:"courseState,omitempty"`
	AlternateLink string `json:"alternateLink,omitempty"`
}

type Assignment struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	MaxPoints     *float64   `json:"maxPoints,omitempty"`
	CreationTime  *time.Time `json:"creationTime,omitempty"`
	WorkType      string     `json:"workType,omitempty"`
	AlternateLink string     `json:"alternateLink,omitempty"`
}

type SubmissionState string

const (
	StateUnspecified        SubmissionState = "SUBMISSION_STATE_UNSPECIFIED"
	StateNew                SubmissionState = "NEW"
	StateCreated            SubmissionState = "CREATED"
	StateTurnedIn           SubmissionState = "TURNED_IN"
	StateReturned           SubmissionState = "RETURNED"
	StateReclaimedByStudent SubmissionState = "RECLAIMED_BY_STUDENT"
)

type Attachment struct {
	FileID        string `json:"fileId"`
	Title         string `json:"title,omitempty"`
	AlternateLink string `json:"alternateLink,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
}

// Submission is one student's turn-in. AssignedGrade and DraftGrade are nil
// both when no grade is set and when the grade is 0: Classroom omits zero
// grades from its replies, so the two cases cannot be told apart.
type Submission struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	State         SubmissionState `json:"state"`
	AssignedGrade *float64        `json:"assignedGrade,omitempty"`
	DraftGrade    *float64        `json:"draftGrade,omitempty"`
	Late          bool            `json:"late,omitempty"`
	Attachments   []Attachment    `json:"attachments"`
}

// FirstDriveFile returns the first Drive attachment of the submission.
func (s Submission) FirstDriveFile() (Attachment, bool) {
	for _, a := range s.Attachments {
		if a.FileID != "" {
			return a, true
		}
	}
	return Attachment{}, false
}

// FindByUser picks the submission of one student.
func FindByUser(subs []Submission, userID string) (Submission, bool) {
	for _, s := range subs {
		if s.UserID == userID {
			return s, true
		}
	}
	return Submission{}, false
}

func courseFrom(c *classroomv1.Course) Course {
	return Course{
		ID:            c.Id,
		Name:          c.Name,
		Section:       c.Section,
		Room:          c.Room,
		CourseState:   c.CourseState,
		AlternateLink: c.AlternateLink,
	}
}

func assignmentFrom(cw *classroomv1.CourseWork) Assignment {
	a := Assignment{
		ID:            cw.Id,
		Title:         cw.Title,
		Description:   cw.Description,
		WorkType:      cw.WorkType,
		AlternateLink: cw.AlternateLink,
		DueDate:       dueTime(cw.DueDate, cw.DueTime),
	}
	if cw.MaxPoints > 0 {
		p := cw.MaxPoints
		a.MaxPoints = &p
	}
	if t, err := time.Parse(time.RFC3339, cw.CreationTime); err == nil {
		a.CreationTime = &t
	}
	return a
}

func dueTime(d *classroomv1.Date, tod *classroomv1.TimeOfDay) *time.Time {
	if d == nil || d.Year == 0 || d.Month == 0 || d.Day == 0 {
		return nil
	}
	var h, m, s int64
	if tod != nil {
		h, m, s = tod.Hours, tod.Minutes, tod.Seconds
	}
	t := time.Date(int(d.Year), time.Month(d.Month), int(d.Day), int(h), int(m), int(s), 0, time.UTC)
	return &t
}

func submissionFrom(s *classroomv1.StudentSubmission) Submission {
	out := Submission{
		ID:          s.Id,
		UserID:      s.UserId,
		State:       SubmissionState(s.State),
		Late:        s.Late,
		Attachments: []Attachment{},
	}
	if s.AssignedGrade != 0 {
		g := s.AssignedGrade
		out.AssignedGrade = &g
	}
	if s.DraftGrade != 0 {
		g := s.DraftGrade
		out.DraftGrade = &g
	}
	if s.AssignmentSubmission != nil {
		for _, a := range s.AssignmentSubmission.Attachments {
			if a == nil || a.DriveFile == nil {
				continue
			}
			out.Attachments = append(out.Attachments, Attachment{
				FileID:        a.DriveFile.Id,
				Title:         a.DriveFile.Title,
				AlternateLink: a.DriveFile.AlternateLink,
				ThumbnailURL:  a.DriveFile.ThumbnailUrl,
			})
		}
	}
	return out
}
