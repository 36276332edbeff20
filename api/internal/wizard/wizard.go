package wizard

import (
	"net/url"
	"strings"
)

type Step int

const (
	Connect Step = iota
	SelectCourse
	SelectAssignment
	SelectSubmission
	ShowResult
)

var stepNames = [...]string{"connect", "select_course", "select_assignment", "select_submission", "show_result"}
var stepTitles = [...]string{"Connect Google Classroom", "Select a course", "Select an assignment", "Select a submission", "Analysis"}

func (s Step) String() string {
	if s < Connect || s > ShowResult {
		return "unknown"
	}
	return stepNames[s]
}

func (s Step) Title() string {
	if s < Connect || s > ShowResult {
		return ""
	}
	return stepTitles[s]
}

// State is the wizard position. It is rebuilt from the URL on every request.
type State struct {
	Step         Step
	CourseID     string
	CourseWorkID string
	UserID       string
}

// FromPath derives the state from the path segments below /dashboard.
// Without a credential the wizard always sits at Connect.
func FromPath(authenticated bool, segments []string) State {
	if !authenticated {
		return State{Step: Connect}
	}
	var ids []string
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			ids = append(ids, s)
		}
	}
	st := State{Step: SelectCourse}
	for _, id := range ids {
		if st.Step == ShowResult {
			break
		}
		st = st.Select(id)
	}
	return st
}

// Select moves one step forward with the chosen identifier.
func (s State) Select(id string) State {
	switch s.Step {
	case Connect:
		return State{Step: SelectCourse}
	case SelectCourse:
		return State{Step: SelectAssignment, CourseID: id}
	case SelectAssignment:
		s.Step, s.CourseWorkID = SelectSubmission, id
	case SelectSubmission:
		s.Step, s.UserID = ShowResult, id
	}
	return s
}

// Back moves one step backward, dropping the selection made at that step.
func (s State) Back() State {
	switch s.Step {
	case ShowResult:
		s.Step, s.UserID = SelectSubmission, ""
	case SelectSubmission:
		s.Step, s.CourseWorkID = SelectAssignment, ""
	case SelectAssignment:
		s.Step, s.CourseID = SelectCourse, ""
	}
	return s
}

func (s State) Path() string {
	p := "/dashboard"
	for _, id := range []string{s.CourseID, s.CourseWorkID, s.UserID} {
		if id == "" {
			break
		}
		p += "/" + url.PathEscape(id)
	}
	return p
}
