package handle

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"classroom-diag/api/internal/apperr"
	"classroom-diag/api/internal/classroom"
	"classroom-diag/api/internal/pipeline"
	"classroom-diag/api/internal/wizard"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"points": func(p *float64) string {
		if p == nil {
			return "-"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
}).ParseFS(templatesFS, "templates/*.html"))

type page struct {
	Step       string
	StepNumber int
	Title      string
	BackURL    string
	Path       string
	LoginURL   string

	Courses     []classroom.Course
	Assignments []classroom.Assignment
	Submissions []classroom.Submission
	Submission  *classroom.Submission
	File        *classroom.Attachment

	GradeLevel string
	Topic      string
	Result     *pipeline.Response
	Error      string
}

func newPage(st wizard.State, loginURL string) *page {
	p := &page{
		Step:       st.Step.String(),
		StepNumber: int(st.Step) + 1,
		Title:      st.Step.Title(),
		Path:       st.Path(),
		LoginURL:   loginURL,
	}
	if back := st.Back(); back.Step != st.Step {
		p.BackURL = back.Path()
	}
	return p
}

func pathSegments(path string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, "/dashboard"), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// GET /dashboard[/{courseId}[/{courseWorkId}[/{userId}]]]
func (h *Handle) Dashboard(w http.ResponseWriter, r *http.Request) {
	token, err := h.creds.AccessToken(r)
	st := wizard.FromPath(err == nil && token != "", pathSegments(r.URL.Path))
	p := newPage(st, h.opts.LoginURL)
	p.GradeLevel, p.Topic = h.opts.GradeLevel, h.opts.Topic
	if st.Step == wizard.Connect {
		h.render(w, http.StatusOK, p)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()
	if err := h.load(ctx, token, st, p); err != nil {
		p.Error = err.Error()
		h.render(w, apperr.Status(err), p)
		return
	}
	h.render(w, http.StatusOK, p)
}

// POST /dashboard/{courseId}/{courseWorkId}/{userId}/analyze
func (h *Handle) DashboardAnalyze(w http.ResponseWriter, r *http.Request) {
	token, err := h.creds.AccessToken(r)
	if err != nil || token == "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	st := wizard.FromPath(true, []string{
		chi.URLParam(r, "courseId"),
		chi.URLParam(r, "courseWorkId"),
		chi.URLParam(r, "userId"),
	})
	p := newPage(st, h.opts.LoginURL)
	p.GradeLevel = firstNonEmpty(r.FormValue("gradeLevel"), h.opts.GradeLevel)
	p.Topic = firstNonEmpty(r.FormValue("topic"), h.opts.Topic)
	if st.Step != wizard.ShowResult {
		err := fmt.Errorf("%w: course, assignment and student are required", apperr.ErrBadRequest)
		p.Error = err.Error()
		h.render(w, apperr.Status(err), p)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()
	if err := h.load(ctx, token, st, p); err != nil {
		p.Error = err.Error()
		h.render(w, apperr.Status(err), p)
		return
	}

	res, err := h.analyzer.Run(ctx, token, pipeline.Request{
		FileID:     p.File.FileID,
		FileName:   p.File.Title,
		GradeLevel: p.GradeLevel,
		Topic:      p.Topic,
	})
	if err != nil {
		log.Printf("request_id=%s dashboard analyze user_id=%s error=%q", RequestID(r.Context()), st.UserID, err.Error())
		p.Error = err.Error()
		h.render(w, apperr.Status(err), p)
		return
	}
	p.Result = &res
	h.render(w, http.StatusOK, p)
}

func (h *Handle) load(ctx context.Context, token string, st wizard.State, p *page) error {
	var err error
	switch st.Step {
	case wizard.SelectCourse:
		p.Courses, err = h.classroom.Courses(ctx, token)
	case wizard.SelectAssignment:
		p.Assignments, err = h.classroom.CourseWork(ctx, token, st.CourseID)
	case wizard.SelectSubmission:
		p.Submissions, err = h.classroom.Submissions(ctx, token, st.CourseID, st.CourseWorkID)
	case wizard.ShowResult:
		var subs []classroom.Submission
		if subs, err = h.classroom.Submissions(ctx, token, st.CourseID, st.CourseWorkID); err != nil {
			return err
		}
		sub, ok := classroom.FindByUser(subs, st.UserID)
		if !ok {
			return fmt.Errorf("%w: no submission for student %s", apperr.ErrBadRequest, st.UserID)
		}
		file, ok := sub.FirstDriveFile()
		if !ok {
			return fmt.Errorf("%w: submission %s has no Drive attachment", apperr.ErrBadRequest, sub.ID)
		}
		p.Submission, p.File = &sub, &file
	}
	return err
}

func (h *Handle) render(w http.ResponseWriter, code int, p *page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := h.pages.ExecuteTemplate(w, "dashboard.html", p); err != nil {
		log.Printf("dashboard render step=%s error=%v", p.Step, err)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
