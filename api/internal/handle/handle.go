package handle

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"classroom-diag/api/internal/apperr"
	"classroom-diag/api/internal/auth"
	"classroom-diag/api/internal/classroom"
	"classroom-diag/api/internal/pipeline"
)

// Classroom is the read side of the Classroom gateway used by the handlers.
type Classroom interface {
	Courses(ctx context.Context, token string) ([]classroom.Course, error)
	CourseWork(ctx context.Context, token, courseID string) ([]classroom.Assignment, error)
	Submissions(ctx context.Context, token, courseID, courseWorkID string) ([]classroom.Submission, error)
}

type Analyzer interface {
	Run(ctx context.Context, token string, req pipeline.Request) (pipeline.Response, error)
}

type Options struct {
	Timeout    time.Duration
	LoginURL   string
	GradeLevel string
	Topic      string
}

type Handle struct {
	classroom Classroom
	analyzer  Analyzer
	creds     auth.CredentialProvider
	opts      Options
	pages     *template.Template
}

func New(cr Classroom, an Analyzer, creds auth.CredentialProvider, opts Options) *Handle {
	if opts.Timeout <= 0 {
		opts.Timeout = 180 * time.Second
	}
	if opts.GradeLevel == "" {
		opts.GradeLevel = pipeline.DefaultGradeLevel
	}
	if opts.Topic == "" {
		opts.Topic = pipeline.DefaultTopic
	}
	return &Handle{
		classroom: cr,
		analyzer:  an,
		creds:     creds,
		opts:      opts,
		pages:     pages,
	}
}

func (h *Handle) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.opts.Timeout)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.Status(err), map[string]string{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	if errors.Is(err, apperr.ErrUnauthorized) {
		return "Unauthorized"
	}
	return err.Error()
}
