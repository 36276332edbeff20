package handle

import (
	"fmt"
	"net/http"
	"strings"

	"classroom-diag/api/internal/apperr"
)

// GET /classroom/courses
func (h *Handle) Courses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	courses, err := h.classroom.Courses(ctx, tokenFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// GET /classroom/assignments?courseId=
func (h *Handle) Assignments(w http.ResponseWriter, r *http.Request) {
	courseID := strings.TrimSpace(r.URL.Query().Get("courseId"))
	if courseID == "" {
		writeError(w, fmt.Errorf("%w: Course ID is required", apperr.ErrBadRequest))
		return
	}
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	work, err := h.classroom.CourseWork(ctx, tokenFrom(r.Context()), courseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, work)
}

// GET /classroom/submissions?courseId=&courseWorkId=
func (h *Handle) Submissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	courseID := strings.TrimSpace(q.Get("courseId"))
	courseWorkID := strings.TrimSpace(q.Get("courseWorkId"))
	if courseID == "" || courseWorkID == "" {
		writeError(w, fmt.Errorf("%w: Course ID and CourseWork ID are required", apperr.ErrBadRequest))
		return
	}
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	subs, err := h.classroom.Submissions(ctx, tokenFrom(r.Context()), courseID, courseWorkID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}
