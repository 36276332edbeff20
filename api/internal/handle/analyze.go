package handle

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"classroom-diag/api/internal/apperr"
	"classroom-diag/api/internal/pipeline"
)

const maxAnalyzeBody = 64 << 10

// POST /analyze
func (h *Handle) Analyze(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxAnalyzeBody)).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad json: %v", apperr.ErrBadRequest, err))
		return
	}
	if req.GradeLevel == "" {
		req.GradeLevel = h.opts.GradeLevel
	}
	if req.Topic == "" {
		req.Topic = h.opts.Topic
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	out, err := h.analyzer.Run(ctx, tokenFrom(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
