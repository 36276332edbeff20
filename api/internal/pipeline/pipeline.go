package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"classroom-diag/api/internal/apperr"
	"classroom-diag/api/internal/llm"
	"classroom-diag/api/internal/metrics"
	"classroom-diag/api/internal/types"
)

const (
	DefaultGradeLevel = "9th Grade"
	DefaultTopic      = "Math/Physics"
)

type FileFetcher interface {
	DriveFile(ctx context.Context, token, fileID string) ([]byte, error)
}

type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, img types.Image) (types.OCRResult, error)
}

type Interpreter interface {
	Name() string
	Interpret(ctx context.Context, in llm.Input) (types.AnalysisResult, error)
}

type Request struct {
	FileID     string `json:"fileId"`
	FileName   string `json:"fileName,omitempty"`
	GradeLevel string `json:"gradeLevel,omitempty"`
	Topic      string `json:"topic,omitempty"`
}

type Response struct {
	OCR      types.OCRResult      `json:"ocr"`
	Analysis types.AnalysisResult `json:"analysis"`
}

// Pipeline runs fetch, OCR and interpretation in order. Stages are never retried.
type Pipeline struct {
	Files       FileFetcher
	OCR         Recognizer
	Interpreter Interpreter

	GradeLevel string
	Topic      string
}

func New(files FileFetcher, ocr Recognizer, interp Interpreter) *Pipeline {
	return &Pipeline{
		Files:       files,
		OCR:         ocr,
		Interpreter: interp,
		GradeLevel:  DefaultGradeLevel,
		Topic:       DefaultTopic,
	}
}

func (p *Pipeline) Run(ctx context.Context, token string, req Request) (Response, error) {
	fileID := strings.TrimSpace(req.FileID)
	if fileID == "" {
		return Response{}, fmt.Errorf("%w: File ID is required", apperr.ErrBadRequest)
	}

	var data []byte
	err := stage(fileID, "fetch", "drive", func() error {
		var err error
		data, err = p.Files.DriveFile(ctx, token, fileID)
		return ensureKind(err, apperr.ErrUpstreamFetch)
	})
	if err != nil {
		return Response{}, err
	}

	var ocrRes types.OCRResult
	err = stage(fileID, "ocr", p.OCR.Name(), func() error {
		res, err := p.OCR.Recognize(ctx, types.Image{Data: data, MIME: "image/jpeg"})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", apperr.ErrOCR, p.OCR.Name(), err)
		}
		if !res.HasText() {
			return fmt.Errorf("%w: OCR failed to extract text", apperr.ErrOCR)
		}
		ocrRes = res
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	in := llm.Input{
		OCRText:    ocrRes.Text,
		GradeLevel: firstNonEmpty(req.GradeLevel, p.GradeLevel, DefaultGradeLevel),
		Topic:      firstNonEmpty(req.Topic, p.Topic, DefaultTopic),
	}
	var analysis types.AnalysisResult
	err = stage(fileID, "interpret", p.Interpreter.Name(), func() error {
		var err error
		analysis, err = p.Interpreter.Interpret(ctx, in)
		return ensureKind(err, apperr.ErrInterpretation)
	})
	if err != nil {
		return Response{}, err
	}

	return Response{OCR: ocrRes, Analysis: analysis}, nil
}

func stage(fileID, name, engine string, fn func() error) error {
	start := time.Now()
	log.Printf("pipeline stage=%s engine=%s file_id=%s start", name, engine, fileID)
	err := fn()
	d := time.Since(start)
	metrics.ObserveStage(name, apperr.Kind(err), d)
	if err != nil {
		log.Printf("pipeline stage=%s engine=%s file_id=%s duration=%s error=%q", name, engine, fileID, d, err.Error())
		return err
	}
	log.Printf("pipeline stage=%s engine=%s file_id=%s duration=%s ok", name, engine, fileID, d)
	return nil
}

// ensureKind wraps err with kind unless it is already classified.
func ensureKind(err, kind error) error {
	if err == nil || apperr.Kind(err) != "unknown" {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
